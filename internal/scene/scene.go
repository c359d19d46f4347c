package scene

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ecopia-map/label_placer/internal/camera"
	"github.com/ecopia-map/label_placer/internal/converters"
	"github.com/ecopia-map/label_placer/internal/data"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// A scene file: anchors to label and the views to place them for.
// When Srid is set anchors and view positions are geographic and get converted to TargetSrid.
type Scene struct {
	Name       string          `toml:"name"`
	Srid       int             `toml:"srid"`
	TargetSrid int             `toml:"target_srid"`
	ZOffset    float64         `toml:"z_offset"`
	Placement  *PlacementTable `toml:"placement"`
	Anchors    []AnchorEntry   `toml:"anchors"`
	Views      []View          `toml:"views"`

	Path string `toml:"-"`
}

type AnchorEntry struct {
	Position [3]float64 `toml:"position"`
	Priority float64    `toml:"priority"`
	Size     [2]float64 `toml:"size"`
	Bearing  float64    `toml:"bearing"`
	Descent  float64    `toml:"descent"`
	Kind     string     `toml:"kind"`
	Text     string     `toml:"text"`
	Icon     int        `toml:"icon"`
}

type View struct {
	Name          string     `toml:"name"`
	Position      [3]float64 `toml:"position"`
	FocalPoint    [3]float64 `toml:"focal_point"`
	ViewUp        [3]float64 `toml:"view_up"`
	ViewAngle     float64    `toml:"view_angle"`
	ClippingRange [2]float64 `toml:"clipping_range"`
	Viewport      [2]int     `toml:"viewport"`
}

// A view resolved to a camera in the coordinates of the anchors
type Frame struct {
	Name     string
	Camera   *camera.Camera
	Viewport camera.Viewport
}

func Load(path string) (*Scene, error) {
	s := &Scene{}
	if _, err := toml.DecodeFile(path, s); err != nil {
		return nil, errors.Wrapf(err, "cannot decode scene %s", path)
	}
	s.Path = path
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid scene %s", path)
	}
	return s, nil
}

// Checks the scene and fills in defaults
func (s *Scene) Validate() error {
	if s.Srid != 0 && s.TargetSrid == 0 {
		s.TargetSrid = converters.SridWGS84Geocentric
	}
	if s.Srid == 0 && s.TargetSrid != 0 {
		return errors.Errorf("target srid %d given without a source srid", s.TargetSrid)
	}
	for i := range s.Anchors {
		if _, ok := parseKind(s.Anchors[i].Kind); !ok {
			return errors.Errorf("anchor %d has unknown kind %q", i, s.Anchors[i].Kind)
		}
		a := &s.Anchors[i]
		if !isFinite(a.Position[:]...) {
			return errors.Errorf("anchor %d has non finite position %v", i, a.Position)
		}
		if math.IsNaN(a.Priority) {
			return errors.Errorf("anchor %d has NaN priority", i)
		}
		if !isFinite(a.Size[0], a.Size[1], a.Bearing, a.Descent) {
			return errors.Errorf("anchor %d has non finite size %v", i, a.Size)
		}
		if a.Size[0] < 0 || a.Size[1] < 0 {
			return errors.Errorf("anchor %d has negative size %v", i, a.Size)
		}
	}
	names := make(map[string]bool)
	for i := range s.Views {
		v := &s.Views[i]
		if v.Name == "" {
			v.Name = fmt.Sprintf("view-%d", i)
		}
		if names[v.Name] {
			return errors.Errorf("duplicate view name %q", v.Name)
		}
		names[v.Name] = true
		if !isFinite(v.Position[:]...) || !isFinite(v.FocalPoint[:]...) || !isFinite(v.ViewUp[:]...) ||
			!isFinite(v.ViewAngle, v.ClippingRange[0], v.ClippingRange[1]) {
			return errors.Errorf("view %q has non finite camera values", v.Name)
		}
		if v.Viewport[0] <= 0 || v.Viewport[1] <= 0 {
			return errors.Errorf("view %q has invalid viewport %v", v.Name, v.Viewport)
		}
	}
	return nil
}

func isFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s *Scene) IsGeographic() bool {
	return s.Srid != 0
}

// Builds the anchor set, converting geographic positions and correcting their heights.
// converter may be nil for scenes without srid, corrector may always be nil.
func (s *Scene) AnchorSet(converter converters.CoordinateConverter, corrector converters.ElevationCorrector) (*data.AnchorSet, error) {
	anchors := make([]data.Anchor, len(s.Anchors))
	points := make([]r3.Vector, len(s.Anchors))
	for i, a := range s.Anchors {
		kind, _ := parseKind(a.Kind)
		anchors[i] = data.Anchor{
			Priority:  a.Priority,
			Size:      data.LabelSize{Width: a.Size[0], Height: a.Size[1], Bearing: a.Bearing, Descent: a.Descent},
			Kind:      kind,
			Text:      a.Text,
			IconIndex: a.Icon,
		}
		points[i] = toVector(a.Position)
	}

	if err := s.toSceneCoordinates(converter, corrector, points); err != nil {
		return nil, err
	}
	for i := range anchors {
		anchors[i].Position = points[i]
	}
	return data.NewAnchorSet(anchors), nil
}

// Resolves every view to a camera living in the same space as the anchors
func (s *Scene) Frames(converter converters.CoordinateConverter) ([]Frame, error) {
	frames := make([]Frame, 0, len(s.Views))
	for _, v := range s.Views {
		eye := []r3.Vector{toVector(v.Position), toVector(v.FocalPoint)}
		if err := s.toSceneCoordinates(converter, nil, eye); err != nil {
			return nil, errors.Wrapf(err, "view %q", v.Name)
		}
		cam := camera.NewCamera(eye[0], eye[1], toVector(v.ViewUp), v.ViewAngle, v.ClippingRange[0], v.ClippingRange[1])
		applyCameraDefaults(cam)
		if err := cam.Validate(); err != nil {
			return nil, errors.Wrapf(err, "view %q", v.Name)
		}
		frames = append(frames, Frame{
			Name:     v.Name,
			Camera:   cam,
			Viewport: camera.NewViewport(v.Viewport[0], v.Viewport[1]),
		})
	}
	return frames, nil
}

func (s *Scene) toSceneCoordinates(converter converters.CoordinateConverter, corrector converters.ElevationCorrector, points []r3.Vector) error {
	if !s.IsGeographic() {
		if corrector != nil {
			for i, p := range points {
				points[i].Z = corrector.CorrectElevation(p.X, p.Y, p.Z)
			}
		}
		return nil
	}
	if converter == nil {
		return errors.Errorf("scene %s is geographic but no coordinate converter is available", s.Name)
	}

	// heights are corrected on WGS84 coordinates, then projected to the target srid
	if err := converter.ConvertPoints(s.Srid, converters.SridWGS84, points); err != nil {
		return err
	}
	if corrector != nil {
		for i, p := range points {
			points[i].Z = corrector.CorrectElevation(p.X, p.Y, p.Z)
		}
	}
	return converter.ConvertPoints(converters.SridWGS84, s.TargetSrid, points)
}

func applyCameraDefaults(cam *camera.Camera) {
	if cam.ViewAngle == 0 {
		cam.ViewAngle = camera.DefaultViewAngle
	}
	if cam.ClippingRange == [2]float64{} {
		cam.ClippingRange = [2]float64{camera.DefaultNear, camera.DefaultFar}
	}
	if cam.ViewUp == (r3.Vector{}) {
		cam.ViewUp = r3.Vector{Z: 1}
		dop := cam.FocalPoint.Sub(cam.Position)
		if dop.Cross(cam.ViewUp).Norm() == 0 {
			cam.ViewUp = r3.Vector{Y: 1}
		}
	}
}

func parseKind(value string) (data.LabelKind, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "text":
		return data.TextLabel, true
	case "icon":
		return data.IconLabel, true
	}
	return data.TextLabel, false
}

func toVector(v [3]float64) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}
