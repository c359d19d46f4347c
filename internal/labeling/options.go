package labeling

import (
	"strings"

	"github.com/ecopia-map/label_placer/internal/octree/label_iterator"
	"github.com/ecopia-map/label_placer/internal/octree/label_tree"
	"github.com/pkg/errors"
)

type HorizontalAlign string
type VerticalAlign string
type OutputCoordinates string

const (
	AlignLeft   HorizontalAlign = "LEFT"
	AlignCenter HorizontalAlign = "CENTER"
	AlignRight  HorizontalAlign = "RIGHT"
)

const (
	AlignBottom   VerticalAlign = "BOTTOM"
	AlignBaseline VerticalAlign = "BASELINE"
	AlignMiddle   VerticalAlign = "CENTER"
	AlignTop      VerticalAlign = "TOP"
)

const (
	// Placements carry the (possibly perturbed) world position of their anchor
	WorldCoordinates OutputCoordinates = "WORLD"
	// Placements carry the display position of the label rectangle origin
	DisplayCoordinates OutputCoordinates = "DISPLAY"
)

const (
	DefaultMaximumLabelFraction = 0.05
	DefaultTileSize             = 64.0
	DefaultDepthTolerance       = 1e-3
)

// Where the label rectangle sits relative to its projected anchor
type Gravity struct {
	Horizontal HorizontalAlign
	Vertical   VerticalAlign
}

func (g Gravity) String() string {
	return strings.ToLower(string(g.Horizontal) + "-" + string(g.Vertical))
}

func ParseHorizontalAlign(value string) HorizontalAlign {
	switch normalize(value) {
	case "LEFT":
		return AlignLeft
	case "CENTER":
		return AlignCenter
	case "RIGHT":
		return AlignRight
	}
	return ""
}

func ParseVerticalAlign(value string) VerticalAlign {
	switch normalize(value) {
	case "BOTTOM":
		return AlignBottom
	case "BASELINE":
		return AlignBaseline
	case "CENTER":
		return AlignMiddle
	case "TOP":
		return AlignTop
	}
	return ""
}

// Parses gravities written as "<horizontal>-<vertical>", e.g. "center-baseline".
// Returns false on anything else.
func ParseGravity(value string) (Gravity, bool) {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	if len(parts) != 2 {
		return Gravity{}, false
	}
	g := Gravity{Horizontal: ParseHorizontalAlign(parts[0]), Vertical: ParseVerticalAlign(parts[1])}
	if g.Horizontal == "" || g.Vertical == "" {
		return Gravity{}, false
	}
	return g, true
}

func ParseOutputCoordinates(value string) OutputCoordinates {
	switch normalize(value) {
	case "WORLD":
		return WorldCoordinates
	case "DISPLAY":
		return DisplayCoordinates
	}
	return ""
}

func ParseStrategy(value string) (label_iterator.Strategy, bool) {
	switch strings.ReplaceAll(normalize(value), "_", "-") {
	case "FULL-SORT":
		return label_iterator.FullSort, true
	case "QUEUE":
		return label_iterator.Queue, true
	case "DEPTH-FIRST":
		return label_iterator.DepthFirst, true
	case "FRUSTUM":
		return label_iterator.Frustum, true
	}
	return label_iterator.FullSort, false
}

func normalize(value string) string {
	return strings.Trim(strings.ToUpper(value), " ")
}

// Contains the options needed by the hierarchy builder and the placer
type Options struct {
	Strategy             label_iterator.Strategy // Traversal order of the label hierarchy
	Gravity              Gravity                 // Label rectangle position relative to the anchor
	TargetLabelCount     int                     // Labels kept by a node before anchors move to its children
	MaximumDepth         int                     // Deepest level of the hierarchy
	TileSize             [2]float64              // Size in pixels of the screen tiles used for overlap tests
	MaximumLabelFraction float64                 // Fraction of the viewport labels may cover
	EnforceAreaBudget    bool                    // Stop placing once MaximumLabelFraction is exceeded
	PositionsAsNormals   bool                    // Anchors facing away from the camera are culled
	UseDepthBuffer       bool                    // Occluded anchors are culled using the depth oracle
	DepthTolerance       float64                 // Depth slack when comparing against the depth buffer
	PlaceAllLabels       bool                    // Skip overlap tests, every visible label is placed
	Margin               float64                 // Pixels of padding added around each label rectangle
	OutputCoordinates    OutputCoordinates       // Coordinate system of emitted positions
	ReplayLastPlaced     bool                    // Feed the previous frame's labels to the iterator first
}

func DefaultOptions() *Options {
	return &Options{
		Strategy:             label_iterator.FullSort,
		Gravity:              Gravity{Horizontal: AlignCenter, Vertical: AlignBaseline},
		TargetLabelCount:     16,
		MaximumDepth:         5,
		TileSize:             [2]float64{DefaultTileSize, DefaultTileSize},
		MaximumLabelFraction: DefaultMaximumLabelFraction,
		DepthTolerance:       DefaultDepthTolerance,
		OutputCoordinates:    WorldCoordinates,
		ReplayLastPlaced:     true,
	}
}

func (opt *Options) Validate() error {
	if opt.Gravity.Horizontal == "" || opt.Gravity.Vertical == "" {
		return errors.Errorf("invalid gravity %q", opt.Gravity.String())
	}
	if opt.MaximumDepth > label_tree.MaximumSupportedDepth {
		return errors.Errorf("maximum depth %d exceeds %d", opt.MaximumDepth, label_tree.MaximumSupportedDepth)
	}
	if opt.TileSize[0] <= 0 || opt.TileSize[1] <= 0 {
		return errors.Errorf("tile size %v must be positive", opt.TileSize)
	}
	if opt.MaximumLabelFraction <= 0 || opt.MaximumLabelFraction > 1 {
		return errors.Errorf("maximum label fraction %f must be in (0, 1]", opt.MaximumLabelFraction)
	}
	if opt.OutputCoordinates == "" {
		return errors.New("output coordinates should be either WORLD or DISPLAY")
	}
	if opt.Margin < 0 {
		return errors.Errorf("margin %f cannot be negative", opt.Margin)
	}
	if opt.DepthTolerance < 0 {
		return errors.Errorf("depth tolerance %f cannot be negative", opt.DepthTolerance)
	}
	return nil
}

func (opt *Options) Copy() *Options {
	newOpt := *opt
	return &newOpt
}
