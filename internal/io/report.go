package io

import (
	"encoding/json"
	"io/ioutil"
	"path"

	"github.com/ecopia-map/label_placer/internal/data"
	"github.com/ecopia-map/label_placer/internal/labeling"
	"github.com/ecopia-map/label_placer/internal/placer"
	"github.com/ecopia-map/label_placer/internal/scene"
	"github.com/ecopia-map/label_placer/tools"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Placement report of one view, written as <output>/<scene>/<view>.json
type Report struct {
	Scene       string        `json:"scene"`
	View        string        `json:"view"`
	Strategy    string        `json:"strategy"`
	Gravity     string        `json:"gravity"`
	Coordinates string        `json:"coordinates"`
	Viewport    [2]int        `json:"viewport"`
	Stats       ReportStats   `json:"stats"`
	Labels      []LabelRecord `json:"labels"`
}

type ReportStats struct {
	Candidates     int     `json:"candidates"`
	Placed         int     `json:"placed"`
	Overlapping    int     `json:"overlapping"`
	Clipped        int     `json:"clipped"`
	BackFacing     int     `json:"backFacing"`
	Occluded       int     `json:"occluded"`
	OffScreen      int     `json:"offScreen"`
	NodesVisited   int     `json:"nodesVisited"`
	RenderedArea   float64 `json:"renderedArea"`
	AllowableArea  float64 `json:"allowableArea"`
	BudgetExceeded bool    `json:"budgetExceeded"`
}

type LabelRecord struct {
	ID       int        `json:"id"`
	Kind     string     `json:"kind"`
	Text     string     `json:"text,omitempty"`
	Icon     int        `json:"icon,omitempty"`
	Position [3]float64 `json:"position"`
	Rect     [4]float64 `json:"rect"`
	Opacity  float64    `json:"opacity"`
}

// Builds the report of a frame. Coordinates are rounded to precision decimals.
func NewReport(
	sceneName string,
	frame scene.Frame,
	opts *labeling.Options,
	anchors *data.AnchorSet,
	placements []placer.Placement,
	stats placer.Stats,
	precision int32,
) *Report {
	r := &Report{
		Scene:       sceneName,
		View:        frame.Name,
		Strategy:    opts.Strategy.String(),
		Gravity:     opts.Gravity.String(),
		Coordinates: string(opts.OutputCoordinates),
		Viewport:    [2]int{frame.Viewport.Width, frame.Viewport.Height},
		Stats: ReportStats{
			Candidates:     stats.Candidates,
			Placed:         stats.Placed,
			Overlapping:    stats.Overlapping,
			Clipped:        stats.Clipped,
			BackFacing:     stats.BackFacing,
			Occluded:       stats.Occluded,
			OffScreen:      stats.OffScreen,
			NodesVisited:   stats.NodesVisited,
			RenderedArea:   round(stats.RenderedArea, 2),
			AllowableArea:  round(stats.AllowableArea, 2),
			BudgetExceeded: stats.BudgetExceeded,
		},
		Labels: make([]LabelRecord, 0, len(placements)),
	}
	for _, p := range placements {
		r.Labels = append(r.Labels, LabelRecord{
			ID:       p.LabelID,
			Kind:     p.Kind.String(),
			Text:     anchors.Text(p.LabelID),
			Icon:     anchors.IconIndex(p.LabelID),
			Position: [3]float64{round(p.Position.X, precision), round(p.Position.Y, precision), round(p.Position.Z, precision)},
			Rect:     [4]float64{round(p.Rect.Xmin, 2), round(p.Rect.Ymin, 2), round(p.Rect.Xmax, 2), round(p.Rect.Ymax, 2)},
			Opacity:  round(p.Opacity, 3),
		})
	}
	return r
}

func round(v float64, precision int32) float64 {
	return decimal.NewFromFloat(v).Round(precision).InexactFloat64()
}

// Writes the report, creating the parent folders if needed
func WriteReport(filePath string, report *Report) error {
	if err := tools.CreateDirectoryIfDoesNotExist(path.Dir(filePath)); err != nil {
		return errors.Wrapf(err, "cannot create folder for %s", filePath)
	}

	// Outputting a formatted json file
	e, err := json.MarshalIndent(report, "", "\t")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filePath, e, 0666)
}

func ReadReport(filePath string) (*Report, error) {
	content, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	r := &Report{}
	if err := json.Unmarshal(content, r); err != nil {
		return nil, errors.Wrapf(err, "cannot decode report %s", filePath)
	}
	return r, nil
}
