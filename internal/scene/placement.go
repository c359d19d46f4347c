package scene

import (
	"github.com/ecopia-map/label_placer/internal/labeling"
	"github.com/pkg/errors"
)

// The optional [placement] table of a scene. Only the keys present override the run options.
type PlacementTable struct {
	Strategy             *string     `toml:"strategy"`
	Gravity              *string     `toml:"gravity"`
	TargetLabelCount     *int        `toml:"target_label_count"`
	MaximumDepth         *int        `toml:"maximum_depth"`
	TileSize             *[2]float64 `toml:"tile_size"`
	MaximumLabelFraction *float64    `toml:"maximum_label_fraction"`
	EnforceAreaBudget    *bool       `toml:"enforce_area_budget"`
	PositionsAsNormals   *bool       `toml:"positions_as_normals"`
	UseDepthBuffer       *bool       `toml:"use_depth_buffer"`
	DepthTolerance       *float64    `toml:"depth_tolerance"`
	PlaceAllLabels       *bool       `toml:"place_all_labels"`
	Margin               *float64    `toml:"margin"`
	OutputCoordinates    *string     `toml:"output_coordinates"`
	ReplayLastPlaced     *bool       `toml:"replay_last_placed"`
}

// Options for this scene: base overridden by the scene's placement table
func (s *Scene) PlacementOptions(base *labeling.Options) (*labeling.Options, error) {
	if base == nil {
		base = labeling.DefaultOptions()
	}
	opts := base.Copy()
	t := s.Placement
	if t == nil {
		return opts, nil
	}

	if t.Strategy != nil {
		strategy, ok := labeling.ParseStrategy(*t.Strategy)
		if !ok {
			return nil, errors.Errorf("unknown strategy %q", *t.Strategy)
		}
		opts.Strategy = strategy
	}
	if t.Gravity != nil {
		gravity, ok := labeling.ParseGravity(*t.Gravity)
		if !ok {
			return nil, errors.Errorf("unknown gravity %q", *t.Gravity)
		}
		opts.Gravity = gravity
	}
	if t.OutputCoordinates != nil {
		opts.OutputCoordinates = labeling.ParseOutputCoordinates(*t.OutputCoordinates)
	}
	setInt(&opts.TargetLabelCount, t.TargetLabelCount)
	setInt(&opts.MaximumDepth, t.MaximumDepth)
	if t.TileSize != nil {
		opts.TileSize = *t.TileSize
	}
	setFloat(&opts.MaximumLabelFraction, t.MaximumLabelFraction)
	setFloat(&opts.DepthTolerance, t.DepthTolerance)
	setFloat(&opts.Margin, t.Margin)
	setBool(&opts.EnforceAreaBudget, t.EnforceAreaBudget)
	setBool(&opts.PositionsAsNormals, t.PositionsAsNormals)
	setBool(&opts.UseDepthBuffer, t.UseDepthBuffer)
	setBool(&opts.PlaceAllLabels, t.PlaceAllLabels)
	setBool(&opts.ReplayLastPlaced, t.ReplayLastPlaced)

	if err := opts.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid placement table in scene %s", s.Name)
	}
	return opts, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
