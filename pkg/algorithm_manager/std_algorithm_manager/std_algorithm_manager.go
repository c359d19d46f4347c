package std_algorithm_manager

import (
	"github.com/ecopia-map/label_placer/internal/converters"
	"github.com/ecopia-map/label_placer/internal/converters/elevation/offset_elevation_corrector"
	"github.com/ecopia-map/label_placer/internal/converters/proj4_coordinate_converter"
	"github.com/ecopia-map/label_placer/internal/data"
	"github.com/ecopia-map/label_placer/internal/labeling"
	"github.com/ecopia-map/label_placer/internal/octree/label_tree"
	"github.com/ecopia-map/label_placer/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	options             *labeling.RunOptions
	coordinateConverter converters.CoordinateConverter
	elevationCorrector  converters.ElevationCorrector
}

func NewAlgorithmManager(opts *labeling.RunOptions) algorithm_manager.AlgorithmManager {
	return &StandardAlgorithmManager{
		options:             opts,
		coordinateConverter: proj4_coordinate_converter.NewProj4CoordinateConverter(),
		elevationCorrector:  offset_elevation_corrector.NewOffsetElevationCorrector(opts.ZOffset),
	}
}

func (m *StandardAlgorithmManager) GetElevationCorrectionAlgorithm() converters.ElevationCorrector {
	return m.elevationCorrector
}

// An unbuilt hierarchy over anchors. opts falls back to the run options when nil.
func (m *StandardAlgorithmManager) GetTreeAlgorithm(anchors *data.AnchorSet, opts *labeling.Options) *label_tree.LabelTree {
	if opts == nil {
		opts = m.options.Placement
	}
	if opts == nil {
		return label_tree.NewLabelTree(anchors, label_tree.DefaultTargetLabelCount, label_tree.DefaultMaximumDepth)
	}
	return label_tree.NewLabelTree(anchors, opts.TargetLabelCount, opts.MaximumDepth)
}

func (m *StandardAlgorithmManager) GetCoordinateConverterAlgorithm() converters.CoordinateConverter {
	return m.coordinateConverter
}
