package algorithm_manager

import (
	"github.com/ecopia-map/label_placer/internal/converters"
	"github.com/ecopia-map/label_placer/internal/data"
	"github.com/ecopia-map/label_placer/internal/labeling"
	"github.com/ecopia-map/label_placer/internal/octree/label_tree"
)

type AlgorithmManager interface {
	GetElevationCorrectionAlgorithm() converters.ElevationCorrector
	GetTreeAlgorithm(anchors *data.AnchorSet, opts *labeling.Options) *label_tree.LabelTree
	GetCoordinateConverterAlgorithm() converters.CoordinateConverter
}
