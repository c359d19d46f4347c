package pkg

import (
	"github.com/ecopia-map/label_placer/internal/labeling"
	"github.com/ecopia-map/label_placer/pkg/algorithm_manager"
	"github.com/ecopia-map/label_placer/tools"
)

// Builds the label hierarchy of every scene and reports its shape
type LabelIndex struct {
	labeler
	built []string
}

func NewLabelIndex(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) ILabeler {
	return &LabelIndex{
		labeler: labeler{fileFinder: fileFinder, algorithmManager: algorithmManager},
	}
}

func (index *LabelIndex) Run(opts *labeling.RunOptions) error {
	index.built = index.built[:0]
	return index.forEachScene(opts, func(prepared *preparedScene) error {
		index.built = append(index.built, prepared.scene.Name)
		return nil
	})
}
