package io

import (
	"github.com/ecopia-map/label_placer/internal/labeling"
	"github.com/ecopia-map/label_placer/internal/octree/label_tree"
	"github.com/ecopia-map/label_placer/internal/scene"
)

// Contains the data needed to place the labels of one view and write its report.
// Tree is shared between work units and must not be modified.
type WorkUnit struct {
	SceneName  string
	Tree       *label_tree.LabelTree
	Frame      scene.Frame
	Opts       *labeling.Options
	OutputPath string
}
