package io

import (
	"path"
	"sync"

	"github.com/ecopia-map/label_placer/internal/labeling"
	"github.com/ecopia-map/label_placer/internal/octree/label_tree"
	"github.com/ecopia-map/label_placer/internal/scene"
)

type StandardProducer struct {
	basePath  string
	sceneName string
	tree      *label_tree.LabelTree
	options   *labeling.Options
}

func NewStandardProducer(basepath string, sceneName string, tree *label_tree.LabelTree, options *labeling.Options) *StandardProducer {
	return &StandardProducer{
		basePath:  path.Join(basepath, sceneName),
		sceneName: sceneName,
		tree:      tree,
		options:   options,
	}
}

// Submits one WorkUnit per frame to the provided work channel.
// Closes the channel when all work is submitted.
func (p *StandardProducer) Produce(work chan *WorkUnit, wg *sync.WaitGroup, frames []scene.Frame) {
	for _, frame := range frames {
		work <- &WorkUnit{
			SceneName:  p.sceneName,
			Tree:       p.tree,
			Frame:      frame,
			Opts:       p.options,
			OutputPath: path.Join(p.basePath, frame.Name+".json"),
		}
	}
	close(work)
	wg.Done()
}
