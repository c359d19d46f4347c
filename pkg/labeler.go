package pkg

import (
	"path/filepath"

	"github.com/ecopia-map/label_placer/internal/labeling"
	"github.com/ecopia-map/label_placer/internal/octree/label_tree"
	"github.com/ecopia-map/label_placer/internal/scene"
	"github.com/ecopia-map/label_placer/pkg/algorithm_manager"
	"github.com/ecopia-map/label_placer/tools"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

type ILabeler interface {
	Run(opts *labeling.RunOptions) error
}

// Scene loading and hierarchy building shared by every command
type labeler struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
}

// A scene with its hierarchy built and its views resolved to cameras
type preparedScene struct {
	scene   *scene.Scene
	options *labeling.Options
	tree    *label_tree.LabelTree
	frames  []scene.Frame
}

// Runs fn on every scene selected by the run options, stopping at the first error
func (l *labeler) forEachScene(opts *labeling.RunOptions, fn func(prepared *preparedScene) error) error {
	glog.Infoln("Preparing list of scenes to process...")

	sceneFiles, err := l.fileFinder.GetSceneFilesToProcess(opts)
	if err != nil {
		return err
	}
	for i, filePath := range sceneFiles {
		glog.Infof("scene path %d [%s]", i+1, filePath)
	}
	defer l.algorithmManager.GetCoordinateConverterAlgorithm().Cleanup()

	for i, filePath := range sceneFiles {
		tools.LogOutput("Processing scene " + tools.FmtCount(i+1) + "/" + tools.FmtCount(len(sceneFiles)))
		prepared, err := l.prepareScene(filePath, opts)
		if err != nil {
			return err
		}
		if err := fn(prepared); err != nil {
			return errors.Wrapf(err, "scene %s", filePath)
		}
		tools.LogOutput("> done processing", filepath.Base(filePath))
	}
	return nil
}

func (l *labeler) prepareScene(filePath string, opts *labeling.RunOptions) (*preparedScene, error) {
	tools.LogOutput("> reading scene...", filepath.Base(filePath))
	s, err := scene.Load(filePath)
	if err != nil {
		return nil, err
	}
	options, err := s.PlacementOptions(opts.Placement)
	if err != nil {
		return nil, err
	}

	converter := l.algorithmManager.GetCoordinateConverterAlgorithm()
	anchors, err := s.AnchorSet(converter, l.algorithmManager.GetElevationCorrectionAlgorithm())
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read anchors of scene %s", s.Name)
	}

	// Build tree hierarchical structure
	tools.LogOutput("> building label hierarchy...")
	tree := l.algorithmManager.GetTreeAlgorithm(anchors, options)
	if err := tree.ComputeHierarchy(); err != nil {
		return nil, errors.Wrapf(err, "cannot build label hierarchy of scene %s", s.Name)
	}
	logTreeStats(s.Name, tree.Stats())

	frames, err := s.Frames(converter)
	if err != nil {
		return nil, err
	}
	return &preparedScene{scene: s, options: options, tree: tree, frames: frames}, nil
}

func logTreeStats(name string, stats label_tree.Stats) {
	tools.LogOutput("> scene", name+":", tools.FmtCount(stats.Anchors), "anchors in", tools.FmtCount(stats.Nodes),
		"nodes,", tools.FmtCount(stats.Leaves), "leaves, depth", stats.MaximumLevel)
	glog.Infof("scene %s: average leaf depth %.2f, labels per level %v, %d coincident anchors moved",
		name, stats.AverageLeafDepth, stats.LabelsPerLevel, stats.Coincident)
}
