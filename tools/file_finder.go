package tools

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ecopia-map/label_placer/internal/labeling"
	"github.com/pkg/errors"
)

const SceneFileExtension = ".toml"

type FileFinder interface {
	GetSceneFilesToProcess(opts *labeling.RunOptions) ([]string, error)
}

type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

func (f *StandardFileFinder) GetSceneFilesToProcess(opts *labeling.RunOptions) ([]string, error) {
	// If folder processing is not enabled then the scene file is given by -input flag, otherwise look for scenes
	// in the -input folder, eventually excluding nested folders if Recursive flag is disabled
	if !opts.FolderProcessing {
		if !PathExists(opts.Input) {
			return nil, errors.Errorf("scene file %s not found", opts.Input)
		}
		return []string{opts.Input}, nil
	}

	return f.getSceneFilesFromInputFolder(opts)
}

func (f *StandardFileFinder) getSceneFilesFromInputFolder(opts *labeling.RunOptions) ([]string, error) {
	var sceneFiles = make([]string, 0)

	baseInfo, err := os.Stat(opts.Input)
	if err != nil {
		return nil, err
	}
	if !baseInfo.IsDir() {
		return nil, errors.Errorf("%s is not a folder", opts.Input)
	}
	err = filepath.Walk(
		opts.Input,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() && !opts.Recursive && !os.SameFile(info, baseInfo) {
				return filepath.SkipDir
			}
			if !info.IsDir() && strings.ToLower(filepath.Ext(info.Name())) == SceneFileExtension {
				sceneFiles = append(sceneFiles, path)
			}
			return nil
		},
	)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot list scenes in %s", opts.Input)
	}

	sort.Strings(sceneFiles)
	return sceneFiles, nil
}
