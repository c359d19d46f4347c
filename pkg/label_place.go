package pkg

import (
	"path"

	"github.com/ecopia-map/label_placer/internal/io"
	"github.com/ecopia-map/label_placer/internal/labeling"
	"github.com/ecopia-map/label_placer/internal/placer"
	"github.com/ecopia-map/label_placer/pkg/algorithm_manager"
	"github.com/ecopia-map/label_placer/tools"
	"github.com/pkg/errors"
)

// Places the views of a scene one after the other with a single placer, so that
// labels shown in a view keep precedence in the next one
type LabelPlacer struct {
	labeler
}

func NewLabelPlacer(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) ILabeler {
	return &LabelPlacer{
		labeler: labeler{fileFinder: fileFinder, algorithmManager: algorithmManager},
	}
}

func (lp *LabelPlacer) Run(opts *labeling.RunOptions) error {
	return lp.forEachScene(opts, func(prepared *preparedScene) error {
		p, err := placer.NewPlacer(prepared.options)
		if err != nil {
			return err
		}
		tools.LogOutput("> placing labels of", tools.FmtCount(len(prepared.frames)), "views...")
		for _, frame := range prepared.frames {
			placements := p.Place(prepared.tree, frame.Camera, frame.Viewport, nil)
			report := io.NewReport(
				prepared.scene.Name, frame, p.Options(), prepared.tree.Anchors(), placements, p.Stats(), opts.Precision,
			)
			reportPath := path.Join(opts.Output, prepared.scene.Name, frame.Name+".json")
			if err := io.WriteReport(reportPath, report); err != nil {
				return errors.Wrapf(err, "cannot write report of view %s", frame.Name)
			}
			tools.LogOutput(">", frame.Name+":", tools.FmtCount(len(placements)), "labels placed of",
				tools.FmtCount(p.Stats().Candidates), "candidates")
		}
		return nil
	})
}
