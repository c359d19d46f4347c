package pkg

import (
	"runtime"
	"sync"

	"github.com/ecopia-map/label_placer/internal/io"
	"github.com/ecopia-map/label_placer/internal/labeling"
	"github.com/ecopia-map/label_placer/pkg/algorithm_manager"
	"github.com/ecopia-map/label_placer/tools"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Places the views of a scene independently of each other, in parallel
type LabelBatch struct {
	labeler
}

func NewLabelBatch(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) ILabeler {
	return &LabelBatch{
		labeler: labeler{fileFinder: fileFinder, algorithmManager: algorithmManager},
	}
}

func (batch *LabelBatch) Run(opts *labeling.RunOptions) error {
	return batch.forEachScene(opts, func(prepared *preparedScene) error {
		tools.LogOutput("> exporting", tools.FmtCount(len(prepared.frames)), "views...")
		return batch.exportViews(prepared, opts)
	})
}

func (batch *LabelBatch) exportViews(prepared *preparedScene, opts *labeling.RunOptions) error {
	// a consumer goroutine per CPU
	numConsumers := runtime.NumCPU()

	// init channel where to submit work with a buffer 5 times greater than the number of consumer
	workChannel := make(chan *io.WorkUnit, numConsumers*5)

	// init channel where consumers can eventually submit errors that prevented them to finish the job
	errorChannel := make(chan error, numConsumers)

	var waitGroup sync.WaitGroup

	// add producer to waitgroup and launch producer goroutine
	waitGroup.Add(1)
	producer := io.NewStandardProducer(opts.Output, prepared.scene.Name, prepared.tree, prepared.options)
	go producer.Produce(workChannel, &waitGroup, prepared.frames)

	// add consumers to waitgroup and launch them
	for i := 0; i < numConsumers; i++ {
		waitGroup.Add(1)
		consumer := io.NewStandardConsumer(opts.Precision)
		go consumer.Consume(workChannel, errorChannel, &waitGroup)
	}

	// errors are read while the workers run
	go func() {
		waitGroup.Wait()
		close(errorChannel)
	}()

	// find if there are errors in the error channel
	withErrors := false
	for err := range errorChannel {
		glog.Errorln(err)
		withErrors = true
	}
	if withErrors {
		return errors.New("errors raised during execution. Check console output for details")
	}
	return nil
}
