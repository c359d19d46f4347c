package io

import (
	"sync"

	"github.com/ecopia-map/label_placer/internal/placer"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

type StandardConsumer struct {
	precision int32
}

func NewStandardConsumer(precision int32) *StandardConsumer {
	return &StandardConsumer{
		precision: precision,
	}
}

// Continually consumes WorkUnits submitted to a work channel, placing labels and writing one report per unit.
// Continues working until the work channel is closed or an error is raised. In this last case submits
// the error to the error channel and discards the remaining work.
func (c *StandardConsumer) Consume(workchan chan *WorkUnit, errchan chan error, waitGroup *sync.WaitGroup) {
	for {
		// get work from channel
		work, ok := <-workchan
		if !ok {
			// channel was closed by producer, quit infinite loop
			break
		}

		// do work
		err := c.doWork(work)

		// if there were errors during work send in error channel and quit
		if err != nil {
			errchan <- err
			glog.Errorf("placement worker stopped: %v", err)
			// leave the remaining units unprocessed so the producer is not blocked
			for range workchan {
			}
			break
		}
	}

	// signal waitgroup finished work
	waitGroup.Done()
}

// Each unit gets its own placer, tile grids are never shared between goroutines
func (c *StandardConsumer) doWork(workUnit *WorkUnit) error {
	p, err := placer.NewPlacer(workUnit.Opts)
	if err != nil {
		return errors.Wrapf(err, "view %s", workUnit.Frame.Name)
	}
	placements := p.Place(workUnit.Tree, workUnit.Frame.Camera, workUnit.Frame.Viewport, nil)
	report := NewReport(
		workUnit.SceneName, workUnit.Frame, p.Options(), workUnit.Tree.Anchors(), placements, p.Stats(), c.precision,
	)
	if err := WriteReport(workUnit.OutputPath, report); err != nil {
		return errors.Wrapf(err, "cannot write report of view %s", workUnit.Frame.Name)
	}
	glog.V(1).Infof("view %s: %d labels placed", workUnit.Frame.Name, len(placements))
	return nil
}
