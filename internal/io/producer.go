package io

import (
	"sync"

	"github.com/ecopia-map/label_placer/internal/scene"
)

type Producer interface {
	Produce(work chan *WorkUnit, wg *sync.WaitGroup, frames []scene.Frame)
}

type Consumer interface {
	Consume(workchan chan *WorkUnit, errchan chan error, waitGroup *sync.WaitGroup)
}
