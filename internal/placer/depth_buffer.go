package placer

import (
	"math"

	"github.com/ecopia-map/label_placer/internal/camera"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Answers whether an anchor is hidden behind scene geometry.
// display holds the projected pixel position and normalized depth of world.
type DepthOracle interface {
	IsOccluded(world, display r3.Vector) bool
}

type DepthOracleFunc func(world, display r3.Vector) bool

func (f DepthOracleFunc) IsOccluded(world, display r3.Vector) bool {
	return f(world, display)
}

// Captured depth buffer of a viewport, row major from the bottom left pixel,
// holding normalized depths in [0, 1]
type DepthBuffer struct {
	viewport  camera.Viewport
	values    []float32
	tolerance float64
}

func NewDepthBuffer(viewport camera.Viewport, values []float32, tolerance float64) (*DepthBuffer, error) {
	if viewport.IsEmpty() {
		return nil, errors.New("depth buffer viewport is empty")
	}
	if len(values) != viewport.Width*viewport.Height {
		return nil, errors.Errorf("depth buffer has %d values, expected %dx%d", len(values), viewport.Width, viewport.Height)
	}
	return &DepthBuffer{viewport: viewport, values: values, tolerance: tolerance}, nil
}

// Points outside the buffer are never occluded
func (b *DepthBuffer) IsOccluded(world, display r3.Vector) bool {
	px := int(math.Floor(display.X)) - b.viewport.X
	py := int(math.Floor(display.Y)) - b.viewport.Y
	if px < 0 || py < 0 || px >= b.viewport.Width || py >= b.viewport.Height {
		return false
	}
	return display.Z > float64(b.values[py*b.viewport.Width+px])+b.tolerance
}
