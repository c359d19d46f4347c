package geometry

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoundingBoxFromPoints(t *testing.T) {
	assert.Nil(t, NewBoundingBoxFromPoints(nil))

	box := NewBoundingBoxFromPoints([]r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 10, Y: -2, Z: 4}, {X: 5, Y: 8, Z: 1}})
	require.NotNil(t, box)
	assert.Equal(t, 0.0, box.Xmin)
	assert.Equal(t, 10.0, box.Xmax)
	assert.Equal(t, -2.0, box.Ymin)
	assert.Equal(t, 8.0, box.Ymax)
	assert.Equal(t, r3.Vector{X: 5, Y: 3, Z: 2}, box.Center())
	assert.Equal(t, 10.0, box.MaxDimension())
}

func TestOctantsMatchParentSubdivision(t *testing.T) {
	cube := NewCube(r3.Vector{X: 1, Y: 2, Z: 3}, 4)
	parent := cube.BoundingBox()
	for octant := uint8(0); octant < 8; octant++ {
		fromCube := cube.Octant(octant).BoundingBox()
		fromBox := NewBoundingBoxFromParent(parent, octant)
		assert.Equal(t, fromBox, fromCube, "octant %d", octant)
	}
	assert.Equal(t, r3.Vector{X: 3, Y: 4, Z: 5}, cube.Octant(7).Center)
	assert.Equal(t, 2.0, cube.Octant(7).HalfSize)
}

func TestCornersAreInsideBox(t *testing.T) {
	box := NewBoundingBox(-1, 1, -2, 2, -3, 3)
	corners := box.Corners()
	for _, c := range corners {
		assert.True(t, box.Contains(c))
	}
	assert.Equal(t, r3.Vector{X: -1, Y: -2, Z: -3}, corners[0])
	assert.Equal(t, r3.Vector{X: 1, Y: 2, Z: 3}, corners[7])
}

func TestRectOverlap(t *testing.T) {
	a := NewRect(10, 10, 20, 10)
	tests := []struct {
		name    string
		b       Rect
		overlap bool
	}{
		{"same", a, true},
		{"inside", NewRect(12, 12, 2, 2), true},
		{"touching edge", NewRect(30, 10, 5, 5), false},
		{"left", NewRect(0, 10, 5, 5), false},
		{"above", NewRect(10, 25, 5, 5), false},
		{"partial", NewRect(25, 15, 20, 20), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlap, a.Overlaps(tc.b))
			assert.Equal(t, tc.overlap, tc.b.Overlaps(a))
		})
	}
}

func TestRectSeparationAndClip(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(15, 0, 10, 10)
	assert.Equal(t, 5.0, a.Separation(b))
	assert.Equal(t, 5.0, b.Separation(a))

	clipped, ok := NewRect(-5, -5, 10, 10).Clip(a)
	require.True(t, ok)
	assert.Equal(t, NewRect(0, 0, 5, 5), clipped)

	_, ok = NewRect(20, 20, 5, 5).Clip(a)
	assert.False(t, ok)

	nan := NewRect(math.NaN(), 5, 10, 10)
	assert.False(t, nan.IsFinite())
	_, ok = nan.Clip(a)
	assert.False(t, ok)
	_, ok = NewRect(0, 0, math.Inf(1), 10).Clip(a)
	assert.False(t, ok)

	assert.Equal(t, NewRect(-1, -1, 12, 12), a.Expand(1))
	assert.Equal(t, 100.0, a.Area())
}
