package proj4_coordinate_converter

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpsgDefinition(t *testing.T) {
	def, ok := epsgDefinition(4978)
	assert.True(t, ok)
	assert.Contains(t, def, "+proj=geocent")

	def, ok = epsgDefinition(32632)
	assert.True(t, ok)
	assert.Equal(t, "+proj=utm +zone=32 +datum=WGS84 +units=m +no_defs", def)

	def, ok = epsgDefinition(32733)
	assert.True(t, ok)
	assert.Contains(t, def, "+zone=33 +south")

	_, ok = epsgDefinition(32600)
	assert.False(t, ok)
	_, ok = epsgDefinition(1234)
	assert.False(t, ok)
}

func TestSameSridIsIdentity(t *testing.T) {
	c := NewProj4CoordinateConverter()
	defer c.Cleanup()

	p := r3.Vector{X: 9.19, Y: 45.46, Z: 120}
	out, err := c.ConvertCoordinateSrid(4326, 4326, p)
	require.NoError(t, err)
	assert.Equal(t, p, out)
}

func TestUnknownSrid(t *testing.T) {
	c := NewProj4CoordinateConverter()
	defer c.Cleanup()

	_, err := c.ConvertCoordinateSrid(1234, 4978, r3.Vector{})
	assert.Error(t, err)

	points := []r3.Vector{{X: 1, Y: 2, Z: 3}}
	assert.Error(t, c.ConvertPoints(4326, 99999, points))
	assert.Equal(t, r3.Vector{X: 1, Y: 2, Z: 3}, points[0], "points are untouched on failure")
}
