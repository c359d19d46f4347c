package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ecopia-map/label_placer/internal/converters/elevation/offset_elevation_corrector"
	"github.com/ecopia-map/label_placer/internal/data"
	"github.com/ecopia-map/label_placer/internal/labeling"
	"github.com/ecopia-map/label_placer/internal/octree/label_iterator"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const citiesScene = `
name = "cities"

[placement]
strategy = "queue"
gravity = "left-top"
tile_size = [32.0, 16.0]
margin = 2.0

[[anchors]]
position = [0.0, 0.0, 0.0]
priority = 10.0
size = [40.0, 12.0]
descent = 3.0
text = "Rome"

[[anchors]]
position = [10.0, 5.0, 0.0]
priority = 5.0
size = [16.0, 16.0]
kind = "icon"
icon = 7

[[views]]
name = "overview"
position = [5.0, 2.5, 100.0]
focal_point = [5.0, 2.5, 0.0]
view_up = [0.0, 1.0, 0.0]
view_angle = 45.0
clipping_range = [1.0, 500.0]
viewport = [800, 600]

[[views]]
position = [5.0, -50.0, 50.0]
focal_point = [5.0, 2.5, 0.0]
viewport = [400, 300]
`

func writeScene(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "cities.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	s, err := Load(writeScene(t, citiesScene))
	require.NoError(t, err)
	assert.Equal(t, "cities", s.Name)
	assert.False(t, s.IsGeographic())
	require.Len(t, s.Anchors, 2)
	require.Len(t, s.Views, 2)
	assert.Equal(t, "view-1", s.Views[1].Name)

	anchors, err := s.AnchorSet(nil, offset_elevation_corrector.NewOffsetElevationCorrector(1))
	require.NoError(t, err)
	require.Equal(t, 2, anchors.Len())
	assert.Equal(t, r3.Vector{X: 10, Y: 5, Z: 1}, anchors.Point(1))
	assert.Equal(t, 10.0, anchors.Priority(0))
	assert.Equal(t, data.LabelSize{Width: 40, Height: 12, Descent: 3}, anchors.Size(0))
	assert.Equal(t, "Rome", anchors.Text(0))
	assert.Equal(t, data.IconLabel, anchors.Kind(1))
	assert.Equal(t, 7, anchors.IconIndex(1))
}

func TestFrames(t *testing.T) {
	s, err := Load(writeScene(t, citiesScene))
	require.NoError(t, err)
	frames, err := s.Frames(nil)
	require.NoError(t, err)
	require.Len(t, frames, 2)

	assert.Equal(t, "overview", frames[0].Name)
	assert.Equal(t, 45.0, frames[0].Camera.ViewAngle)
	assert.Equal(t, [2]float64{1, 500}, frames[0].Camera.ClippingRange)
	assert.Equal(t, 800, frames[0].Viewport.Width)

	// defaults
	assert.Equal(t, 30.0, frames[1].Camera.ViewAngle)
	assert.Equal(t, r3.Vector{Z: 1}, frames[1].Camera.ViewUp)
	assert.NoError(t, frames[1].Camera.Validate())
}

func TestPlacementOptions(t *testing.T) {
	s, err := Load(writeScene(t, citiesScene))
	require.NoError(t, err)

	base := labeling.DefaultOptions()
	base.PlaceAllLabels = true
	opts, err := s.PlacementOptions(base)
	require.NoError(t, err)
	assert.Equal(t, label_iterator.Queue, opts.Strategy)
	assert.Equal(t, labeling.Gravity{Horizontal: labeling.AlignLeft, Vertical: labeling.AlignTop}, opts.Gravity)
	assert.Equal(t, [2]float64{32, 16}, opts.TileSize)
	assert.Equal(t, 2.0, opts.Margin)
	assert.True(t, opts.PlaceAllLabels, "keys missing from the table keep the run value")
	assert.Equal(t, label_iterator.FullSort, base.Strategy, "base options are not modified")

	s.Placement = nil
	opts, err = s.PlacementOptions(base)
	require.NoError(t, err)
	assert.Equal(t, base, opts)
}

func TestInvalidScenes(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `name = `},
		{"kind", "[[anchors]]\nposition = [0.0, 0.0, 0.0]\nkind = \"shape\""},
		{"viewport", "[[views]]\nposition = [0.0, 0.0, 1.0]\nviewport = [0, 10]"},
		{"duplicate view", "[[views]]\nname = \"a\"\nviewport = [1, 1]\n[[views]]\nname = \"a\"\nviewport = [1, 1]"},
		{"target without srid", "target_srid = 4978"},
		{"nan position", "[[anchors]]\nposition = [nan, 50.0, 0.0]"},
		{"infinite width", "[[anchors]]\nposition = [50.0, 50.0, 0.0]\nsize = [inf, 10.0]"},
		{"nan priority", "[[anchors]]\nposition = [0.0, 0.0, 0.0]\npriority = nan"},
		{"infinite descent", "[[anchors]]\nposition = [0.0, 0.0, 0.0]\ndescent = -inf"},
		{"nan view", "[[views]]\nposition = [0.0, nan, 1.0]\nviewport = [10, 10]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeScene(t, tc.content))
			assert.Error(t, err)
		})
	}

	s, err := Load(writeScene(t, "[placement]\nstrategy = \"random\""))
	require.NoError(t, err)
	_, err = s.PlacementOptions(nil)
	assert.Error(t, err)

	s, err = Load(writeScene(t, "[[views]]\nposition = [0.0, 0.0, 1.0]\nfocal_point = [0.0, 0.0, 1.0]\nviewport = [10, 10]"))
	require.NoError(t, err)
	_, err = s.Frames(nil)
	assert.Error(t, err, "degenerate camera")
}

// records conversions and shifts x by the target srid
type fakeConverter struct {
	calls [][2]int
}

func (c *fakeConverter) ConvertCoordinateSrid(source, target int, coord r3.Vector) (r3.Vector, error) {
	points := []r3.Vector{coord}
	err := c.ConvertPoints(source, target, points)
	return points[0], err
}

func (c *fakeConverter) ConvertPoints(source, target int, points []r3.Vector) error {
	c.calls = append(c.calls, [2]int{source, target})
	if source == target {
		return nil
	}
	for i := range points {
		points[i].X += float64(target)
	}
	return nil
}

func (c *fakeConverter) Cleanup() {}

func TestGeographicScene(t *testing.T) {
	s, err := Load(writeScene(t, "srid = 3857\n[[anchors]]\nposition = [1.0, 2.0, 3.0]"))
	require.NoError(t, err)
	assert.True(t, s.IsGeographic())
	assert.Equal(t, 4978, s.TargetSrid)

	_, err = s.AnchorSet(nil, nil)
	assert.Error(t, err)

	converter := &fakeConverter{}
	anchors, err := s.AnchorSet(converter, offset_elevation_corrector.NewOffsetElevationCorrector(10))
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{3857, 4326}, {4326, 4978}}, converter.calls)
	assert.Equal(t, r3.Vector{X: 1 + 4326 + 4978, Y: 2, Z: 13}, anchors.Point(0))
}
