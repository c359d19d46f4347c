package labeling

import (
	"testing"

	"github.com/ecopia-map/label_placer/internal/octree/label_iterator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGravity(t *testing.T) {
	tests := []struct {
		value string
		want  Gravity
		ok    bool
	}{
		{"center-baseline", Gravity{AlignCenter, AlignBaseline}, true},
		{"LEFT_TOP", Gravity{AlignLeft, AlignTop}, true},
		{" right bottom", Gravity{AlignRight, AlignBottom}, true},
		{"center-center", Gravity{AlignCenter, AlignMiddle}, true},
		{"middle-top", Gravity{}, false},
		{"left", Gravity{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			g, ok := ParseGravity(tc.value)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, g)
		})
	}
	assert.Equal(t, "center-baseline", Gravity{AlignCenter, AlignBaseline}.String())
}

func TestParseStrategy(t *testing.T) {
	s, ok := ParseStrategy("full-sort")
	assert.True(t, ok)
	assert.Equal(t, label_iterator.FullSort, s)

	s, ok = ParseStrategy("DEPTH_FIRST")
	assert.True(t, ok)
	assert.Equal(t, label_iterator.DepthFirst, s)

	s, ok = ParseStrategy("frustum")
	assert.True(t, ok)
	assert.Equal(t, label_iterator.Frustum, s)

	_, ok = ParseStrategy("random")
	assert.False(t, ok)
}

func TestParseOutputCoordinates(t *testing.T) {
	assert.Equal(t, WorldCoordinates, ParseOutputCoordinates("world"))
	assert.Equal(t, DisplayCoordinates, ParseOutputCoordinates(" Display "))
	assert.Equal(t, OutputCoordinates(""), ParseOutputCoordinates("screen"))
}

func TestDefaultOptionsAreValid(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, opts.Validate())
	assert.Equal(t, 0.05, opts.MaximumLabelFraction)
	assert.Equal(t, 16, opts.TargetLabelCount)
	assert.Equal(t, 5, opts.MaximumDepth)
	assert.True(t, opts.ReplayLastPlaced)
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(o *Options)
	}{
		{"gravity", func(o *Options) { o.Gravity = Gravity{} }},
		{"tile size", func(o *Options) { o.TileSize = [2]float64{0, 10} }},
		{"label fraction", func(o *Options) { o.MaximumLabelFraction = 0 }},
		{"output coordinates", func(o *Options) { o.OutputCoordinates = "" }},
		{"margin", func(o *Options) { o.Margin = -1 }},
		{"maximum depth", func(o *Options) { o.MaximumDepth = 56 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := DefaultOptions()
			tc.modify(o)
			assert.Error(t, o.Validate())
		})
	}
}

func TestCopyIsIndependent(t *testing.T) {
	run := &RunOptions{Input: "a.toml", Placement: DefaultOptions()}
	c := run.Copy()
	c.Placement.Margin = 4
	c.Input = "b.toml"
	assert.Equal(t, 0.0, run.Placement.Margin)
	assert.Equal(t, "a.toml", run.Input)
}
