package io

import (
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/ecopia-map/label_placer/internal/camera"
	"github.com/ecopia-map/label_placer/internal/data"
	"github.com/ecopia-map/label_placer/internal/labeling"
	"github.com/ecopia-map/label_placer/internal/octree/label_tree"
	"github.com/ecopia-map/label_placer/internal/placer"
	"github.com/ecopia-map/label_placer/internal/scene"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree(t *testing.T) *label_tree.LabelTree {
	var anchors []data.Anchor
	for i := 0; i < 20; i++ {
		anchors = append(anchors, data.Anchor{
			Position: r3.Vector{X: float64(i % 5 * 20), Y: float64(i / 5 * 20)},
			Priority: float64(i),
			Size:     data.LabelSize{Width: 20, Height: 8},
			Text:     "label",
		})
	}
	tree, err := label_tree.ComputeHierarchy(data.NewAnchorSet(anchors), 4, 3)
	require.NoError(t, err)
	return tree
}

func testFrames() []scene.Frame {
	var frames []scene.Frame
	for i, z := range []float64{100, 150, 200} {
		frames = append(frames, scene.Frame{
			Name:     []string{"near", "mid", "far"}[i],
			Camera:   camera.NewCamera(r3.Vector{X: 40, Y: 30, Z: z}, r3.Vector{X: 40, Y: 30}, r3.Vector{Y: 1}, 60, 1, 1000),
			Viewport: camera.NewViewport(320, 240),
		})
	}
	return frames
}

func TestProducerConsumerPipeline(t *testing.T) {
	out := t.TempDir()
	tree := testTree(t)
	frames := testFrames()

	workChannel := make(chan *WorkUnit, 2)
	errorChannel := make(chan error, len(frames))

	var producerWaitGroup sync.WaitGroup
	producerWaitGroup.Add(1)
	producer := NewStandardProducer(out, "grid", tree, labeling.DefaultOptions())
	go producer.Produce(workChannel, &producerWaitGroup, frames)

	var consumerWaitGroup sync.WaitGroup
	numConsumers := runtime.NumCPU()
	for i := 0; i < numConsumers; i++ {
		consumerWaitGroup.Add(1)
		go NewStandardConsumer(3).Consume(workChannel, errorChannel, &consumerWaitGroup)
	}
	producerWaitGroup.Wait()
	consumerWaitGroup.Wait()
	close(errorChannel)
	for err := range errorChannel {
		t.Fatal(err)
	}

	for _, f := range frames {
		report, err := ReadReport(filepath.Join(out, "grid", f.Name+".json"))
		require.NoError(t, err)
		assert.Equal(t, "grid", report.Scene)
		assert.Equal(t, f.Name, report.View)
		assert.Equal(t, "full-sort", report.Strategy)
		assert.Equal(t, [2]int{320, 240}, report.Viewport)
		assert.NotEmpty(t, report.Labels)
		assert.Equal(t, len(report.Labels), report.Stats.Placed)
	}
}

func TestNewReportRoundsCoordinates(t *testing.T) {
	anchors := data.NewAnchorSet([]data.Anchor{{Text: "a"}, {Kind: data.IconLabel, IconIndex: 4}})
	frame := testFrames()[0]
	placements := []placer.Placement{
		{LabelID: 1, Position: r3.Vector{X: 1.23456, Y: -2.71828, Z: 3.5}, Opacity: 0.33333, Kind: data.IconLabel},
	}
	report := NewReport("s", frame, labeling.DefaultOptions(), anchors, placements, placer.Stats{Placed: 1}, 2)

	require.Len(t, report.Labels, 1)
	label := report.Labels[0]
	assert.Equal(t, [3]float64{1.23, -2.72, 3.5}, label.Position)
	assert.Equal(t, 0.333, label.Opacity)
	assert.Equal(t, "icon", label.Kind)
	assert.Equal(t, 4, label.Icon)
	assert.Equal(t, "WORLD", report.Coordinates)
	assert.Equal(t, "center-baseline", report.Gravity)
}

func TestWriteReportCreatesFolders(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a", "b", "view.json")
	require.NoError(t, WriteReport(file, &Report{Scene: "x", Labels: []LabelRecord{{ID: 3}}}))
	report, err := ReadReport(file)
	require.NoError(t, err)
	assert.Equal(t, "x", report.Scene)
	assert.Equal(t, 3, report.Labels[0].ID)

	_, err = ReadReport(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
