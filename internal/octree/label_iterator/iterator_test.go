package label_iterator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ecopia-map/label_placer/internal/camera"
	"github.com/ecopia-map/label_placer/internal/data"
	"github.com/ecopia-map/label_placer/internal/octree"
	"github.com/ecopia-map/label_placer/internal/octree/label_tree"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tileSize = [2]float64{32, 32}

func buildTree(t *testing.T, n int, seed int64) *label_tree.LabelTree {
	rng := rand.New(rand.NewSource(seed))
	anchors := &data.AnchorSet{
		Points:     make([]r3.Vector, n),
		Priorities: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		anchors.Points[i] = r3.Vector{X: rng.Float64() * 100, Y: rng.Float64() * 100, Z: rng.Float64() * 100}
		anchors.Priorities[i] = rng.Float64()
	}
	tree, err := label_tree.ComputeHierarchy(anchors, 16, 5)
	require.NoError(t, err)
	return tree
}

// camera seeing the whole [0,100]^3 cube
func overviewCamera() *camera.Camera {
	return camera.NewCamera(r3.Vector{X: 50, Y: 50, Z: 160}, r3.Vector{X: 50, Y: 50, Z: 50}, r3.Vector{Y: 1}, 90, 1, 1000)
}

func drain(it octree.Iterator) []int {
	var ids []int
	for !it.IsAtEnd() {
		ids = append(ids, it.LabelID())
		it.Next()
	}
	return ids
}

func newIterator(strategy Strategy, tree *label_tree.LabelTree, cam *camera.Camera) Traversal {
	return NewIterator(strategy, tree, cam, cam.FrustumPlanes(1), false, tileSize)
}

func assertEachLabelOnce(t *testing.T, ids []int, n int) {
	seen := make(map[int]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "label %d yielded twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestNewIteratorStrategies(t *testing.T) {
	tree := buildTree(t, 10, 1)
	cam := overviewCamera()
	assert.IsType(t, &FullSortIterator{}, newIterator(FullSort, tree, cam))
	assert.IsType(t, &QueueIterator{}, newIterator(Queue, tree, cam))
	assert.IsType(t, &DepthFirstIterator{}, newIterator(DepthFirst, tree, cam))
	assert.IsType(t, &FrustumIterator{}, newIterator(Frustum, tree, cam))
	assert.Equal(t, "depth-first", DepthFirst.String())
}

func TestFullSortYieldsEveryVisibleLabelByLevelAndDistance(t *testing.T) {
	tree := buildTree(t, 100, 2)
	cam := overviewCamera()
	it := newIterator(FullSort, tree, cam)
	it.Begin(nil)

	var ids []int
	lastLevel, lastDistance := -1, -1.0
	for !it.IsAtEnd() {
		ids = append(ids, it.LabelID())
		center, halfSize := it.NodeGeometry()
		level := int(math.Round(math.Log2(tree.LabelNode(tree.Root()).Cube().HalfSize / halfSize)))
		distance := cam.Position.Sub(center).Norm2()
		if level == lastLevel {
			assert.GreaterOrEqual(t, distance, lastDistance)
		} else {
			assert.Greater(t, level, lastLevel)
		}
		lastLevel, lastDistance = level, distance
		it.Next()
	}
	assertEachLabelOnce(t, ids, 100)
	assert.Equal(t, -1, it.LabelID())

	// the root labels come first, in priority order
	assert.Equal(t, tree.LabelNode(tree.Root()).Labels(), ids[:16])
}

func TestFullSortSkipsNodesOutsideFrustum(t *testing.T) {
	tree := buildTree(t, 200, 3)
	// looking away from the data: only the root is collected
	cam := camera.NewCamera(r3.Vector{X: 50, Y: 50, Z: 300}, r3.Vector{X: 50, Y: 50, Z: 400}, r3.Vector{Y: 1}, 30, 1, 1000)
	it := newIterator(FullSort, tree, cam)
	it.Begin(nil)
	assert.Equal(t, tree.LabelNode(tree.Root()).Labels(), drain(it))
}

func TestQueueIteratorReplaysThenTraverses(t *testing.T) {
	tree := buildTree(t, 100, 4)
	require.Less(t, tree.NumberOfNodes(), maximumNodesQueued)
	it := newIterator(Queue, tree, overviewCamera())

	it.Begin([]int{5, 1000, -2, 7})
	ids := drain(it)
	require.GreaterOrEqual(t, len(ids), 2)
	assert.Equal(t, []int{5, 7}, ids[:2])
	assertEachLabelOnce(t, ids[2:], 100)

	// replay of invalid ids only
	it.Begin([]int{100, 101})
	ids = drain(it)
	assertEachLabelOnce(t, ids, 100)
}

func TestQueueIteratorWithRootOutsideFrustum(t *testing.T) {
	tree := buildTree(t, 50, 5)
	cam := camera.NewCamera(r3.Vector{X: 50, Y: 50, Z: 300}, r3.Vector{X: 50, Y: 50, Z: 400}, r3.Vector{Y: 1}, 30, 1, 1000)
	it := newIterator(Queue, tree, cam)
	it.Begin(nil)
	assert.True(t, it.IsAtEnd())

	it.Begin([]int{3})
	assert.Equal(t, []int{3}, drain(it))
}

func TestDepthFirstIterator(t *testing.T) {
	tree := buildTree(t, 100, 6)
	cam := overviewCamera()
	it := newIterator(DepthFirst, tree, cam)
	it.Begin([]int{1, 2, 3})
	ids := drain(it)
	assertEachLabelOnce(t, ids, 100)
	assert.Equal(t, tree.LabelNode(tree.Root()).Labels(), ids[:16])

	// the node after the root is the nearest non empty child
	it.Begin(nil)
	for i := 0; i < 16; i++ {
		it.Next()
	}
	require.False(t, it.IsAtEnd())
	center, _ := it.NodeGeometry()
	root := tree.LabelNode(tree.Root())
	best := math.Inf(1)
	for o := uint8(0); o < 8; o++ {
		c := root.Child(o)
		if c == octree.NoNode || tree.LabelNode(c).NumberOfLabels() == 0 {
			continue
		}
		best = math.Min(best, cam.Position.Sub(tree.LabelNode(c).Cube().Center).Norm2())
	}
	assert.Equal(t, best, cam.Position.Sub(center).Norm2())
}

func TestFrustumIteratorReplaysThenYieldsEveryLabel(t *testing.T) {
	tree := buildTree(t, 300, 7)
	it := newIterator(Frustum, tree, overviewCamera())

	it.Begin([]int{9, 4, 5000})
	ids := drain(it)
	require.GreaterOrEqual(t, len(ids), 2)
	assert.Equal(t, []int{9, 4}, ids[:2])
	assertEachLabelOnce(t, ids[2:], 300)

	// levels are visited in order, starting with the root
	it.Begin(nil)
	ids = drain(it)
	assert.Equal(t, tree.LabelNode(tree.Root()).Labels(), ids[:16])
}

func TestFrustumIteratorOnRootOnlyTree(t *testing.T) {
	anchors := &data.AnchorSet{Points: []r3.Vector{{X: 1}, {X: 2}, {X: 3}}}
	tree, err := label_tree.ComputeHierarchy(anchors, 16, 5)
	require.NoError(t, err)
	require.Equal(t, 0, tree.ActualDepth())

	cam := camera.NewCamera(r3.Vector{X: 2, Z: 10}, r3.Vector{X: 2}, r3.Vector{Y: 1}, 30, 1, 100)
	it := NewIterator(Frustum, tree, cam, cam.FrustumPlanes(1), false, tileSize)
	it.Begin(nil)
	assert.Equal(t, []int{0, 1, 2}, drain(it))
}

func TestPositionsAsNormalsCullsFarSide(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	n := 400
	anchors := &data.AnchorSet{Points: make([]r3.Vector, n)}
	for i := range anchors.Points {
		v := r3.Vector{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}.Normalize()
		anchors.Points[i] = v.Mul(10)
	}
	tree, err := label_tree.ComputeHierarchy(anchors, 4, 5)
	require.NoError(t, err)

	cam := camera.NewCamera(r3.Vector{Z: 100}, r3.Vector{}, r3.Vector{Y: 1}, 30, 1, 1000)
	it := NewIterator(FullSort, tree, cam, cam.FrustumPlanes(1), true, tileSize)
	it.Begin(nil)
	count := 0
	for ; !it.IsAtEnd(); it.Next() {
		center, halfSize := it.NodeGeometry()
		if halfSize < tree.LabelNode(tree.Root()).Cube().HalfSize {
			assert.GreaterOrEqual(t, center.Z, 0.0)
		}
		count++
	}
	assert.Greater(t, count, 0)
	assert.Less(t, count, n)
}

func TestNodeVisitorSeesEveryEmittingNode(t *testing.T) {
	tree := buildTree(t, 100, 9)
	it := newIterator(FullSort, tree, overviewCamera())
	visited := 0
	labels := 0
	it.SetNodeVisitor(func(center r3.Vector, halfSize float64) {
		visited++
	})
	it.Begin(nil)
	for ; !it.IsAtEnd(); it.Next() {
		labels++
	}
	assert.Equal(t, 100, labels)
	nonEmpty := 0
	for id := 0; id < tree.NumberOfNodes(); id++ {
		if tree.LabelNode(octree.NodeID(id)).NumberOfLabels() > 0 {
			nonEmpty++
		}
	}
	assert.Equal(t, nonEmpty, visited)
}

func TestQuadrupleTable(t *testing.T) {
	table := quadruples()
	require.NotEmpty(t, table)
	assert.Equal(t, quadruple{0, 0, 0, 0}, table[0])
	assert.Equal(t, quadruple{1, 1, 0, 0}, table[1])
	assert.Equal(t, quadruple{2, 1, 1, 0}, table[2])
	assert.Equal(t, quadruple{3, 1, 1, 1}, table[3])
	assert.Equal(t, quadruple{4, 2, 0, 0}, table[4])
	for i := 1; i < len(table); i++ {
		assert.LessOrEqual(t, table[i-1].r2, table[i].r2)
	}
	last := table[len(table)-1]
	assert.LessOrEqual(t, last.r2, maximumQuadrupleRadius*maximumQuadrupleRadius)

	assert.Len(t, quadruple{1, 1, 0, 0}.permutations(), 3)
	assert.Len(t, quadruple{3, 1, 1, 1}.permutations(), 1)
	assert.Len(t, quadruple{5, 2, 1, 0}.permutations(), 6)
	assert.Len(t, quadruple{9, 2, 2, 1}.permutations(), 3)

	flipped, ok := flipSigns([3]int{1, 0, 2}, 5)
	assert.True(t, ok)
	assert.Equal(t, [3]int{-1, 0, -2}, flipped)
	_, ok = flipSigns([3]int{1, 0, 2}, 2)
	assert.False(t, ok)
}

func TestHabitableRadius(t *testing.T) {
	assert.Equal(t, 0.0, habitableRadius2(math.Pi/2))
	r2 := habitableRadius2(30 * math.Pi / 180)
	assert.Greater(t, r2, 0.0)
	assert.Less(t, r2, 1.0)
}
