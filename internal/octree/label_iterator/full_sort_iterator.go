package label_iterator

import (
	"sort"

	"github.com/ecopia-map/label_placer/internal/camera"
	"github.com/ecopia-map/label_placer/internal/geometry"
	"github.com/ecopia-map/label_placer/internal/octree"
	"github.com/golang/geo/r3"
	"github.com/golang/glog"
)

// Once this many anchors have been collected the breadth first scan stops
const maximumSortedLabels = 10000

type sortedNode struct {
	id            octree.NodeID
	level         int
	distance      float64
	totallyInside bool
}

// Collects every visible node up front, then emits their labels level by level,
// nearest nodes first within a level
type FullSortIterator struct {
	traversal
	nodes      []sortedNode
	nodeIndex  int
	labelIndex int
	atEnd      bool
}

func (it *FullSortIterator) Begin(lastPlaced []int) {
	it.nodes = it.nodes[:0]
	root := it.tree.Root()
	queue := []sortedNode{{id: root, distance: it.distanceToEye(root)}}
	numLabels := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		it.nodes = append(it.nodes, current)
		node := it.tree.Node(current.id)
		numLabels += node.NumberOfLabels()
		if numLabels > maximumSortedLabels {
			break
		}

		for o := uint8(0); o < 8; o++ {
			c := node.Child(o)
			if c == octree.NoNode {
				continue
			}
			child := sortedNode{id: c, level: current.level + 1, distance: it.distanceToEye(c), totallyInside: true}
			if !current.totallyInside {
				if !it.facesCamera(c) {
					continue
				}
				// children are tested with the parent half size, a box twice as wide as the child
				box := geometry.NewCube(it.tree.Node(c).Cube().Center, node.Cube().HalfSize).BoundingBox()
				switch it.frustum.OverallBoundsTest(box) {
				case camera.Outside:
					continue
				case camera.Intersecting:
					child.totallyInside = false
				}
			}
			queue = append(queue, child)
		}
	}
	sort.SliceStable(it.nodes, func(i, j int) bool {
		a, b := it.nodes[i], it.nodes[j]
		if a.level != b.level {
			return a.level < b.level
		}
		return a.distance < b.distance
	})
	glog.V(2).Infof("full sort collected %d nodes, %d labels", len(it.nodes), numLabels)

	it.nodeIndex = 0
	it.labelIndex = 0
	it.atEnd = false
	it.settle()
}

func (it *FullSortIterator) Next() {
	if it.atEnd {
		return
	}
	it.labelIndex++
	it.settle()
}

// Moves forward until the cursor points at an existing label
func (it *FullSortIterator) settle() {
	for it.nodeIndex < len(it.nodes) {
		node := it.tree.Node(it.nodes[it.nodeIndex].id)
		if it.labelIndex < node.NumberOfLabels() {
			if it.labelIndex == 0 {
				it.boxNode(it.nodes[it.nodeIndex].id)
			}
			return
		}
		it.nodeIndex++
		it.labelIndex = 0
	}
	it.atEnd = true
}

func (it *FullSortIterator) IsAtEnd() bool {
	return it.atEnd
}

// Current label id, -1 once the iterator is exhausted
func (it *FullSortIterator) LabelID() int {
	if it.atEnd {
		return -1
	}
	return it.tree.Node(it.nodes[it.nodeIndex].id).LabelAt(it.labelIndex)
}

func (it *FullSortIterator) NodeGeometry() (r3.Vector, float64) {
	if it.atEnd {
		return it.nodeGeometry(octree.NoNode)
	}
	return it.nodeGeometry(it.nodes[it.nodeIndex].id)
}
