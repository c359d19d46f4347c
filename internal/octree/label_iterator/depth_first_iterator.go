package label_iterator

import (
	"github.com/ecopia-map/label_placer/internal/octree"
	"github.com/golang/geo/r3"
)

// Walks visible nodes depth first, entering the child nearest to the eye first.
// Previously placed labels are not replayed.
type DepthFirstIterator struct {
	traversal
	stack      []octree.NodeID
	node       octree.NodeID
	labelIndex int
	atEnd      bool
}

func (it *DepthFirstIterator) Begin(lastPlaced []int) {
	it.stack = it.stack[:0]
	it.node = octree.NoNode
	it.labelIndex = 0
	it.atEnd = false

	root := it.tree.Root()
	if it.isNodeInFrustum(root) {
		it.stack = append(it.stack, root)
	}
	it.nextNode()
}

func (it *DepthFirstIterator) Next() {
	if it.atEnd {
		return
	}
	it.labelIndex++
	if it.labelIndex >= it.tree.Node(it.node).NumberOfLabels() {
		it.nextNode()
	}
}

func (it *DepthFirstIterator) nextNode() {
	for len(it.stack) > 0 {
		id := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		children := it.visibleChildrenByDistance(id)
		for i := len(children) - 1; i >= 0; i-- {
			it.stack = append(it.stack, children[i])
		}
		if it.tree.Node(id).NumberOfLabels() > 0 {
			it.node = id
			it.labelIndex = 0
			it.boxNode(id)
			return
		}
	}
	it.node = octree.NoNode
	it.atEnd = true
}

func (it *DepthFirstIterator) IsAtEnd() bool {
	return it.atEnd
}

// Current label id, -1 once the iterator is exhausted
func (it *DepthFirstIterator) LabelID() int {
	if it.atEnd {
		return -1
	}
	return it.tree.Node(it.node).LabelAt(it.labelIndex)
}

func (it *DepthFirstIterator) NodeGeometry() (r3.Vector, float64) {
	return it.nodeGeometry(it.node)
}
