package label_iterator

import (
	"github.com/ecopia-map/label_placer/internal/octree"
	"github.com/golang/geo/r3"
)

// Upper bound on the nodes a single breadth first pass may enqueue
const maximumNodesQueued = 128

// Replays the labels placed in the previous frame, then walks the visible nodes breadth first.
// Children are queued nearest first as their parent is reached, so nodes are only roughly
// sorted by distance, without the up front cost of FullSortIterator.
type QueueIterator struct {
	traversal
	replay      replay
	queue       []octree.NodeID
	node        octree.NodeID
	labelIndex  int
	nodesQueued int
	treeDone    bool
}

func (it *QueueIterator) Begin(lastPlaced []int) {
	it.replay = newReplay(lastPlaced, it.numLabels)
	it.queue = it.queue[:0]
	it.nodesQueued = 0
	it.node = octree.NoNode
	it.labelIndex = 0
	it.treeDone = true

	root := it.tree.Root()
	if !it.isNodeInFrustum(root) {
		return
	}
	it.treeDone = false
	it.node = root
	it.queueChildren(root)
	it.nodesQueued++
	if it.tree.Node(root).NumberOfLabels() > 0 {
		it.boxNode(root)
	} else {
		it.nextNode()
	}
}

func (it *QueueIterator) Next() {
	if it.replay.active() {
		it.replay.advance()
		return
	}
	if it.treeDone {
		return
	}
	it.labelIndex++
	if it.labelIndex >= it.tree.Node(it.node).NumberOfLabels() {
		it.nextNode()
	}
}

func (it *QueueIterator) nextNode() {
	for len(it.queue) > 0 {
		it.node = it.queue[0]
		it.queue = it.queue[1:]
		it.queueChildren(it.node)
		it.labelIndex = 0
		if it.tree.Node(it.node).NumberOfLabels() > 0 {
			it.boxNode(it.node)
			return
		}
	}
	it.treeDone = true
}

func (it *QueueIterator) queueChildren(id octree.NodeID) {
	if it.nodesQueued >= maximumNodesQueued {
		return
	}
	for _, c := range it.visibleChildrenByDistance(id) {
		if it.nodesQueued >= maximumNodesQueued {
			return
		}
		it.queue = append(it.queue, c)
		it.nodesQueued++
	}
}

func (it *QueueIterator) IsAtEnd() bool {
	return !it.replay.active() && it.treeDone
}

// Current label id, -1 once the iterator is exhausted
func (it *QueueIterator) LabelID() int {
	if it.replay.active() {
		return it.replay.current()
	}
	if it.treeDone {
		return -1
	}
	return it.tree.Node(it.node).LabelAt(it.labelIndex)
}

func (it *QueueIterator) NodeGeometry() (r3.Vector, float64) {
	if it.replay.active() || it.treeDone {
		return it.nodeGeometry(octree.NoNode)
	}
	return it.nodeGeometry(it.node)
}
