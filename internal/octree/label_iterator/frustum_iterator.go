package label_iterator

import (
	"math"

	"github.com/ecopia-map/label_placer/internal/octree"
	"github.com/golang/geo/r3"
	"github.com/golang/glog"
)

// Replays the labels placed in the previous frame, then visits the hierarchy level by level.
// Within a level nodes are reached through lattice offsets from the cell containing the eye,
// in order of increasing distance, so nearby nodes are always tried first.
type FrustumIterator struct {
	traversal
	replay   replay
	inOctree bool
	atEnd    bool

	level     int
	ijk0      [3]int
	farthest2 int
	tooClose2 float64

	quad  int
	perms [][3]int
	perm  int
	sign  int

	node       octree.NodeID
	labelIndex int

	nodesTried int
	hits       int
}

func (it *FrustumIterator) Begin(lastPlaced []int) {
	it.replay = newReplay(lastPlaced, it.numLabels)
	it.inOctree = false
	it.atEnd = false
	it.node = octree.NoNode
	it.tooClose2 = habitableRadius2(it.camera.ViewAngleRadians())
	if !it.replay.active() {
		it.beginOctreeTraversal()
	}
}

// Squared lattice distance under which a node is too close to the eye to be worth labelling
func habitableRadius2(viewAngle float64) float64 {
	vaMin := math.Atan(math.Pi/2 - 2*viewAngle)
	if vaMin <= 0 {
		return 0
	}
	r := vaMin / 2
	return r * r
}

func (it *FrustumIterator) beginOctreeTraversal() {
	it.inOctree = true
	it.level = -1
	it.quad = len(quadruples())
	it.perms = nil
	it.perm = 0
	it.sign = 8
	it.nodesTried = 0
	it.hits = 0
	it.nextNode()
}

func (it *FrustumIterator) Next() {
	if it.atEnd {
		return
	}
	if !it.inOctree {
		it.replay.advance()
		if !it.replay.active() {
			it.beginOctreeTraversal()
		}
		return
	}
	it.labelIndex++
	if it.labelIndex < it.tree.Node(it.node).NumberOfLabels() {
		return
	}
	it.nextNode()
}

func (it *FrustumIterator) nextNode() {
	for {
		offset, ok := it.nextOffset()
		if !ok {
			glog.V(2).Infof("frustum traversal done: %d lattice cells tried, %d hits", it.nodesTried, it.hits)
			it.node = octree.NoNode
			it.atEnd = true
			return
		}
		ijk := [3]int{it.ijk0[0] + offset[0], it.ijk0[1] + offset[1], it.ijk0[2] + offset[2]}
		path, ok := it.tree.PathForNodalCoordinates(ijk, it.level)
		if !ok {
			continue
		}
		it.nodesTried++
		id, ok := it.tree.Visit(path)
		if !ok || it.tree.Node(id).NumberOfLabels() == 0 {
			continue
		}
		if !it.facesCamera(id) || !it.isNodeInFrustum(id) {
			continue
		}
		it.hits++
		it.node = id
		it.labelIndex = 0
		it.boxNode(id)
		return
	}
}

// Produces the next lattice offset: sign flips of the current permutation, then the next
// permutation, then the next quadruple, then the first quadruple of the next level
func (it *FrustumIterator) nextOffset() ([3]int, bool) {
	table := quadruples()
	for {
		for it.sign < 8 {
			sign := it.sign
			it.sign++
			if offset, ok := flipSigns(it.perms[it.perm], sign); ok {
				return offset, true
			}
		}
		if it.perm+1 < len(it.perms) {
			it.perm++
			it.sign = 0
			continue
		}
		if it.quad+1 < len(table) && table[it.quad+1].r2 <= it.farthest2 {
			it.quad++
			q := table[it.quad]
			if it.level > 0 && float64(q.r2) < it.tooClose2 {
				continue
			}
			it.perms = q.permutations()
			it.perm = 0
			it.sign = 0
			continue
		}
		if it.level+1 > it.tree.ActualDepth() {
			return [3]int{}, false
		}
		it.startLevel(it.level + 1)
	}
}

func (it *FrustumIterator) startLevel(level int) {
	it.level = level
	it.ijk0 = it.tree.DiscreteNodeCoordinates(it.camera.Position, level)
	m := 1 << uint(level)
	it.farthest2 = 0
	for axis := 0; axis < 3; axis++ {
		d := it.ijk0[axis]
		if far := m - 1 - it.ijk0[axis]; abs(far) > abs(d) {
			d = far
		}
		it.farthest2 += d * d
	}
	it.quad = -1
	it.perms = nil
	it.perm = 0
	it.sign = 8
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (it *FrustumIterator) IsAtEnd() bool {
	return it.atEnd
}

// Current label id, -1 once the iterator is exhausted
func (it *FrustumIterator) LabelID() int {
	if it.atEnd {
		return -1
	}
	if !it.inOctree {
		return it.replay.current()
	}
	return it.tree.Node(it.node).LabelAt(it.labelIndex)
}

func (it *FrustumIterator) NodeGeometry() (r3.Vector, float64) {
	if !it.inOctree {
		return it.nodeGeometry(octree.NoNode)
	}
	return it.nodeGeometry(it.node)
}
