package label_iterator

import (
	"github.com/ecopia-map/label_placer/internal/camera"
	"github.com/ecopia-map/label_placer/internal/octree"
	"github.com/golang/geo/r3"
	"github.com/golang/glog"
)

// Traversal order used to stream labels out of the hierarchy
type Strategy int

const (
	FullSort Strategy = iota
	Queue
	DepthFirst
	Frustum
)

func (s Strategy) String() string {
	switch s {
	case FullSort:
		return "full-sort"
	case Queue:
		return "queue"
	case DepthFirst:
		return "depth-first"
	case Frustum:
		return "frustum"
	}
	return "unknown"
}

// Called with the geometry of every node a traversal emits labels from
type NodeVisitor func(center r3.Vector, halfSize float64)

// An Iterator that can report the nodes it traversed
type Traversal interface {
	octree.Iterator
	SetNodeVisitor(visitor NodeVisitor)
}

// Builds the iterator for the given strategy. The frustum must have been computed from cam.
// tileSize is the size of the placement tiles in pixels.
func NewIterator(
	strategy Strategy,
	tree octree.ITree,
	cam *camera.Camera,
	frustum camera.Frustum,
	positionsAsNormals bool,
	tileSize [2]float64,
) Traversal {
	base := traversal{
		tree:               tree,
		camera:             cam,
		frustum:            frustum,
		positionsAsNormals: positionsAsNormals,
		tileSize:           tileSize,
		numLabels:          tree.Anchors().Len(),
	}
	switch strategy {
	case Queue:
		return &QueueIterator{traversal: base}
	case DepthFirst:
		return &DepthFirstIterator{traversal: base}
	case Frustum:
		return &FrustumIterator{traversal: base}
	default:
		return &FullSortIterator{traversal: base}
	}
}

// State and helpers shared by all strategies
type traversal struct {
	tree               octree.ITree
	camera             *camera.Camera
	frustum            camera.Frustum
	positionsAsNormals bool
	tileSize           [2]float64
	numLabels          int
	visitor            NodeVisitor
}

func (t *traversal) SetNodeVisitor(visitor NodeVisitor) {
	t.visitor = visitor
}

func (t *traversal) TileSize() [2]float64 {
	return t.tileSize
}

func (t *traversal) boxNode(id octree.NodeID) {
	if id == octree.NoNode {
		return
	}
	cube := t.tree.Node(id).Cube()
	if glog.V(3) {
		glog.Infof("traversed node %d center %v half size %f", id, cube.Center, cube.HalfSize)
	}
	if t.visitor != nil {
		t.visitor(cube.Center, cube.HalfSize)
	}
}

func (t *traversal) nodeGeometry(id octree.NodeID) (r3.Vector, float64) {
	if id == octree.NoNode {
		return r3.Vector{}, 0
	}
	cube := t.tree.Node(id).Cube()
	return cube.Center, cube.HalfSize
}

func (t *traversal) distanceToEye(id octree.NodeID) float64 {
	return t.camera.Position.Sub(t.tree.Node(id).Cube().Center).Norm2()
}

func (t *traversal) isNodeInFrustum(id octree.NodeID) bool {
	return t.frustum.OverallBoundsTest(t.tree.Node(id).Cube().BoundingBox()) != camera.Outside
}

// False for nodes on the far side of a globe when anchor positions double as surface normals
func (t *traversal) facesCamera(id octree.NodeID) bool {
	if !t.positionsAsNormals {
		return true
	}
	return t.camera.Position.Dot(t.tree.Node(id).Cube().Center) >= 0
}

// Children of a node that are visible from the camera, nearest first
func (t *traversal) visibleChildrenByDistance(id octree.NodeID) []octree.NodeID {
	node := t.tree.Node(id)
	var children []octree.NodeID
	for o := uint8(0); o < 8; o++ {
		c := node.Child(o)
		if c == octree.NoNode || !t.facesCamera(c) || !t.isNodeInFrustum(c) {
			continue
		}
		children = append(children, c)
	}
	sortNodesByDistance(children, t.distanceToEye)
	return children
}

// Cursor over the last placed ids that skips ids not present in the hierarchy
type replay struct {
	ids   []int
	index int
	limit int
}

func newReplay(ids []int, limit int) replay {
	r := replay{ids: ids, limit: limit, index: -1}
	r.advance()
	return r
}

func (r *replay) advance() {
	r.index++
	for r.index < len(r.ids) && (r.ids[r.index] < 0 || r.ids[r.index] >= r.limit) {
		r.index++
	}
}

func (r *replay) active() bool {
	return r.index >= 0 && r.index < len(r.ids)
}

func (r *replay) current() int {
	return r.ids[r.index]
}
