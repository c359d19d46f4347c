package octree

import (
	"github.com/ecopia-map/label_placer/internal/data"
	"github.com/ecopia-map/label_placer/internal/geometry"
	"github.com/golang/geo/r3"
)

// Index of a node inside the tree arena
type NodeID int32

// Sentinel for an absent child
const NoNode NodeID = -1

type ITree interface {
	// Builds the hierarchy from scratch, discarding any previous one
	ComputeHierarchy() error
	IsBuilt() bool
	Clear() bool
	Root() NodeID
	Node(id NodeID) INode
	NumberOfNodes() int
	// Deepest level holding at least one node
	ActualDepth() int
	Anchors() *data.AnchorSet
	DiscreteNodeCoordinates(point r3.Vector, level int) [3]int
	PathForNodalCoordinates(ijk [3]int, level int) ([]uint8, bool)
	// Follows a path of octants from the root
	Visit(path []uint8) (NodeID, bool)
}

type INode interface {
	Cube() geometry.Cube
	Level() int
	Parent() NodeID
	Child(octant uint8) NodeID
	IsRoot() bool
	IsLeaf() bool
	// Labels stored in this node only, in priority order
	NumberOfLabels() int
	LabelAt(i int) int
	// Labels stored in this node and all of its descendants
	TotalNumberOfLabels() int
}

// Streams label ids for a single frame. Begin must be called before the first LabelID.
type Iterator interface {
	Begin(lastPlaced []int)
	Next()
	IsAtEnd() bool
	LabelID() int
	// Center and half size of the node owning the current label
	NodeGeometry() (r3.Vector, float64)
}
