package label_tree

import (
	"github.com/ecopia-map/label_placer/internal/data"
	"github.com/ecopia-map/label_placer/internal/geometry"
	"github.com/ecopia-map/label_placer/internal/octree"
	"github.com/golang/geo/r3"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const (
	DefaultTargetLabelCount = 16
	DefaultMaximumDepth     = 5
	// Deepest level supported. Below it the leaf cell is too small to separate
	// coincident anchors in float64 and the lattice no longer fits in an int.
	MaximumSupportedDepth = 30
)

// Priority octree of label anchors. Every node keeps up to targetLabelCount labels;
// higher priority anchors are dropped first so they settle closer to the root.
// Nodes live in a flat arena addressed by octree.NodeID, the root is always node 0.
type LabelTree struct {
	anchors           *data.AnchorSet
	comparator        PriorityComparator
	targetLabelCount  int
	maximumDepth      int
	nodes             []LabelNode
	actualDepth       int
	coincidentCenters map[int]r3.Vector
	built             bool
}

// Builds an empty LabelTree over the given anchors. Call ComputeHierarchy to fill it.
func NewLabelTree(anchors *data.AnchorSet, targetLabelCount int, maximumDepth int) *LabelTree {
	if targetLabelCount <= 0 {
		glog.Warningf("target label count %d is not positive, using 1", targetLabelCount)
		targetLabelCount = 1
	}
	if maximumDepth < 0 {
		glog.Warningf("maximum depth %d is negative, using 0", maximumDepth)
		maximumDepth = 0
	}
	if maximumDepth > MaximumSupportedDepth {
		glog.Warningf("maximum depth %d is too deep, using %d", maximumDepth, MaximumSupportedDepth)
		maximumDepth = MaximumSupportedDepth
	}
	return &LabelTree{
		anchors:          anchors,
		comparator:       NewPriorityComparator(anchors),
		targetLabelCount: targetLabelCount,
		maximumDepth:     maximumDepth,
	}
}

// Creates a LabelTree and computes its hierarchy in one go
func ComputeHierarchy(anchors *data.AnchorSet, targetLabelCount int, maximumDepth int) (*LabelTree, error) {
	tree := NewLabelTree(anchors, targetLabelCount, maximumDepth)
	return tree, tree.ComputeHierarchy()
}

// Builds the hierarchical tree structure. A previous hierarchy is discarded.
// With no anchors, or inconsistent anchor arrays, the tree is left with an empty root.
func (tree *LabelTree) ComputeHierarchy() error {
	tree.clear()

	if tree.anchors.Len() == 0 {
		tree.initRoot(geometry.NewCube(r3.Vector{}, 0.5))
		tree.built = true
		return nil
	}
	if err := tree.anchors.Validate(); err != nil {
		tree.initRoot(geometry.NewCube(r3.Vector{}, 0.5))
		tree.built = true
		return errors.Wrap(err, "cannot compute label hierarchy")
	}

	box := geometry.NewBoundingBoxFromPoints(tree.anchors.Points)
	size := box.MaxDimension()
	if size <= 0 {
		// a single position: any positive size works, the tree cannot descend anyway
		size = 1
	}
	tree.initRoot(geometry.NewCube(box.Center(), size/2))
	glog.V(1).Infof("label hierarchy root center %v size %f", box.Center(), size)

	order := make([]int, tree.anchors.Len())
	for i := range order {
		order[i] = i
	}
	tree.comparator.Sort(order)

	for _, id := range order {
		tree.dropAnchor(id)
	}
	tree.perturbCoincidentAnchors(order)

	tree.built = true
	glog.V(1).Infof("label hierarchy built: %d anchors, %d nodes, depth %d",
		tree.anchors.Len(), len(tree.nodes), tree.actualDepth)
	return nil
}

func (tree *LabelTree) IsBuilt() bool {
	return tree.built
}

func (tree *LabelTree) Clear() bool {
	tree.clear()
	return true
}

func (tree *LabelTree) Root() octree.NodeID {
	return 0
}

func (tree *LabelTree) Node(id octree.NodeID) octree.INode {
	return &tree.nodes[id]
}

// Concrete node access for callers inside the module that need more than octree.INode
func (tree *LabelTree) LabelNode(id octree.NodeID) *LabelNode {
	return &tree.nodes[id]
}

func (tree *LabelTree) NumberOfNodes() int {
	return len(tree.nodes)
}

func (tree *LabelTree) ActualDepth() int {
	return tree.actualDepth
}

func (tree *LabelTree) Anchors() *data.AnchorSet {
	return tree.anchors
}

func (tree *LabelTree) TargetLabelCount() int {
	return tree.targetLabelCount
}

func (tree *LabelTree) MaximumDepth() int {
	return tree.maximumDepth
}

func (tree *LabelTree) Comparator() PriorityComparator {
	return tree.comparator
}

// Calls fn for every node in breadth first creation order, stopping when fn returns false
func (tree *LabelTree) Walk(fn func(id octree.NodeID, node *LabelNode) bool) {
	if len(tree.nodes) == 0 {
		return
	}
	queue := []octree.NodeID{tree.Root()}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		node := &tree.nodes[id]
		if !fn(id, node) {
			return
		}
		for _, c := range node.children {
			if c != octree.NoNode {
				queue = append(queue, c)
			}
		}
	}
}

func (tree *LabelTree) clear() {
	tree.nodes = nil
	tree.actualDepth = 0
	tree.coincidentCenters = make(map[int]r3.Vector)
	tree.built = false
}

func (tree *LabelTree) initRoot(cube geometry.Cube) {
	tree.nodes = append(tree.nodes[:0], newLabelNode(cube, 0, octree.NoNode, tree.comparator))
}

// Moves down the tree from the root until a node with room is found, or the depth limit is hit,
// creating the missing nodes on the way
func (tree *LabelTree) dropAnchor(id int) {
	root := tree.nodes[0].cube
	size := root.Size()
	p := tree.anchors.Point(id)
	local := [3]float64{
		(p.X-root.Center.X)/size + 0.5,
		(p.Y-root.Center.Y)/size + 0.5,
		(p.Z-root.Center.Z)/size + 0.5,
	}

	current := tree.Root()
	thresh := 0.5
	for {
		node := &tree.nodes[current]
		node.totalNumberOfLabels++
		if node.labels.Len() < tree.targetLabelCount || node.level >= tree.maximumDepth {
			node.labels.Insert(id)
			if node.level > tree.actualDepth {
				tree.actualDepth = node.level
			}
			return
		}

		var octant uint8
		for axis := 0; axis < 3; axis++ {
			if local[axis] >= thresh {
				octant |= 1 << uint(axis)
				local[axis] -= thresh
			}
		}
		thresh /= 2

		child := node.children[octant]
		if child == octree.NoNode {
			child = tree.addChild(current, octant)
		}
		current = child
	}
}

func (tree *LabelTree) addChild(parent octree.NodeID, octant uint8) octree.NodeID {
	p := &tree.nodes[parent]
	child := newLabelNode(p.cube.Octant(octant), p.level+1, parent, tree.comparator)
	id := octree.NodeID(len(tree.nodes))
	tree.nodes[parent].children[octant] = id
	tree.nodes = append(tree.nodes, child)
	return id
}
