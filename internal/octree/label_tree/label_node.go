package label_tree

import (
	"github.com/ecopia-map/label_placer/internal/geometry"
	"github.com/ecopia-map/label_placer/internal/octree"
)

// Models a node of the label octree. A node keeps the highest priority labels that reached it
// and hands the rest down to the child containing them. Children are created on demand,
// so a non-leaf node may have fewer than 8 children.
type LabelNode struct {
	cube                geometry.Cube
	level               int
	parent              octree.NodeID
	children            [8]octree.NodeID
	labels              LabelSet
	totalNumberOfLabels int
}

// Instantiates a new LabelNode with no children
func newLabelNode(cube geometry.Cube, level int, parent octree.NodeID, comparator PriorityComparator) LabelNode {
	node := LabelNode{
		cube:   cube,                    // cube covered by the node
		level:  level,                   // 0 for the root
		parent: parent,                  // octree.NoNode for the root
		labels: newLabelSet(comparator), // labels stored in this node
	}
	for i := range node.children {
		node.children[i] = octree.NoNode
	}
	return node
}

func (n *LabelNode) Cube() geometry.Cube {
	return n.cube
}

func (n *LabelNode) Level() int {
	return n.level
}

func (n *LabelNode) Parent() octree.NodeID {
	return n.parent
}

func (n *LabelNode) Child(octant uint8) octree.NodeID {
	return n.children[octant]
}

func (n *LabelNode) IsRoot() bool {
	return n.parent == octree.NoNode
}

func (n *LabelNode) IsLeaf() bool {
	for _, c := range n.children {
		if c != octree.NoNode {
			return false
		}
	}
	return true
}

func (n *LabelNode) NumberOfChildren() int {
	count := 0
	for _, c := range n.children {
		if c != octree.NoNode {
			count++
		}
	}
	return count
}

func (n *LabelNode) NumberOfLabels() int {
	return n.labels.Len()
}

func (n *LabelNode) LabelAt(i int) int {
	return n.labels.At(i)
}

func (n *LabelNode) Labels() []int {
	return n.labels.IDs()
}

func (n *LabelNode) TotalNumberOfLabels() int {
	return n.totalNumberOfLabels
}
