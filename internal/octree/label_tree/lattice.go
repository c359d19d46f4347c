package label_tree

import (
	"math"

	"github.com/ecopia-map/label_placer/internal/octree"
	"github.com/golang/geo/r3"
)

// Integer coordinates of the cell containing point on the regular 2^level lattice covering
// the root cube. Points outside the root give coordinates outside [0, 2^level).
func (tree *LabelTree) DiscreteNodeCoordinates(point r3.Vector, level int) [3]int {
	root := tree.nodes[0].cube
	m := float64(int(1) << uint(level))
	scale := m / root.Size()
	return [3]int{
		int(math.Floor((point.X-root.Center.X)*scale + m/2)),
		int(math.Floor((point.Y-root.Center.Y)*scale + m/2)),
		int(math.Floor((point.Z-root.Center.Z)*scale + m/2)),
	}
}

// Converts lattice coordinates at the given level into the octants to follow from the root.
// Returns false when the coordinates are outside the lattice.
func (tree *LabelTree) PathForNodalCoordinates(ijk [3]int, level int) ([]uint8, bool) {
	m := int(1) << uint(level)
	for _, v := range ijk {
		if v < 0 || v >= m {
			return nil, false
		}
	}
	path := make([]uint8, level)
	for l := 0; l < level; l++ {
		m >>= 1
		var octant uint8
		for axis := 0; axis < 3; axis++ {
			if ijk[axis] >= m {
				octant |= 1 << uint(axis)
				ijk[axis] -= m
			}
		}
		path[l] = octant
	}
	return path, true
}

// Follows path from the root. Returns false if a node along it was never created.
func (tree *LabelTree) Visit(path []uint8) (octree.NodeID, bool) {
	current := tree.Root()
	for _, octant := range path {
		if octant > 7 {
			return octree.NoNode, false
		}
		next := tree.nodes[current].children[octant]
		if next == octree.NoNode {
			return octree.NoNode, false
		}
		current = next
	}
	return current, true
}
