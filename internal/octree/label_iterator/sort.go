package label_iterator

import (
	"sort"

	"github.com/ecopia-map/label_placer/internal/octree"
)

// Stable sort by ascending distance. Equal distances keep the octant order.
func sortNodesByDistance(nodes []octree.NodeID, distance func(octree.NodeID) float64) {
	d := make(map[octree.NodeID]float64, len(nodes))
	for _, n := range nodes {
		d[n] = distance(n)
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return d[nodes[i]] < d[nodes[j]]
	})
}
