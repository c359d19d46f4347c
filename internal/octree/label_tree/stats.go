package label_tree

import "github.com/ecopia-map/label_placer/internal/octree"

// Shape summary of a built hierarchy
type Stats struct {
	Anchors          int
	Nodes            int
	Leaves           int
	MaximumLevel     int
	AverageLeafDepth float64
	LabelsPerLevel   []int
	Coincident       int
}

func (tree *LabelTree) Stats() Stats {
	stats := Stats{
		Anchors:        tree.anchors.Len(),
		Nodes:          len(tree.nodes),
		LabelsPerLevel: make([]int, tree.actualDepth+1),
		Coincident:     len(tree.coincidentCenters),
	}
	if len(tree.nodes) == 0 {
		return stats
	}
	leafDepthSum := 0
	tree.Walk(func(id octree.NodeID, node *LabelNode) bool {
		if node.level > stats.MaximumLevel {
			stats.MaximumLevel = node.level
		}
		if node.level < len(stats.LabelsPerLevel) {
			stats.LabelsPerLevel[node.level] += node.NumberOfLabels()
		}
		if node.IsLeaf() {
			stats.Leaves++
			leafDepthSum += node.level
		}
		return true
	})
	if stats.Leaves > 0 {
		stats.AverageLeafDepth = float64(leafDepthSum) / float64(stats.Leaves)
	}
	return stats
}
