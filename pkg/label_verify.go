package pkg

import (
	"fmt"

	"github.com/ecopia-map/label_placer/internal/labeling"
	"github.com/ecopia-map/label_placer/internal/octree"
	"github.com/ecopia-map/label_placer/internal/octree/label_tree"
	"github.com/ecopia-map/label_placer/internal/placer"
	"github.com/ecopia-map/label_placer/pkg/algorithm_manager"
	"github.com/ecopia-map/label_placer/tools"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Builds and places every scene, then checks the hierarchy and the placements for consistency
type LabelVerify struct {
	labeler
	violations []string
}

func NewLabelVerify(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) ILabeler {
	return &LabelVerify{
		labeler: labeler{fileFinder: fileFinder, algorithmManager: algorithmManager},
	}
}

func (verify *LabelVerify) Run(opts *labeling.RunOptions) error {
	verify.violations = verify.violations[:0]
	err := verify.forEachScene(opts, func(prepared *preparedScene) error {
		found := VerifyHierarchy(prepared.tree)
		p, err := placer.NewPlacer(prepared.options)
		if err != nil {
			return err
		}
		for _, frame := range prepared.frames {
			placements := p.Place(prepared.tree, frame.Camera, frame.Viewport, nil)
			for _, v := range VerifyPlacements(placements, prepared.tree.Anchors().Len(), prepared.options) {
				found = append(found, frame.Name+": "+v)
			}
		}
		for _, v := range found {
			glog.Errorf("scene %s: %s", prepared.scene.Name, v)
			verify.violations = append(verify.violations, prepared.scene.Name+": "+v)
		}
		tools.LogOutput("> verified", prepared.scene.Name+",", tools.FmtCount(len(found)), "violations")
		return nil
	})
	if err != nil {
		return err
	}
	if len(verify.violations) > 0 {
		return errors.Errorf("%d violations found", len(verify.violations))
	}
	return nil
}

// Checks that every anchor is stored exactly once, within the depth limit, in priority order
// and that subtree counters add up
func VerifyHierarchy(tree *label_tree.LabelTree) []string {
	var violations []string
	if !tree.IsBuilt() {
		return []string{"hierarchy is not built"}
	}
	comparator := tree.Comparator()
	numLabels := tree.Anchors().Len()
	seen := make([]int, numLabels)

	tree.Walk(func(id octree.NodeID, node *label_tree.LabelNode) bool {
		if node.Level() > tree.MaximumDepth() {
			violations = append(violations, fmt.Sprintf("node %d at level %d exceeds maximum depth %d", id, node.Level(), tree.MaximumDepth()))
		}
		labels := node.Labels()
		for i, label := range labels {
			if label < 0 || label >= numLabels {
				violations = append(violations, fmt.Sprintf("node %d holds invalid label %d", id, label))
				continue
			}
			seen[label]++
			if i > 0 && comparator.Less(label, labels[i-1]) {
				violations = append(violations, fmt.Sprintf("node %d labels %d and %d out of priority order", id, labels[i-1], label))
			}
		}

		total := node.NumberOfLabels()
		for o := uint8(0); o < 8; o++ {
			c := node.Child(o)
			if c == octree.NoNode {
				continue
			}
			child := tree.LabelNode(c)
			total += child.TotalNumberOfLabels()
			if len(labels) > 0 && child.NumberOfLabels() > 0 && comparator.Less(child.LabelAt(0), labels[len(labels)-1]) {
				violations = append(violations, fmt.Sprintf("node %d holds a label with higher priority than its parent %d", c, id))
			}
		}
		if total != node.TotalNumberOfLabels() {
			violations = append(violations, fmt.Sprintf("node %d counts %d labels in its subtree, found %d", id, node.TotalNumberOfLabels(), total))
		}
		return true
	})

	for label, count := range seen {
		if count != 1 {
			violations = append(violations, fmt.Sprintf("label %d stored %d times", label, count))
		}
	}
	return violations
}

// Checks that placed ids are valid and unique and, unless every label is placed, that no two rectangles overlap
func VerifyPlacements(placements []placer.Placement, numLabels int, opts *labeling.Options) []string {
	var violations []string
	seen := make(map[int]bool)
	for i, a := range placements {
		if a.LabelID < 0 || a.LabelID >= numLabels {
			violations = append(violations, fmt.Sprintf("invalid label %d placed", a.LabelID))
		}
		if seen[a.LabelID] {
			violations = append(violations, fmt.Sprintf("label %d placed twice", a.LabelID))
		}
		seen[a.LabelID] = true
		if opts.PlaceAllLabels {
			continue
		}
		for _, b := range placements[i+1:] {
			if a.Rect.Overlaps(b.Rect) {
				violations = append(violations, fmt.Sprintf("labels %d and %d overlap", a.LabelID, b.LabelID))
			}
		}
	}
	return violations
}
