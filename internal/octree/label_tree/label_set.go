package label_tree

import (
	"sort"

	"github.com/ecopia-map/label_placer/internal/data"
)

// Orders label ids by descending priority, ties broken by ascending id.
// It is bound to the anchors of one tree so that several trees can coexist.
type PriorityComparator struct {
	anchors *data.AnchorSet
}

func NewPriorityComparator(anchors *data.AnchorSet) PriorityComparator {
	return PriorityComparator{anchors: anchors}
}

// Reports whether label a must come before label b
func (c PriorityComparator) Less(a, b int) bool {
	pa, pb := c.anchors.Priority(a), c.anchors.Priority(b)
	if pa != pb {
		return pa > pb
	}
	return a < b
}

// Sorts ids in place in priority order
func (c PriorityComparator) Sort(ids []int) {
	sort.SliceStable(ids, func(i, j int) bool {
		return c.Less(ids[i], ids[j])
	})
}

// Ordered set of label ids kept sorted by a PriorityComparator
type LabelSet struct {
	ids        []int
	comparator PriorityComparator
}

func newLabelSet(comparator PriorityComparator) LabelSet {
	return LabelSet{comparator: comparator}
}

// Inserts id at its priority position. Ids are unique across the tree so no duplicate check is done.
func (s *LabelSet) Insert(id int) {
	i := sort.Search(len(s.ids), func(i int) bool {
		return s.comparator.Less(id, s.ids[i])
	})
	s.ids = append(s.ids, 0)
	copy(s.ids[i+1:], s.ids[i:])
	s.ids[i] = id
}

func (s *LabelSet) Len() int {
	return len(s.ids)
}

func (s *LabelSet) At(i int) int {
	return s.ids[i]
}

// Copy of the ids in priority order
func (s *LabelSet) IDs() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}
