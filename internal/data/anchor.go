package data

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

type LabelKind uint8

const (
	TextLabel LabelKind = iota
	IconLabel
)

func (k LabelKind) String() string {
	switch k {
	case TextLabel:
		return "text"
	case IconLabel:
		return "icon"
	}
	return "unknown"
}

// Display size of a label. Bearing and Descent are the two extra metrics of a text label:
// Descent is the distance between the baseline and the bottom of the label rectangle.
type LabelSize struct {
	Width   float64
	Height  float64
	Bearing float64
	Descent float64
}

// A single labelled point, the unit the CLI and the scene loader work with
type Anchor struct {
	Position  r3.Vector
	Priority  float64
	Size      LabelSize
	Kind      LabelKind
	Text      string
	IconIndex int
}

// Anchors stored as parallel arrays indexed by label id. Priorities may be nil,
// in which case every anchor has priority 0 and ties are broken by id.
type AnchorSet struct {
	Points      []r3.Vector
	Priorities  []float64
	Sizes       []LabelSize
	Kinds       []LabelKind
	Texts       []string
	IconIndices []int
}

// Builds an AnchorSet from a slice of anchors
func NewAnchorSet(anchors []Anchor) *AnchorSet {
	set := &AnchorSet{
		Points:      make([]r3.Vector, len(anchors)),
		Priorities:  make([]float64, len(anchors)),
		Sizes:       make([]LabelSize, len(anchors)),
		Kinds:       make([]LabelKind, len(anchors)),
		Texts:       make([]string, len(anchors)),
		IconIndices: make([]int, len(anchors)),
	}
	for i, a := range anchors {
		set.Points[i] = a.Position
		set.Priorities[i] = a.Priority
		set.Sizes[i] = a.Size
		set.Kinds[i] = a.Kind
		set.Texts[i] = a.Text
		set.IconIndices[i] = a.IconIndex
	}
	return set
}

// Number of anchors
func (s *AnchorSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// Checks that every optional array is either absent or as long as Points,
// and that positions, priorities and sizes are finite
func (s *AnchorSet) Validate() error {
	n := len(s.Points)
	check := func(name string, l int) error {
		if l != 0 && l != n {
			return errors.Errorf("anchor set has %d points but %d %s", n, l, name)
		}
		return nil
	}
	for _, c := range []struct {
		name string
		l    int
	}{
		{"priorities", len(s.Priorities)},
		{"sizes", len(s.Sizes)},
		{"kinds", len(s.Kinds)},
		{"texts", len(s.Texts)},
		{"icon indices", len(s.IconIndices)},
	} {
		if err := check(c.name, c.l); err != nil {
			return err
		}
	}
	for i, p := range s.Points {
		if !isFinite(p.X, p.Y, p.Z) {
			return errors.Errorf("anchor %d has non finite position %v", i, p)
		}
	}
	for i, p := range s.Priorities {
		if math.IsNaN(p) {
			return errors.Errorf("anchor %d has NaN priority", i)
		}
	}
	for i, size := range s.Sizes {
		if !isFinite(size.Width, size.Height, size.Bearing, size.Descent) {
			return errors.Errorf("anchor %d has non finite size %+v", i, size)
		}
	}
	return nil
}

func isFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s *AnchorSet) Point(id int) r3.Vector {
	return s.Points[id]
}

// Moves an anchor. Only the coincident point removal uses this.
func (s *AnchorSet) SetPoint(id int, p r3.Vector) {
	s.Points[id] = p
}

func (s *AnchorSet) Priority(id int) float64 {
	if len(s.Priorities) == 0 {
		return 0
	}
	return s.Priorities[id]
}

func (s *AnchorSet) Size(id int) LabelSize {
	if len(s.Sizes) == 0 {
		return LabelSize{}
	}
	return s.Sizes[id]
}

func (s *AnchorSet) Kind(id int) LabelKind {
	if len(s.Kinds) == 0 {
		return TextLabel
	}
	return s.Kinds[id]
}

func (s *AnchorSet) Text(id int) string {
	if len(s.Texts) == 0 {
		return ""
	}
	return s.Texts[id]
}

func (s *AnchorSet) IconIndex(id int) int {
	if len(s.IconIndices) == 0 {
		return 0
	}
	return s.IconIndices[id]
}

// Rebuilds the Anchor record of the given id
func (s *AnchorSet) Anchor(id int) Anchor {
	return Anchor{
		Position:  s.Point(id),
		Priority:  s.Priority(id),
		Size:      s.Size(id),
		Kind:      s.Kind(id),
		Text:      s.Text(id),
		IconIndex: s.IconIndex(id),
	}
}
