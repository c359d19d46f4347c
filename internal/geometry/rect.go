package geometry

import "math"

// Axis aligned rectangle in display coordinates
type Rect struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

func NewRect(x, y, width, height float64) Rect {
	return Rect{Xmin: x, Xmax: x + width, Ymin: y, Ymax: y + height}
}

func (r Rect) Width() float64 {
	return r.Xmax - r.Xmin
}

func (r Rect) Height() float64 {
	return r.Ymax - r.Ymin
}

func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

func (r Rect) IsEmpty() bool {
	return r.Xmax <= r.Xmin || r.Ymax <= r.Ymin
}

func (r Rect) IsFinite() bool {
	for _, v := range [4]float64{r.Xmin, r.Xmax, r.Ymin, r.Ymax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Xmin: r.Xmin + dx, Xmax: r.Xmax + dx, Ymin: r.Ymin + dy, Ymax: r.Ymax + dy}
}

// Grows the rectangle by m on every side
func (r Rect) Expand(m float64) Rect {
	return Rect{Xmin: r.Xmin - m, Xmax: r.Xmax + m, Ymin: r.Ymin - m, Ymax: r.Ymax + m}
}

// Intersection of r and bounds. The boolean is false when nothing of r lies inside bounds
// or when r has a non finite edge.
func (r Rect) Clip(bounds Rect) (Rect, bool) {
	if !r.IsFinite() {
		return Rect{}, false
	}
	c := Rect{
		Xmin: math.Max(r.Xmin, bounds.Xmin),
		Xmax: math.Min(r.Xmax, bounds.Xmax),
		Ymin: math.Max(r.Ymin, bounds.Ymin),
		Ymax: math.Min(r.Ymax, bounds.Ymax),
	}
	if c.Xmax < c.Xmin || c.Ymax < c.Ymin {
		return Rect{}, false
	}
	return c, true
}

// Signed separations between r and o: r left of o, o left of r, r below o, o below r.
// Each one is negative when the rectangles overlap along that direction.
func (r Rect) Gaps(o Rect) [4]float64 {
	return [4]float64{
		r.Xmin - o.Xmax,
		o.Xmin - r.Xmax,
		r.Ymin - o.Ymax,
		o.Ymin - r.Ymax,
	}
}

// True when the interiors of the two rectangles intersect. Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	for _, d := range r.Gaps(o) {
		if d >= 0 {
			return false
		}
	}
	return true
}

// Largest of the four gaps: positive means separated by that distance, negative means overlapping
func (r Rect) Separation(o Rect) float64 {
	g := r.Gaps(o)
	return math.Max(math.Max(g[0], g[1]), math.Max(g[2], g[3]))
}
