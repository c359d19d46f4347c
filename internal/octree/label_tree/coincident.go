package label_tree

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/glog"
)

// Newton iterations used to invert the spiral arc length
const spiralNewtonIterations = 10

// Returns n points on an Archimedean spiral spaced at roughly equal arc length.
// Point 0 is the spiral center, later points move outward one step each.
func SpiralPoints(n int) []r2.Point {
	points := make([]r2.Point, n)
	a := 1.0 / (4.0 * math.Pi * math.Pi)
	for i := 0; i < n; i++ {
		d := 2.0 * float64(i) / math.Sqrt(3)
		t := 0.553 * math.Pow(d, 0.502)
		for iter := 0; iter < spiralNewtonIterations; iter++ {
			r := math.Sqrt(t*t + a*a)
			f := math.Pi*(t*r+a*a*math.Log(t+r)) - d
			df := 2 * math.Pi * r
			t -= f / df
		}
		points[i] = r2.Point{
			X: t * math.Cos(2*math.Pi*t),
			Y: t * math.Sin(2*math.Pi*t),
		}
	}
	return points
}

// Spreads anchors sharing the exact same position on a small spiral around it,
// so that their labels can be told apart. Groups keep the drop order: the highest
// priority anchor of a group gets the innermost spiral position.
func (tree *LabelTree) perturbCoincidentAnchors(order []int) {
	groups := make(map[r3.Vector][]int)
	var keys []r3.Vector
	for _, id := range order {
		p := tree.anchors.Point(id)
		if _, ok := groups[p]; !ok {
			keys = append(keys, p)
		}
		groups[p] = append(groups[p], id)
	}

	scale := math.Ldexp(tree.nodes[0].cube.Size(), -tree.maximumDepth)
	perturbed := 0
	for _, center := range keys {
		ids := groups[center]
		if len(ids) < 2 {
			continue
		}
		offsets := SpiralPoints(len(ids) + 1)
		for i, id := range ids {
			o := offsets[i+1]
			tree.anchors.SetPoint(id, r3.Vector{
				X: center.X + o.X*scale,
				Y: center.Y + o.Y*scale,
				Z: center.Z,
			})
			tree.coincidentCenters[id] = center
		}
		perturbed += len(ids)
	}
	if perturbed > 0 {
		glog.V(1).Infof("moved %d coincident anchors onto spirals", perturbed)
	}
}

// Original position of an anchor moved by the coincident point removal
func (tree *LabelTree) CoincidentCenter(id int) (r3.Vector, bool) {
	c, ok := tree.coincidentCenters[id]
	return c, ok
}

// Number of anchors that were moved off a shared position
func (tree *LabelTree) NumberOfCoincidentAnchors() int {
	return len(tree.coincidentCenters)
}
