package camera

import (
	"github.com/ecopia-map/label_placer/internal/geometry"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Result of testing a box against the frustum
type Containment int

const (
	Outside Containment = iota
	Intersecting
	Inside
)

func (c Containment) String() string {
	switch c {
	case Outside:
		return "outside"
	case Intersecting:
		return "intersecting"
	case Inside:
		return "inside"
	}
	return "unknown"
}

// Plane in Hessian form: points p with Normal·p + D >= 0 are on the inner side
type Plane struct {
	Normal r3.Vector
	D      float64
}

func (p Plane) Distance(point r3.Vector) float64 {
	return p.Normal.Dot(point) + p.D
}

// Left, right, bottom, top, near and far planes
type Frustum [6]Plane

// Extracts the planes of a combined projection * view matrix
func NewFrustumFromMatrix(clip mgl64.Mat4) Frustum {
	x, y, z, w := clip.Rows()
	rows := [6]mgl64.Vec4{
		w.Add(x),
		w.Sub(x),
		w.Add(y),
		w.Sub(y),
		w.Add(z),
		w.Sub(z),
	}
	var f Frustum
	for i, row := range rows {
		f[i] = planeFromRow(row)
	}
	return f
}

func planeFromRow(row mgl64.Vec4) Plane {
	n := fromVec3(row.Vec3())
	l := n.Norm()
	if l == 0 {
		return Plane{Normal: n, D: row[3]}
	}
	return Plane{Normal: n.Mul(1 / l), D: row[3] / l}
}

func (f Frustum) ContainsPoint(p r3.Vector) bool {
	for _, plane := range f {
		if plane.Distance(p) < 0 {
			return false
		}
	}
	return true
}

// Classifies a box: Outside when all its corners lie behind a single plane, Inside when
// every corner is inside every plane, Intersecting otherwise. Intersecting is conservative:
// a box near a frustum corner may be reported as intersecting while being outside.
func (f Frustum) OverallBoundsTest(box *geometry.BoundingBox) Containment {
	corners := box.Corners()
	result := Inside
	for _, plane := range f {
		in := 0
		for _, c := range corners {
			if plane.Distance(c) >= 0 {
				in++
			}
		}
		if in == 0 {
			return Outside
		}
		if in < len(corners) {
			result = Intersecting
		}
	}
	return result
}
