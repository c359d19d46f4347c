package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// Axis aligned box in world coordinates. Mid values are cached because the octree
// and the frustum tests read them far more often than the box changes.
type BoundingBox struct {
	Xmin, Xmax       float64
	Ymin, Ymax       float64
	Zmin, Zmax       float64
	Xmid, Ymid, Zmid float64
}

// Builds a BoundingBox from its extremes
func NewBoundingBox(minX, maxX, minY, maxY, minZ, maxZ float64) *BoundingBox {
	return &BoundingBox{
		Xmin: minX,
		Xmax: maxX,
		Ymin: minY,
		Ymax: maxY,
		Zmin: minZ,
		Zmax: maxZ,
		Xmid: (minX + maxX) / 2,
		Ymid: (minY + maxY) / 2,
		Zmid: (minZ + maxZ) / 2,
	}
}

// Computes the bounding box enclosing all given points. Returns nil for an empty slice.
func NewBoundingBoxFromPoints(points []r3.Vector) *BoundingBox {
	if len(points) == 0 {
		return nil
	}
	minX, minY, minZ := math.Inf(1), math.Inf(1), math.Inf(1)
	maxX, maxY, maxZ := math.Inf(-1), math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		minZ, maxZ = math.Min(minZ, p.Z), math.Max(maxZ, p.Z)
	}
	return NewBoundingBox(minX, maxX, minY, maxY, minZ, maxZ)
}

// Returns the bounding box of the given octant of the parent box. Octant bit 0 selects
// the upper x half, bit 1 the upper y half and bit 2 the upper z half.
func NewBoundingBoxFromParent(parent *BoundingBox, octant uint8) *BoundingBox {
	xMin, xMax := parent.Xmin, parent.Xmid
	yMin, yMax := parent.Ymin, parent.Ymid
	zMin, zMax := parent.Zmin, parent.Zmid
	if octant&1 != 0 {
		xMin, xMax = parent.Xmid, parent.Xmax
	}
	if octant&2 != 0 {
		yMin, yMax = parent.Ymid, parent.Ymax
	}
	if octant&4 != 0 {
		zMin, zMax = parent.Zmid, parent.Zmax
	}
	return NewBoundingBox(xMin, xMax, yMin, yMax, zMin, zMax)
}

func (b *BoundingBox) Center() r3.Vector {
	return r3.Vector{X: b.Xmid, Y: b.Ymid, Z: b.Zmid}
}

// Extent of the box along each axis
func (b *BoundingBox) Size() r3.Vector {
	return r3.Vector{X: b.Xmax - b.Xmin, Y: b.Ymax - b.Ymin, Z: b.Zmax - b.Zmin}
}

// Largest extent among the three axes
func (b *BoundingBox) MaxDimension() float64 {
	s := b.Size()
	return math.Max(s.X, math.Max(s.Y, s.Z))
}

func (b *BoundingBox) Contains(p r3.Vector) bool {
	return p.X >= b.Xmin && p.X <= b.Xmax &&
		p.Y >= b.Ymin && p.Y <= b.Ymax &&
		p.Z >= b.Zmin && p.Z <= b.Zmax
}

// The 8 corners of the box, indexed like octants
func (b *BoundingBox) Corners() [8]r3.Vector {
	var corners [8]r3.Vector
	for i := 0; i < 8; i++ {
		c := r3.Vector{X: b.Xmin, Y: b.Ymin, Z: b.Zmin}
		if i&1 != 0 {
			c.X = b.Xmax
		}
		if i&2 != 0 {
			c.Y = b.Ymax
		}
		if i&4 != 0 {
			c.Z = b.Zmax
		}
		corners[i] = c
	}
	return corners
}
