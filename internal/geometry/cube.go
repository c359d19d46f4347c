package geometry

import "github.com/golang/geo/r3"

// Axis aligned cube described by its center and half of its side length.
// Octree nodes are always cubes so this is cheaper to carry around than a BoundingBox.
type Cube struct {
	Center   r3.Vector
	HalfSize float64
}

func NewCube(center r3.Vector, halfSize float64) Cube {
	return Cube{Center: center, HalfSize: halfSize}
}

// Side length of the cube
func (c Cube) Size() float64 {
	return 2 * c.HalfSize
}

// Returns the child cube occupying the given octant (bit 0 = +x, bit 1 = +y, bit 2 = +z)
func (c Cube) Octant(octant uint8) Cube {
	h := c.HalfSize / 2
	center := c.Center
	if octant&1 != 0 {
		center.X += h
	} else {
		center.X -= h
	}
	if octant&2 != 0 {
		center.Y += h
	} else {
		center.Y -= h
	}
	if octant&4 != 0 {
		center.Z += h
	} else {
		center.Z -= h
	}
	return Cube{Center: center, HalfSize: h}
}

func (c Cube) BoundingBox() *BoundingBox {
	return NewBoundingBox(
		c.Center.X-c.HalfSize, c.Center.X+c.HalfSize,
		c.Center.Y-c.HalfSize, c.Center.Y+c.HalfSize,
		c.Center.Z-c.HalfSize, c.Center.Z+c.HalfSize,
	)
}
