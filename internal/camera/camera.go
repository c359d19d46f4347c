package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

const (
	DefaultViewAngle = 30.0
	DefaultNear      = 0.01
	DefaultFar       = 1000.0
)

// Perspective camera. ViewAngle is the vertical field of view in degrees and
// ClippingRange holds the near and far distances along the direction of projection.
type Camera struct {
	Position      r3.Vector
	FocalPoint    r3.Vector
	ViewUp        r3.Vector
	ViewAngle     float64
	ClippingRange [2]float64
}

func NewCamera(position, focalPoint, viewUp r3.Vector, viewAngle, near, far float64) *Camera {
	return &Camera{
		Position:      position,
		FocalPoint:    focalPoint,
		ViewUp:        viewUp,
		ViewAngle:     viewAngle,
		ClippingRange: [2]float64{near, far},
	}
}

// Checks that the camera describes a usable perspective view
func (c *Camera) Validate() error {
	dop := c.FocalPoint.Sub(c.Position)
	if dop.Norm() == 0 {
		return errors.New("camera position and focal point coincide")
	}
	if c.ViewUp.Norm() == 0 || dop.Cross(c.ViewUp).Norm() == 0 {
		return errors.Errorf("view up %v is null or parallel to the direction of projection", c.ViewUp)
	}
	if c.ViewAngle <= 0 || c.ViewAngle >= 180 {
		return errors.Errorf("view angle %f must be in (0, 180) degrees", c.ViewAngle)
	}
	if c.ClippingRange[0] <= 0 || c.ClippingRange[1] <= c.ClippingRange[0] {
		return errors.Errorf("invalid clipping range %v", c.ClippingRange)
	}
	return nil
}

// Unit vector from the camera position towards the focal point
func (c *Camera) DirectionOfProjection() r3.Vector {
	return c.FocalPoint.Sub(c.Position).Normalize()
}

// Opposite of the direction of projection
func (c *Camera) ViewPlaneNormal() r3.Vector {
	return c.DirectionOfProjection().Mul(-1)
}

func (c *Camera) Distance() float64 {
	return c.FocalPoint.Sub(c.Position).Norm()
}

func (c *Camera) ViewAngleRadians() float64 {
	return mgl64.DegToRad(c.ViewAngle)
}

// World to eye transform
func (c *Camera) ViewTransform() mgl64.Mat4 {
	return mgl64.LookAtV(toVec3(c.Position), toVec3(c.FocalPoint), toVec3(c.ViewUp))
}

// Eye to clip transform for the given width/height ratio
func (c *Camera) ProjectionTransform(aspect float64) mgl64.Mat4 {
	if aspect <= 0 || math.IsNaN(aspect) {
		aspect = 1
	}
	return mgl64.Perspective(c.ViewAngleRadians(), aspect, c.ClippingRange[0], c.ClippingRange[1])
}

// Signed distance of p from the camera along the direction of projection
func (c *Camera) DepthOf(p r3.Vector) float64 {
	return p.Sub(c.Position).Dot(c.DirectionOfProjection())
}

// The six planes bounding the view volume with normals pointing inside
func (c *Camera) FrustumPlanes(aspect float64) Frustum {
	return NewFrustumFromMatrix(c.ProjectionTransform(aspect).Mul4(c.ViewTransform()))
}

func toVec3(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec3(v mgl64.Vec3) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}
