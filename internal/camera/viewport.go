package camera

import (
	"github.com/ecopia-map/label_placer/internal/geometry"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Pixel rectangle the scene is rendered into
type Viewport struct {
	X, Y          int
	Width, Height int
}

func NewViewport(width, height int) Viewport {
	return Viewport{Width: width, Height: height}
}

func (v Viewport) IsEmpty() bool {
	return v.Width <= 0 || v.Height <= 0
}

func (v Viewport) Aspect() float64 {
	if v.Height == 0 {
		return 1
	}
	return float64(v.Width) / float64(v.Height)
}

func (v Viewport) Area() float64 {
	return float64(v.Width) * float64(v.Height)
}

// Display space rectangle covered by the viewport
func (v Viewport) Bounds() geometry.Rect {
	return geometry.NewRect(float64(v.X), float64(v.Y), float64(v.Width), float64(v.Height))
}

// Caches the matrices of one camera and viewport for repeated world to display conversions
type Projector struct {
	viewport   Viewport
	modelview  mgl64.Mat4
	projection mgl64.Mat4
}

func NewProjector(c *Camera, v Viewport) *Projector {
	return &Projector{
		viewport:   v,
		modelview:  c.ViewTransform(),
		projection: c.ProjectionTransform(v.Aspect()),
	}
}

// Display coordinates of a world point: x and y in pixels from the viewport origin
// of the display, z the normalized depth in [0, 1] for points inside the clipping range
func (p *Projector) WorldToDisplay(point r3.Vector) r3.Vector {
	win := mgl64.Project(toVec3(point), p.modelview, p.projection,
		p.viewport.X, p.viewport.Y, p.viewport.Width, p.viewport.Height)
	return fromVec3(win)
}
