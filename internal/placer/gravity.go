package placer

import (
	"github.com/ecopia-map/label_placer/internal/data"
	"github.com/ecopia-map/label_placer/internal/geometry"
	"github.com/ecopia-map/label_placer/internal/labeling"
)

// Display rectangle of a label whose anchor projects to (x, y)
func AnchorRect(gravity labeling.Gravity, x, y float64, size data.LabelSize) geometry.Rect {
	x0 := x
	switch gravity.Horizontal {
	case labeling.AlignCenter:
		x0 = x - size.Width/2
	case labeling.AlignRight:
		x0 = x - size.Width
	}

	y0 := y
	switch gravity.Vertical {
	case labeling.AlignBaseline:
		y0 = y - size.Descent
	case labeling.AlignMiddle:
		y0 = y - size.Height/2
	case labeling.AlignTop:
		y0 = y - size.Height
	}
	return geometry.NewRect(x0, y0, size.Width, size.Height)
}
