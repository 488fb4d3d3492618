// Given a parsed SVG document, implements how to
// draw it on screen.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.
package svgdraw

import (
	"github.com/benoitkugler/svgflat/svgicon"
	"github.com/benoitkugler/svgflat/svgmatrix"
)

// Paint is the paint of one draw operation.
type Paint struct {
	Color       string // as found in the document, never empty
	Opacity     float64
	StrokeWidth float64 // only meaningful when stroking

	// Matrix must be applied to the geometry before drawing.
	// It is nil for the identity.
	Matrix *svgmatrix.Matrix2D
}

// Renderer knows how to do the actual draw operations
// but doesn't need any SVG knowledge.
// Drawing never fails: a renderer unable to use a paint
// skips the operation.
type Renderer interface {
	FillRoundRect(x, y, w, h, r float64, p Paint)
	StrokeRoundRect(x, y, w, h, r float64, p Paint)
	FillCircle(cx, cy, r float64, p Paint)
	StrokeCircle(cx, cy, r float64, p Paint)
	// FillPath and StrokePath receive the raw SVG path data.
	FillPath(d string, p Paint)
	StrokePath(d string, p Paint)
}

// Draw sends the primitives to the renderer, in order.
func Draw(primitives []svgicon.Primitive, r Renderer) {
	for _, p := range primitives {
		DrawPrimitive(p, r)
	}
}

// DrawPrimitive fills then strokes the primitive.
// A disabled fill (or stroke) results in no call at all.
func DrawPrimitive(prim svgicon.Primitive, r Renderer) {
	style := prim.Style()
	opacity := clampOpacity(style.Opacity)
	fill := Paint{Color: style.FillColor, Opacity: opacity, Matrix: style.Matrix}
	stroke := Paint{Color: style.StrokeColor, Opacity: opacity, StrokeWidth: style.StrokeWidth, Matrix: style.Matrix}
	willFill, willStroke := fill.Color != "", stroke.Color != ""

	switch prim := prim.(type) {
	case svgicon.Rect:
		if willFill {
			r.FillRoundRect(prim.X, prim.Y, prim.Width, prim.Height, prim.Radius, fill)
		}
		if willStroke {
			r.StrokeRoundRect(prim.X, prim.Y, prim.Width, prim.Height, prim.Radius, stroke)
		}
	case svgicon.Circle:
		if willFill {
			r.FillCircle(prim.CX, prim.CY, prim.R, fill)
		}
		if willStroke {
			r.StrokeCircle(prim.CX, prim.CY, prim.R, stroke)
		}
	case svgicon.Path:
		if willFill {
			r.FillPath(prim.D, fill)
		}
		if willStroke {
			r.StrokePath(prim.D, stroke)
		}
	}
}

// clampOpacity restricts o to [0, 1]
func clampOpacity(o float64) float64 {
	if o < 0 {
		return 0
	}
	if o > 1 {
		return 1
	}
	return o
}
