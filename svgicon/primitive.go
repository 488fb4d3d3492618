package svgicon

import "github.com/benoitkugler/svgflat/svgmatrix"

// Paint holds the resolved paint of a primitive.
type Paint struct {
	FillColor   string // empty when the shape is not filled
	StrokeColor string // empty when the shape is not stroked
	StrokeWidth float64
	Opacity     float64

	// Matrix maps the shape geometry to the root coordinates.
	// It is nil when no transform applies.
	Matrix *svgmatrix.Matrix2D
}

// Primitive is one drawable shape, with absolute geometry and paint.
// It is implemented by Rect, Circle and Path only.
type Primitive interface {
	Style() Paint
	isPrimitive()
}

// Rect is a rectangle with (optionally) rounded corners.
type Rect struct {
	X, Y, Width, Height float64
	Radius              float64 // corner radius, from the rx attribute
	Paint
}

// Circle is given by its center and radius.
type Circle struct {
	CX, CY, R float64
	Paint
}

// Path carries the raw SVG path data, which is not interpreted.
type Path struct {
	D string
	Paint
}

func (r Rect) Style() Paint   { return r.Paint }
func (c Circle) Style() Paint { return c.Paint }
func (p Path) Style() Paint   { return p.Paint }

func (Rect) isPrimitive()   {}
func (Circle) isPrimitive() {}
func (Path) isPrimitive()   {}
