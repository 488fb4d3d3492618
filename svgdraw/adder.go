package svgdraw

import (
	"math"

	"github.com/benoitkugler/svgflat/svgmatrix"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// This file implements the transformation from
// primitives to path commands, sent to a rasterx.Adder.

// ToFixedP converts two floats to a fixed point.
func ToFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// FixedToF converts a fixed point to two floats.
func FixedToF(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

// MatrixAdder is an adder that applies matrix M to all points
type MatrixAdder struct {
	rasterx.Adder
	M svgmatrix.Matrix2D
}

func (t MatrixAdder) tr(a fixed.Point26_6) fixed.Point26_6 {
	return ToFixedP(t.M.Transform(FixedToF(a)))
}

// Start starts a new path
func (t MatrixAdder) Start(a fixed.Point26_6) {
	t.Adder.Start(t.tr(a))
}

// Line adds a linear segment to the current curve.
func (t MatrixAdder) Line(b fixed.Point26_6) {
	t.Adder.Line(t.tr(b))
}

// QuadBezier adds a quadratic segment to the current curve.
func (t MatrixAdder) QuadBezier(b, c fixed.Point26_6) {
	t.Adder.QuadBezier(t.tr(b), t.tr(c))
}

// CubeBezier adds a cubic segment to the current curve.
func (t MatrixAdder) CubeBezier(b, c, d fixed.Point26_6) {
	t.Adder.CubeBezier(t.tr(b), t.tr(c), t.tr(d))
}

// transformed wraps p when a matrix is needed.
func transformed(m *svgmatrix.Matrix2D, p rasterx.Adder) rasterx.Adder {
	if m == nil {
		return p
	}
	return MatrixAdder{Adder: p, M: *m}
}

// AddRoundRect adds the outline of a rectangle with corners
// of radius r, mapped by m (which may be nil).
func AddRoundRect(x, y, w, h, r float64, m *svgmatrix.Matrix2D, p rasterx.Adder) {
	rasterx.AddRoundRect(x, y, x+w, y+h, r, r, 0, rasterx.RoundGap, transformed(m, p))
}

// AddCircle adds the outline of a circle, mapped by m (which may be nil).
func AddCircle(cx, cy, r float64, m *svgmatrix.Matrix2D, p rasterx.Adder) {
	rasterx.AddCircle(cx, cy, r, transformed(m, p))
}

// AddPath interprets the SVG path data d and adds it
// to p, mapped by m (which may be nil).
func AddPath(d string, m *svgmatrix.Matrix2D, p rasterx.Adder) error {
	var cursor oksvg.PathCursor
	if err := cursor.CompilePath(d); err != nil {
		return err
	}
	cursor.Path.AddTo(transformed(m, p))
	return nil
}

// LineWidth returns the stroke width of p in device space,
// scaled by the mean expansion of its matrix.
func LineWidth(p Paint) float64 {
	if p.Matrix == nil {
		return p.StrokeWidth
	}
	return p.StrokeWidth * math.Sqrt(math.Abs(p.Matrix.Det()))
}
