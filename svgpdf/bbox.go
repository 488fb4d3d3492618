package svgpdf

import (
	"math"

	"github.com/benoitkugler/svgflat/svgdraw"
	"github.com/benoitkugler/svgflat/svgicon"
	"golang.org/x/image/math/fixed"
)

// compute the extent of the drawn primitives, needed to
// size the page of a document without width and height

type line [2]fixed.Point26_6

func (l line) criticalPoints() (tX, tY []float64) { return nil, nil }

func (l line) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := svgdraw.FixedToF(l[0])
	p1x, p1y := svgdraw.FixedToF(l[1])
	return (p1x-p0x)*t + p0x, (p1y-p0y)*t + p0y
}

type quadBezier [3]fixed.Point26_6

// x = (p0 + p2 - 2p1)t^2 + 2(p1 - p0)t + p0
func bezierQuad(p0, p1, p2, t float64) float64 {
	return (p0+p2-2*p1)*t*t + 2*(p1-p0)*t + p0
}

// the derivative of bezierQuad is a*t + b
func quadraticDerivative(p0, p1, p2 float64) (a, b float64) {
	return 2 * (p2 - 2*p1 + p0), 2 * (p1 - p0)
}

func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

func (cu quadBezier) criticalPoints() (tX, tY []float64) {
	p0x, p0y := svgdraw.FixedToF(cu[0])
	p1x, p1y := svgdraw.FixedToF(cu[1])
	p2x, p2y := svgdraw.FixedToF(cu[2])
	return linearRoots(quadraticDerivative(p0x, p1x, p2x)), linearRoots(quadraticDerivative(p0y, p1y, p2y))
}

func (cu quadBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := svgdraw.FixedToF(cu[0])
	p1x, p1y := svgdraw.FixedToF(cu[1])
	p2x, p2y := svgdraw.FixedToF(cu[2])
	return bezierQuad(p0x, p1x, p2x, t), bezierQuad(p0y, p1y, p2y, t)
}

type cubicBezier [4]fixed.Point26_6

// x = (p3 - 3p2 + 3p1 - p0)t^3 + (3p2 - 6p1 + 3p0)t^2 + (3p1 - 3p0)t + p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		p0
}

// the derivative of bezierSpline is a*t^2 + b*t + c
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		return linearRoots(b, c)
	}
	d := b*b - 4*a*c
	switch {
	case d < 0:
		return nil
	case d == 0:
		return []float64{-b / (2 * a)}
	default:
		sq := math.Sqrt(d)
		return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
	}
}

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	p0x, p0y := svgdraw.FixedToF(cu[0])
	p1x, p1y := svgdraw.FixedToF(cu[1])
	p2x, p2y := svgdraw.FixedToF(cu[2])
	p3x, p3y := svgdraw.FixedToF(cu[3])
	return quadraticRoots(cubicDerivative(p0x, p1x, p2x, p3x)), quadraticRoots(cubicDerivative(p0y, p1y, p2y, p3y))
}

func (cu cubicBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := svgdraw.FixedToF(cu[0])
	p1x, p1y := svgdraw.FixedToF(cu[1])
	p2x, p2y := svgdraw.FixedToF(cu[2])
	p3x, p3y := svgdraw.FixedToF(cu[3])
	return bezierSpline(p0x, p1x, p2x, p3x, t), bezierSpline(p0y, p1y, p2y, p3y, t)
}

type bezier interface {
	// compute the t zeroing the derivative
	criticalPoints() (tX, tY []float64)
	// compute the point a time t
	evaluateCurve(t float64) (x, y float64)
}

// box is a bounding box in user space, empty until
// the first point is added
type box struct {
	minX, minY, maxX, maxY float64
	set                    bool
}

func (b *box) add(x, y float64) {
	if !b.set {
		b.minX, b.maxX, b.minY, b.maxY = x, x, y, y
		b.set = true
		return
	}
	b.minX, b.maxX = math.Min(b.minX, x), math.Max(b.maxX, x)
	b.minY, b.maxY = math.Min(b.minY, y), math.Max(b.maxY, y)
}

func (b *box) union(o box) {
	if !o.set {
		return
	}
	b.add(o.minX, o.minY)
	b.add(o.maxX, o.maxY)
}

func (b box) pad(d float64) box {
	if !b.set {
		return b
	}
	return box{minX: b.minX - d, minY: b.minY - d, maxX: b.maxX + d, maxY: b.maxY + d, set: true}
}

func (b box) toFixed() fixed.Rectangle26_6 {
	return fixed.Rectangle26_6{Min: svgdraw.ToFixedP(b.minX, b.minY), Max: svgdraw.ToFixedP(b.maxX, b.maxY)}
}

func computeBoundingBox(curve bezier) box {
	tX, tY := curve.criticalPoints()
	var out box
	// begin and end point, then the extremums
	for _, t := range append(append([]float64{0, 1}, tX...), tY...) {
		if !(0 <= t && t <= 1) {
			continue
		}
		out.add(curve.evaluateCurve(t))
	}
	return out
}

// boundsAdder accumulates the bounding box
// of the outlines it receives
type boundsAdder struct {
	a   fixed.Point26_6 // current point
	box box
}

func (p *boundsAdder) Start(a fixed.Point26_6) {
	p.a = a
	p.box.add(svgdraw.FixedToF(a))
}

func (p *boundsAdder) Line(b fixed.Point26_6) {
	p.box.union(computeBoundingBox(line{p.a, b}))
	p.a = b
}

func (p *boundsAdder) QuadBezier(b, c fixed.Point26_6) {
	p.box.union(computeBoundingBox(quadBezier{p.a, b, c}))
	p.a = c
}

func (p *boundsAdder) CubeBezier(b, c, d fixed.Point26_6) {
	p.box.union(computeBoundingBox(cubicBezier{p.a, b, c, d}))
	p.a = d
}

func (p *boundsAdder) Stop(bool) {}

// Extent returns the bounding box of the primitives, once
// their matrix applied. Stroked outlines are padded by half
// their line width, and path data which can't be read is skipped.
// The result is empty if nothing would be drawn.
func Extent(primitives []svgicon.Primitive) fixed.Rectangle26_6 {
	var total box
	for _, prim := range primitives {
		style := prim.Style()
		if style.FillColor == "" && style.StrokeColor == "" {
			continue
		}
		var p boundsAdder
		switch prim := prim.(type) {
		case svgicon.Rect:
			if prim.Width <= 0 || prim.Height <= 0 { // not drawn
				continue
			}
			svgdraw.AddRoundRect(prim.X, prim.Y, prim.Width, prim.Height, prim.Radius, style.Matrix, &p)
		case svgicon.Circle:
			if prim.R <= 0 {
				continue
			}
			svgdraw.AddCircle(prim.CX, prim.CY, prim.R, style.Matrix, &p)
		case svgicon.Path:
			if err := svgdraw.AddPath(prim.D, style.Matrix, &p); err != nil {
				continue
			}
		}
		if style.StrokeColor != "" {
			w := svgdraw.LineWidth(svgdraw.Paint{StrokeWidth: style.StrokeWidth, Matrix: style.Matrix})
			p.box = p.box.pad(w / 2)
		}
		total.union(p.box)
	}
	if !total.set {
		return fixed.Rectangle26_6{}
	}
	return total.toFixed()
}
