package svgicon

import (
	"log/slog"

	"github.com/benoitkugler/svgflat/svgmatrix"
)

// elementKind is the closed set of supported elements.
type elementKind uint8

const (
	kindUnsupported elementKind = iota
	kindSvg
	kindG
	kindRect
	kindCircle
	kindPath
)

func kindOf(name string) elementKind {
	switch name {
	case "svg":
		return kindSvg
	case "g":
		return kindG
	case "rect":
		return kindRect
	case "circle":
		return kindCircle
	case "path":
		return kindPath
	default:
		return kindUnsupported
	}
}

// walker accumulates the primitives during the traversal.
type walker struct {
	primitives []Primitive
}

// concatOps returns a new slice, so that siblings
// never share the backing array of their parent.
func concatOps(parent, local []svgmatrix.Elementary) []svgmatrix.Elementary {
	if len(local) == 0 {
		return parent
	}
	out := make([]svgmatrix.Elementary, 0, len(parent)+len(local))
	out = append(out, parent...)
	return append(out, local...)
}

// walk handles one element, receiving the transform operations and
// the style of its ancestors. Both are values owned by the caller.
func (w *walker) walk(n *node, parentOps []svgmatrix.Elementary, parentStyle StyleState) {
	transform, _ := n.attr("transform")
	ops := concatOps(parentOps, svgmatrix.Parse(transform))
	style := parentStyle.merge(n.attrs)

	switch kindOf(n.name) {
	case kindRect:
		w.primitives = append(w.primitives, Rect{
			X:      n.number("x", 0),
			Y:      n.number("y", 0),
			Width:  n.number("width", 0),
			Height: n.number("height", 0),
			Radius: n.number("rx", 0),
			Paint:  style.resolve(composeOps(ops)),
		})
	case kindCircle:
		w.primitives = append(w.primitives, Circle{
			CX:    n.number("cx", 0),
			CY:    n.number("cy", 0),
			R:     n.number("r", 0),
			Paint: style.resolve(composeOps(ops)),
		})
	case kindPath:
		if d, _ := n.attr("d"); d != "" {
			w.primitives = append(w.primitives, Path{D: d, Paint: style.resolve(composeOps(ops))})
		}
	case kindG:
		for _, child := range n.children {
			w.walk(child, ops, style)
		}
	case kindSvg:
		ops = concatOps(ops, n.viewportOps())
		for _, child := range n.children {
			w.walk(child, ops, style)
		}
	case kindUnsupported:
		Logger().Debug("svgicon: skipping unsupported element", slog.String("element", n.name))
	}
}

// composeOps returns nil when the operations have no effect,
// such as the zero offset of a root svg element.
func composeOps(ops []svgmatrix.Elementary) *svgmatrix.Matrix2D {
	if len(ops) == 0 {
		return nil
	}
	m := svgmatrix.Compose(ops)
	if m.IsIdentity() {
		return nil
	}
	return &m
}

func (n *node) number(name string, def float64) float64 {
	v, _ := n.attr(name)
	return svgmatrix.ParseLength(v, def)
}

type viewBox struct {
	minX, minY, w, h float64
}

func (n *node) viewBox() (viewBox, bool) {
	v, ok := n.attr("viewBox")
	if !ok {
		return viewBox{}, false
	}
	var vb viewBox
	fields := svgmatrix.SplitNumbers(v)
	for i, dst := range [...]*float64{&vb.minX, &vb.minY, &vb.w, &vb.h} {
		if i < len(fields) {
			*dst = fields[i]
		}
	}
	return vb, true
}

// viewportSize returns the width and height of a svg element,
// using the viewBox for the unset (or zero) ones.
func (n *node) viewportSize() (w, h float64) {
	w, h = n.number("width", 0), n.number("height", 0)
	if vb, ok := n.viewBox(); ok {
		if w == 0 {
			w = vb.w
		}
		if h == 0 {
			h = vb.h
		}
	}
	return w, h
}

// viewportOps maps the viewBox of a svg element to its viewport,
// placed at (x, y).
func (n *node) viewportOps() []svgmatrix.Elementary {
	ops := []svgmatrix.Elementary{
		{Kind: svgmatrix.TranslateX, Value: n.number("x", 0)},
		{Kind: svgmatrix.TranslateY, Value: n.number("y", 0)},
	}
	vb, ok := n.viewBox()
	if !ok || vb.w <= 0 || vb.h <= 0 {
		return ops
	}
	w, h := n.viewportSize()
	return append(ops,
		svgmatrix.Elementary{Kind: svgmatrix.ScaleX, Value: w / vb.w},
		svgmatrix.Elementary{Kind: svgmatrix.ScaleY, Value: h / vb.h},
		svgmatrix.Elementary{Kind: svgmatrix.TranslateX, Value: -vb.minX},
		svgmatrix.Elementary{Kind: svgmatrix.TranslateY, Value: -vb.minY},
	)
}
