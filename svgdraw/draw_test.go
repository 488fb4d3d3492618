package svgdraw

import (
	"fmt"
	"image/color"
	"reflect"
	"testing"

	"github.com/benoitkugler/svgflat/svgicon"
	"github.com/benoitkugler/svgflat/svgmatrix"
	"golang.org/x/image/math/fixed"
)

// recorder logs every call it receives
type recorder struct {
	calls []string
}

func (r *recorder) FillRoundRect(x, y, w, h, rad float64, p Paint) {
	r.calls = append(r.calls, fmt.Sprintf("fillRect %g %g %g %g %g %s %g", x, y, w, h, rad, p.Color, p.Opacity))
}

func (r *recorder) StrokeRoundRect(x, y, w, h, rad float64, p Paint) {
	r.calls = append(r.calls, fmt.Sprintf("strokeRect %g %g %g %g %g %s %g", x, y, w, h, rad, p.Color, p.StrokeWidth))
}

func (r *recorder) FillCircle(cx, cy, rad float64, p Paint) {
	r.calls = append(r.calls, fmt.Sprintf("fillCircle %g %g %g %s", cx, cy, rad, p.Color))
}

func (r *recorder) StrokeCircle(cx, cy, rad float64, p Paint) {
	r.calls = append(r.calls, fmt.Sprintf("strokeCircle %g %g %g %s", cx, cy, rad, p.Color))
}

func (r *recorder) FillPath(d string, p Paint) {
	r.calls = append(r.calls, fmt.Sprintf("fillPath %s %s", d, p.Color))
}

func (r *recorder) StrokePath(d string, p Paint) {
	r.calls = append(r.calls, fmt.Sprintf("strokePath %s %s", d, p.Color))
}

var _ Renderer = (*recorder)(nil)

func TestDrawDispatch(t *testing.T) {
	prims, err := svgicon.ParseDocument(`<svg>
		<rect width="10" height="5" fill="none" stroke="blue" stroke-width="2"/>
		<circle cx="1" cy="2" r="3" fill="red" opacity="0.5"/>
		<path d="M0 0h4" fill="green" stroke="black"/>
		<rect width="1" height="1" fill="none"/>
	</svg>`)
	if err != nil {
		t.Fatal(err)
	}
	var rec recorder
	Draw(prims, &rec)
	expected := []string{
		"strokeRect 0 0 10 5 0 blue 2",
		"fillCircle 1 2 3 red",
		"fillPath M0 0h4 green",
		"strokePath M0 0h4 black",
	}
	if !reflect.DeepEqual(rec.calls, expected) {
		t.Errorf("expected %v, got %v", expected, rec.calls)
	}
}

func TestDrawPaintMatrix(t *testing.T) {
	m := svgmatrix.Identity.Translate(1, 2)
	prim := svgicon.Rect{Width: 1, Height: 1, Paint: svgicon.Paint{FillColor: "red", Opacity: 0.3, Matrix: &m}}

	var got Paint
	DrawPrimitive(prim, paintCatcher{&got})
	if got.Matrix != &m || got.Opacity != 0.3 || got.Color != "red" {
		t.Errorf("unexpected paint %+v", got)
	}
}

type paintCatcher struct{ p *Paint }

func (c paintCatcher) FillRoundRect(_, _, _, _, _ float64, p Paint)   { *c.p = p }
func (c paintCatcher) StrokeRoundRect(_, _, _, _, _ float64, p Paint) { *c.p = p }
func (c paintCatcher) FillCircle(_, _, _ float64, p Paint)            { *c.p = p }
func (c paintCatcher) StrokeCircle(_, _, _ float64, p Paint)          { *c.p = p }
func (c paintCatcher) FillPath(_ string, p Paint)                     { *c.p = p }
func (c paintCatcher) StrokePath(_ string, p Paint)                   { *c.p = p }

func TestDrawClampsOpacity(t *testing.T) {
	for _, test := range []struct {
		opacity, expected float64
	}{
		{-1, 0},
		{0.25, 0.25},
		{3, 1},
	} {
		var got Paint
		DrawPrimitive(svgicon.Circle{R: 1, Paint: svgicon.Paint{StrokeColor: "red", Opacity: test.opacity}}, paintCatcher{&got})
		if got.Opacity != test.expected {
			t.Errorf("opacity %g: expected %g, got %g", test.opacity, test.expected, got.Opacity)
		}
	}
}

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		in       string
		expected color.NRGBA
	}{
		{"red", color.NRGBA{0xff, 0, 0, 0xff}},
		{"Navy", color.NRGBA{0, 0, 0x80, 0xff}},
		{"#fff", color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{"#12aB34", color.NRGBA{0x12, 0xab, 0x34, 0xff}},
		{"rgb(10, 20, 30)", color.NRGBA{10, 20, 30, 0xff}},
		{"rgb(100%,0%,50%)", color.NRGBA{0xff, 0, 0x80, 0xff}},
		{" blue ", color.NRGBA{0, 0, 0xff, 0xff}},
	} {
		got, err := ParseColor(test.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %s", test.in, err)
			continue
		}
		if got != test.expected {
			t.Errorf("ParseColor(%q): expected %v, got %v", test.in, test.expected, got)
		}
	}

	for _, bad := range []string{"", "#1", "#12", "#gggggg", "rgb(1,2)", "url(#grad)", "notacolor"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q): expected error", bad)
		}
	}
}

// pointAdder stores the points it receives
type pointAdder struct {
	starts, points []fixed.Point26_6
	closed         int
}

func (p *pointAdder) Start(a fixed.Point26_6) {
	p.starts = append(p.starts, a)
	p.points = append(p.points, a)
}
func (p *pointAdder) Line(b fixed.Point26_6)             { p.points = append(p.points, b) }
func (p *pointAdder) QuadBezier(b, c fixed.Point26_6)    { p.points = append(p.points, b, c) }
func (p *pointAdder) CubeBezier(b, c, d fixed.Point26_6) { p.points = append(p.points, b, c, d) }
func (p *pointAdder) Stop(closeLoop bool) {
	if closeLoop {
		p.closed++
	}
}

func TestAddRoundRect(t *testing.T) {
	var p pointAdder
	AddRoundRect(1, 2, 10, 20, 0, nil, &p)
	if len(p.starts) != 1 || p.starts[0] != ToFixedP(1, 2) {
		t.Errorf("unexpected start %v", p.starts)
	}
	if p.closed != 1 {
		t.Errorf("expected a closed outline")
	}

	m := svgmatrix.Identity.Translate(100, 0)
	var q pointAdder
	AddRoundRect(1, 2, 10, 20, 0, &m, &q)
	if len(q.starts) != 1 || q.starts[0] != ToFixedP(101, 2) {
		t.Errorf("unexpected transformed start %v", q.starts)
	}
}

func TestAddPath(t *testing.T) {
	m := svgmatrix.Identity.Scale(2, 2)
	var p pointAdder
	if err := AddPath("M1 1 L5 1 L5 5 Z", &m, &p); err != nil {
		t.Fatal(err)
	}
	if len(p.starts) == 0 || p.starts[0] != ToFixedP(2, 2) {
		t.Errorf("unexpected starts %v", p.starts)
	}
	if !containsPoint(p.points, ToFixedP(10, 10)) {
		t.Errorf("expected (10, 10) in %v", p.points)
	}
}

func TestAddCircle(t *testing.T) {
	var p pointAdder
	AddCircle(10, 10, 5, nil, &p)
	for _, pt := range p.points {
		x, y := FixedToF(pt)
		if x < 4 || x > 16 || y < 4 || y > 16 {
			t.Errorf("point (%g, %g) outside of the circle box", x, y)
		}
	}
	if len(p.points) == 0 {
		t.Error("no outline")
	}
}

func containsPoint(points []fixed.Point26_6, a fixed.Point26_6) bool {
	for _, p := range points {
		if p == a {
			return true
		}
	}
	return false
}

func TestLineWidth(t *testing.T) {
	m := svgmatrix.Identity.Scale(2, 8)
	if w := LineWidth(Paint{StrokeWidth: 3, Matrix: &m}); w != 12 {
		t.Errorf("expected 12, got %g", w)
	}
	if w := LineWidth(Paint{StrokeWidth: 3}); w != 3 {
		t.Errorf("expected 3, got %g", w)
	}
}
