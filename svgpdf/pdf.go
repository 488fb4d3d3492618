// Implements a PDF backend to render SVG images,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"errors"
	"io"
	"log/slog"

	"github.com/benoitkugler/svgflat/svgdraw"
	"github.com/benoitkugler/svgflat/svgicon"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

var _ svgdraw.Renderer = Renderer{} // assert interface conformance

var errEmptyPage = errors.New("svgpdf: the document has no size and nothing to draw")

type Renderer struct {
	pdf *gofpdf.Fpdf
}

// implements the common path commands,
// shared by the fill and stroke operations
type pather struct {
	pdf *gofpdf.Fpdf
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

// RenderSVGIconToPDF draws the icon on a single page, sized after the root svg
// element, or after the extent of the drawing when the root has no size,
// and saves it in `pdfName`.
func RenderSVGIconToPDF(icon io.Reader, pdfName string) error {
	pdf, err := renderIcon(icon)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(pdfName)
}

// WriteSVGIconToPDF is the same as RenderSVGIconToPDF, but
// writes the PDF file to `out`.
func WriteSVGIconToPDF(icon io.Reader, out io.Writer) error {
	pdf, err := renderIcon(icon)
	if err != nil {
		return err
	}
	return pdf.Output(out)
}

func renderIcon(icon io.Reader) (*gofpdf.Fpdf, error) {
	parsedIcon, err := svgicon.ReadIconStream(icon)
	if err != nil {
		return nil, err
	}
	w, h := parsedIcon.Width, parsedIcon.Height
	if w <= 0 || h <= 0 {
		ext := Extent(parsedIcon.Primitives)
		w, h = fixedToF(ext.Max.X), fixedToF(ext.Max.Y)
		svgicon.Logger().Debug("svgpdf: page sized after the drawing", slog.Float64("width", w), slog.Float64("height", h))
	}
	if w <= 0 || h <= 0 {
		return nil, errEmptyPage
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	svgdraw.Draw(parsedIcon.Primitives, NewRenderer(pdf))
	return pdf, pdf.Error()
}

func fixedToF(a fixed.Int26_6) float64 { return float64(a) / 64 }

func (p pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(svgdraw.FixedToF(a))
}

func (p pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(svgdraw.FixedToF(b))
}

func (p pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := svgdraw.FixedToF(b)
	x, y := svgdraw.FixedToF(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := svgdraw.FixedToF(b)
	cx1, cy1 := svgdraw.FixedToF(c)
	x, y := svgdraw.FixedToF(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

// fill paints the outline built by addOutline,
// with the non-zero winding rule
func (r Renderer) fill(p svgdraw.Paint, addOutline func(pather) error) {
	col, ok := svgdraw.ResolveColor(p)
	if !ok {
		return
	}
	if err := addOutline(pather{pdf: r.pdf}); err != nil {
		svgicon.Logger().Warn("svgpdf: invalid outline", slog.Any("error", err))
		return
	}
	r.pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
	r.pdf.SetAlpha(p.Opacity, "")
	r.pdf.DrawPath("f")
}

// stroke lines the outline built by addOutline; a zero
// width gives the thinnest line the device can render
func (r Renderer) stroke(p svgdraw.Paint, addOutline func(pather) error) {
	col, ok := svgdraw.ResolveColor(p)
	if !ok {
		return
	}
	if err := addOutline(pather{pdf: r.pdf}); err != nil {
		svgicon.Logger().Warn("svgpdf: invalid outline", slog.Any("error", err))
		return
	}
	width := svgdraw.LineWidth(p)
	if width < 0 {
		width = 0
	}
	r.pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
	r.pdf.SetLineWidth(width)
	r.pdf.SetLineCapStyle("butt")
	r.pdf.SetLineJoinStyle("bevel")
	r.pdf.SetAlpha(p.Opacity, "")
	r.pdf.DrawPath("D")
}

func roundRect(x, y, w, h, rad float64, p svgdraw.Paint) func(pather) error {
	return func(pa pather) error {
		svgdraw.AddRoundRect(x, y, w, h, rad, p.Matrix, pa)
		return nil
	}
}

func circle(cx, cy, rad float64, p svgdraw.Paint) func(pather) error {
	return func(pa pather) error {
		svgdraw.AddCircle(cx, cy, rad, p.Matrix, pa)
		return nil
	}
}

func path(d string, p svgdraw.Paint) func(pather) error {
	return func(pa pather) error {
		return svgdraw.AddPath(d, p.Matrix, pa)
	}
}

func (r Renderer) FillRoundRect(x, y, w, h, rad float64, p svgdraw.Paint) {
	if w <= 0 || h <= 0 {
		return
	}
	r.fill(p, roundRect(x, y, w, h, rad, p))
}

func (r Renderer) StrokeRoundRect(x, y, w, h, rad float64, p svgdraw.Paint) {
	if w <= 0 || h <= 0 {
		return
	}
	r.stroke(p, roundRect(x, y, w, h, rad, p))
}

func (r Renderer) FillCircle(cx, cy, rad float64, p svgdraw.Paint) {
	if rad <= 0 {
		return
	}
	r.fill(p, circle(cx, cy, rad, p))
}

func (r Renderer) StrokeCircle(cx, cy, rad float64, p svgdraw.Paint) {
	if rad <= 0 {
		return
	}
	r.stroke(p, circle(cx, cy, rad, p))
}

func (r Renderer) FillPath(d string, p svgdraw.Paint) {
	r.fill(p, path(d, p))
}

func (r Renderer) StrokePath(d string, p svgdraw.Paint) {
	r.stroke(p, path(d, p))
}
