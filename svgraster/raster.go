// Implements a raster backend to render SVG images,
// by wrapping rasterx.
package svgraster

import (
	"errors"
	"image"
	"io"
	"log/slog"
	"math"

	"github.com/benoitkugler/svgflat/svgdraw"
	"github.com/benoitkugler/svgflat/svgicon"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ svgdraw.Renderer = (*Renderer)(nil) // assert interface conformance

var errNoViewport = errors.New("svgraster: the document has no width nor height")

// miter cutoff used for every stroke
const miterLimit = 4

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{dasher: rasterx.NewDasher(width, height, scanner), filler: rasterx.NewFiller(width, height, scanner)}
}

// RasterSVGIconToImage uses a ScannerGV instance to render the
// icon into an image, sized after the root svg element, and returns it.
func RasterSVGIconToImage(icon io.Reader) (*image.RGBA, error) {
	parsedIcon, err := svgicon.ReadIconStream(icon)
	if err != nil {
		return nil, err
	}
	w, h := int(math.Ceil(parsedIcon.Width)), int(math.Ceil(parsedIcon.Height))
	if w <= 0 || h <= 0 {
		return nil, errNoViewport
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	renderer := NewRenderer(w, h, scanner)
	svgdraw.Draw(parsedIcon.Primitives, renderer)
	return img, nil
}

// fill paints the outline built by addOutline
func (rd *Renderer) fill(p svgdraw.Paint, addOutline func(rasterx.Adder) error) {
	col, ok := svgdraw.ResolveColor(p)
	if !ok {
		return
	}
	rd.filler.Clear()
	rd.filler.SetWinding(true)
	if err := addOutline(rd.filler); err != nil {
		svgicon.Logger().Warn("svgraster: invalid outline", slog.Any("error", err))
		return
	}
	rd.filler.Stop(false)
	rd.filler.SetColor(rasterx.ApplyOpacity(col, p.Opacity))
	rd.filler.Draw()
}

// stroke lines the outline built by addOutline
func (rd *Renderer) stroke(p svgdraw.Paint, addOutline func(rasterx.Adder) error) {
	col, ok := svgdraw.ResolveColor(p)
	if !ok {
		return
	}
	width := svgdraw.LineWidth(p)
	if width <= 0 { // hairline
		width = 1
	}
	rd.dasher.Clear()
	rd.dasher.SetStroke(fixed.Int26_6(width*64), fixed.Int26_6(miterLimit*64),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.RoundGap, rasterx.Bevel, nil, 0)
	if err := addOutline(rd.dasher); err != nil {
		svgicon.Logger().Warn("svgraster: invalid outline", slog.Any("error", err))
		return
	}
	rd.dasher.Stop(false)
	rd.dasher.SetColor(rasterx.ApplyOpacity(col, p.Opacity))
	rd.dasher.Draw()
}

func roundRect(x, y, w, h, r float64, p svgdraw.Paint) func(rasterx.Adder) error {
	return func(a rasterx.Adder) error {
		svgdraw.AddRoundRect(x, y, w, h, r, p.Matrix, a)
		return nil
	}
}

func circle(cx, cy, r float64, p svgdraw.Paint) func(rasterx.Adder) error {
	return func(a rasterx.Adder) error {
		svgdraw.AddCircle(cx, cy, r, p.Matrix, a)
		return nil
	}
}

func path(d string, p svgdraw.Paint) func(rasterx.Adder) error {
	return func(a rasterx.Adder) error {
		return svgdraw.AddPath(d, p.Matrix, a)
	}
}

func (rd *Renderer) FillRoundRect(x, y, w, h, r float64, p svgdraw.Paint) {
	if w <= 0 || h <= 0 { // not drawn, but not an error
		return
	}
	rd.fill(p, roundRect(x, y, w, h, r, p))
}

func (rd *Renderer) StrokeRoundRect(x, y, w, h, r float64, p svgdraw.Paint) {
	if w <= 0 || h <= 0 {
		return
	}
	rd.stroke(p, roundRect(x, y, w, h, r, p))
}

func (rd *Renderer) FillCircle(cx, cy, r float64, p svgdraw.Paint) {
	if r <= 0 {
		return
	}
	rd.fill(p, circle(cx, cy, r, p))
}

func (rd *Renderer) StrokeCircle(cx, cy, r float64, p svgdraw.Paint) {
	if r <= 0 {
		return
	}
	rd.stroke(p, circle(cx, cy, r, p))
}

func (rd *Renderer) FillPath(d string, p svgdraw.Paint) {
	rd.fill(p, path(d, p))
}

func (rd *Renderer) StrokePath(d string, p svgdraw.Paint) {
	rd.stroke(p, path(d, p))
}
