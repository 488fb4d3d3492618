package svgraster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func toPngBytes(m image.Image) ([]byte, error) {
	var b bytes.Buffer
	err := png.Encode(&b, m)
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func saveToPngFile(filePath string, m image.Image) error {
	b, err := toPngBytes(m)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, b, os.ModePerm)
}

func rasterString(t *testing.T, svg string) *image.RGBA {
	t.Helper()
	img, err := RasterSVGIconToImage(strings.NewReader(svg))
	if err != nil {
		t.Fatalf("can't raster image: %s", err)
	}
	return img
}

func isColor(c color.RGBA, r, g, b uint8) bool {
	return c.A == 0xff && c.R == r && c.G == g && c.B == b
}

func TestFilledRect(t *testing.T) {
	img := rasterString(t, `<svg width="20" height="20">
		<rect x="5" y="5" width="10" height="10" fill="red"/>
	</svg>`)
	if c := img.RGBAAt(10, 10); !isColor(c, 0xff, 0, 0) {
		t.Errorf("expected red inside the rect, got %v", c)
	}
	if c := img.RGBAAt(2, 2); c.A != 0 {
		t.Errorf("expected transparent outside the rect, got %v", c)
	}
}

func TestTransformedRect(t *testing.T) {
	img := rasterString(t, `<svg width="40" height="20">
		<g transform="translate(20 0)">
			<rect width="10" height="10" fill="blue"/>
		</g>
	</svg>`)
	if c := img.RGBAAt(25, 5); !isColor(c, 0, 0, 0xff) {
		t.Errorf("expected blue in the translated rect, got %v", c)
	}
	if c := img.RGBAAt(5, 5); c.A != 0 {
		t.Errorf("expected transparent at the untranslated position, got %v", c)
	}
}

func TestViewBoxScaling(t *testing.T) {
	img := rasterString(t, `<svg width="20" height="20" viewBox="0 0 10 10">
		<rect x="5" y="5" width="5" height="5" fill="lime"/>
	</svg>`)
	if c := img.RGBAAt(15, 15); !isColor(c, 0, 0xff, 0) {
		t.Errorf("expected lime in the scaled rect, got %v", c)
	}
	if c := img.RGBAAt(8, 8); c.A != 0 {
		t.Errorf("expected transparent outside the scaled rect, got %v", c)
	}
}

func TestNoFill(t *testing.T) {
	img := rasterString(t, `<svg width="20" height="20">
		<circle cx="10" cy="10" r="8" fill="none" stroke="black" stroke-width="2"/>
	</svg>`)
	if c := img.RGBAAt(10, 10); c.A != 0 {
		t.Errorf("expected an empty circle interior, got %v", c)
	}
	if c := img.RGBAAt(18, 10); c.A == 0 {
		t.Errorf("expected the stroke on the circle outline")
	}
}

func TestOpacity(t *testing.T) {
	img := rasterString(t, `<svg width="10" height="10">
		<rect width="10" height="10" fill="red" opacity="0.5"/>
	</svg>`)
	c := img.RGBAAt(5, 5)
	if c.A < 0x70 || c.A > 0x90 {
		t.Errorf("expected a half transparent pixel, got %v", c)
	}
}

func TestInvalidPaint(t *testing.T) {
	img := rasterString(t, `<svg width="10" height="10">
		<rect width="10" height="10" fill="url(#gradient)"/>
		<path d="M 0 0 Q" fill="red"/>
	</svg>`)
	if c := img.RGBAAt(5, 5); c.A != 0 {
		t.Errorf("expected nothing drawn, got %v", c)
	}
}

func TestNoViewport(t *testing.T) {
	if _, err := RasterSVGIconToImage(strings.NewReader(`<svg><rect width="10" height="10"/></svg>`)); err == nil {
		t.Error("expected an error for a document without size")
	}
	if _, err := RasterSVGIconToImage(strings.NewReader(`<svg>`)); err == nil {
		t.Error("expected an error for a malformed document")
	}
}

func TestShapesIcon(t *testing.T) {
	f, err := os.Open(filepath.Join("..", "svgicon", "testdata", "shapes.svg"))
	if err != nil {
		t.Fatalf("can't open svg source: %s", err)
	}
	defer f.Close()

	img, err := RasterSVGIconToImage(f)
	if err != nil {
		t.Fatalf("can't raster image: %s", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("unexpected image bounds %v", b)
	}

	err = saveToPngFile(filepath.Join(t.TempDir(), "shapes.png"), img)
	if err != nil {
		t.Fatalf("can't save rasterized image: %s", err)
	}
}
