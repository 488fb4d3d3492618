package svgdraw

import (
	"errors"
	"image/color"
	"log/slog"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgflat/svgicon"
	"golang.org/x/image/colornames"
)

var errColorFormat = errors.New("unsupported color format")

// ParseColor parses an SVG color string: one of the
// SVG 1.1 names, #rgb, #rrggbb, or rgb(r, g, b) with
// integer or percent components.
func ParseColor(colorStr string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	if cn, ok := colornames.Map[v]; ok {
		return color.NRGBA{cn.R, cn.G, cn.B, cn.A}, nil
	}
	if strings.HasPrefix(v, "#") {
		r, g, b, err := parseColorNum(v[1:])
		if err != nil {
			return color.NRGBA{}, err
		}
		return color.NRGBA{r, g, b, 0xff}, nil
	}
	if cStr := strings.TrimPrefix(v, "rgb("); cStr != v {
		cStr = strings.TrimSuffix(cStr, ")")
		vals := strings.Split(cStr, ",")
		if len(vals) != 3 {
			return color.NRGBA{}, errColorFormat
		}
		var cvals [3]uint8
		for i := range cvals {
			var err error
			cvals[i], err = parseColorValue(strings.TrimSpace(vals[i]))
			if err != nil {
				return color.NRGBA{}, err
			}
		}
		return color.NRGBA{cvals[0], cvals[1], cvals[2], 0xff}, nil
	}
	return color.NRGBA{}, errColorFormat
}

// parseColorNum reads the hex digits of a color, e.g. FBD9BD
func parseColorNum(colorStr string) (r, g, b uint8, err error) {
	switch len(colorStr) {
	case 6:
	case 3:
		// #rgb is read as #rrggbb
		colorStr = string([]byte{colorStr[0], colorStr[0],
			colorStr[1], colorStr[1], colorStr[2], colorStr[2]})
	default:
		return 0, 0, 0, errColorFormat
	}
	for _, v := range []struct {
		c *uint8
		s string
	}{
		{&r, colorStr[0:2]},
		{&g, colorStr[2:4]},
		{&b, colorStr[4:6]},
	} {
		t, err := strconv.ParseUint(v.s, 16, 8)
		if err != nil {
			return 0, 0, 0, err
		}
		*v.c = uint8(t)
	}
	return
}

func parseColorValue(v string) (uint8, error) {
	if strings.HasSuffix(v, "%") {
		n, err := strconv.ParseFloat(strings.TrimSpace(v[:len(v)-1]), 64)
		if err != nil {
			return 0, err
		}
		return clampUint8(n * 0xff / 100), nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return clampUint8(n), nil
}

func clampUint8(f float64) uint8 {
	if f < 0 {
		return 0
	}
	if f > 0xff {
		return 0xff
	}
	return uint8(f + 0.5)
}

// ResolveColor parses the color of p, logging and
// returning false when it can't be used.
func ResolveColor(p Paint) (color.NRGBA, bool) {
	c, err := ParseColor(p.Color)
	if err != nil {
		svgicon.Logger().Warn("svgdraw: skipping paint", slog.String("color", p.Color), slog.Any("error", err))
		return color.NRGBA{}, false
	}
	return c, true
}
