package svgicon

import (
	"encoding/xml"
	"strings"

	"github.com/benoitkugler/svgflat/svgmatrix"
)

// StyleState holds the paint properties in effect at a point
// of the tree, as raw attribute values. An empty field is unset.
type StyleState struct {
	Fill, Stroke, StrokeWidth, Opacity string
}

// presentationAttrs are read after the style attribute,
// so that they take precedence.
var presentationAttrs = [...]string{"fill", "stroke", "stroke-width", "opacity"}

func (s *StyleState) set(k, v string) {
	switch k {
	case "fill":
		s.Fill = v
	case "stroke":
		s.Stroke = v
	case "stroke-width":
		s.StrokeWidth = v
	case "opacity":
		s.Opacity = v
	}
}

// merge returns a copy of s updated with the style
// and presentation attributes of an element.
func (s StyleState) merge(attrs []xml.Attr) StyleState {
	if style, ok := attrValue(attrs, "style"); ok {
		for _, pair := range strings.Split(style, ";") {
			kv := strings.SplitN(pair, ":", 2)
			if len(kv) != 2 {
				continue
			}
			k := strings.ToLower(strings.TrimSpace(kv[0]))
			v := strings.TrimSpace(kv[1])
			if k == "" || v == "" {
				continue
			}
			s.set(k, v)
		}
	}
	for _, name := range presentationAttrs {
		if v, ok := attrValue(attrs, name); ok {
			s.set(name, strings.TrimSpace(v))
		}
	}
	return s
}

// resolve computes the final paint values.
func (s StyleState) resolve(matrix *svgmatrix.Matrix2D) Paint {
	return Paint{
		FillColor:   paintColor(s.Fill),
		StrokeColor: paintColor(s.Stroke),
		StrokeWidth: svgmatrix.ParseLength(s.StrokeWidth, 0),
		Opacity:     svgmatrix.ParseLength(s.Opacity, 1),
		Matrix:      matrix,
	}
}

// paintColor disables the paint for "none"
func paintColor(v string) string {
	if v == "none" {
		return ""
	}
	return v
}

// attrValue returns the value of the unqualified attribute name.
func attrValue(attrs []xml.Attr, name string) (string, bool) {
	for _, attr := range attrs {
		if attr.Name.Space == "" && attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}
