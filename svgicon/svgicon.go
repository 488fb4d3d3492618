// Provides parsing of SVG documents into a flat list of
// drawing primitives (rectangles, circles and paths), with
// resolved paint and one transform matrix each.
// The primitives can then be consumed by painting drivers,
// see for example svgflat/svgraster or svgflat/svgpdf.
//
// Only a sub-set of SVG is supported: the svg, g, rect, circle
// and path elements, the transform and style attributes, and the
// fill, stroke, stroke-width and opacity presentation attributes.
package svgicon

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

var (
	errNoRoot    = errors.New("no root element")
	errManyRoots = errors.New("more than one root element")
	errOutside   = errors.New("text outside of the root element")
	errDupAttr   = errors.New("duplicate attribute")
)

// MalformedDocumentError is returned when the input
// is not a well-formed XML tree.
type MalformedDocumentError struct {
	Err error
}

func (e *MalformedDocumentError) Error() string {
	return "invalid svg document: " + e.Err.Error()
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// Icon holds data from a parsed SVG document.
type Icon struct {
	// Primitives are sorted in document order, which is
	// also the painting order.
	Primitives []Primitive

	// Width and Height are the viewport size of the root svg
	// element, defaulting to the viewBox size; 0 if unknown.
	Width, Height float64
}

// ReadIconStream reads the Icon from the given io.Reader.
// Unsupported elements are skipped; only a structurally
// broken document is an error, of type *MalformedDocumentError.
func ReadIconStream(stream io.Reader) (*Icon, error) {
	root, err := readTree(stream)
	if err != nil {
		return nil, err
	}
	w := walker{}
	w.walk(root, nil, StyleState{})

	icon := &Icon{Primitives: w.primitives}
	if kindOf(root.name) == kindSvg {
		icon.Width, icon.Height = root.viewportSize()
	}
	return icon, nil
}

// ReadIcon reads the Icon from the named file.
func ReadIcon(iconFile string) (*Icon, error) {
	fin, errf := os.Open(iconFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadIconStream(fin)
}

// ParseIcon parses the given document text.
func ParseIcon(text string) (*Icon, error) {
	return ReadIconStream(strings.NewReader(text))
}

// ParseDocument parses the given document text and returns
// its primitives, in painting order.
func ParseDocument(text string) ([]Primitive, error) {
	icon, err := ParseIcon(text)
	if err != nil {
		return nil, err
	}
	return icon.Primitives, nil
}

// node is an element of the parsed tree
type node struct {
	name     string
	attrs    []xml.Attr
	children []*node
}

func (n *node) attr(name string) (string, bool) { return attrValue(n.attrs, name) }

// readTree builds the element tree, ignoring text, comments
// and processing instructions.
func readTree(stream io.Reader) (*node, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		root  *node
		stack []*node
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, &MalformedDocumentError{Err: err}
		}
		switch se := t.(type) {
		case xml.StartElement:
			if hasDuplicateAttr(se.Attr) {
				return nil, &MalformedDocumentError{Err: errDupAttr}
			}
			n := &node{name: se.Name.Local, attrs: se.Copy().Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, &MalformedDocumentError{Err: errManyRoots}
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 && len(bytes.TrimSpace(se)) > 0 {
				return nil, &MalformedDocumentError{Err: errOutside}
			}
		}
	}
	if root == nil {
		return nil, &MalformedDocumentError{Err: errNoRoot}
	}
	return root, nil
}

// hasDuplicateAttr reports whether an attribute name
// (with its namespace) is repeated.
func hasDuplicateAttr(attrs []xml.Attr) bool {
	for i := range attrs {
		for j := i + 1; j < len(attrs); j++ {
			if attrs[i].Name == attrs[j].Name {
				return true
			}
		}
	}
	return false
}
