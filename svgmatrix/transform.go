package svgmatrix

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies an elementary affine operation.
type Kind uint8

const (
	TranslateX Kind = iota
	TranslateY
	ScaleX
	ScaleY
	Rotate // radians
	SkewX  // radians
	SkewY  // radians
)

func (k Kind) String() string {
	switch k {
	case TranslateX:
		return "translateX"
	case TranslateY:
		return "translateY"
	case ScaleX:
		return "scaleX"
	case ScaleY:
		return "scaleY"
	case Rotate:
		return "rotate"
	case SkewX:
		return "skewX"
	case SkewY:
		return "skewY"
	default:
		return "<unknown Kind>"
	}
}

// Elementary is one atomic operation, holding one value.
// A slice of Elementary is in application order: the first
// operation is the outermost one.
type Elementary struct {
	Kind  Kind
	Value float64
}

func (e Elementary) String() string {
	return fmt.Sprintf("%s(%g)", e.Kind, e.Value)
}

// Matrix returns the canonical matrix of the operation.
func (e Elementary) Matrix() Matrix2D {
	switch e.Kind {
	case TranslateX:
		return Identity.Translate(e.Value, 0)
	case TranslateY:
		return Identity.Translate(0, e.Value)
	case ScaleX:
		return Identity.Scale(e.Value, 1)
	case ScaleY:
		return Identity.Scale(1, e.Value)
	case Rotate:
		return Identity.Rotate(e.Value)
	case SkewX:
		return Identity.SkewX(e.Value)
	case SkewY:
		return Identity.SkewY(e.Value)
	default:
		return Identity
	}
}

// Compose multiplies the operations from left to right.
// An empty sequence gives Identity.
func Compose(ops []Elementary) Matrix2D {
	m := Identity
	for _, op := range ops {
		m = m.Mult(op.Matrix())
	}
	return m
}

var (
	translateRe = regexp.MustCompile(`translate\(([^)]+)\)`)
	scaleRe     = regexp.MustCompile(`scale\(([^)]+)\)`)
	rotateRe    = regexp.MustCompile(`rotate\(([^)]+)\)`)
	skewXRe     = regexp.MustCompile(`skewX\(([^)]+)\)`)
	skewYRe     = regexp.MustCompile(`skewY\(([^)]+)\)`)
)

// Parse reads a transform attribute into elementary operations.
//
// Only the first occurrence of each of translate, scale, rotate, skewX
// and skewY is used, and the operations are always emitted in that
// order, whatever their position in the text.
// Unreadable arguments are taken as 0.
func Parse(v string) []Elementary {
	if v == "" {
		return nil
	}
	var ops []Elementary

	if args, ok := functionArgs(translateRe, v); ok {
		tx, ty := argAt(args, 0, 0), argAt(args, 1, 0)
		ops = append(ops, Elementary{TranslateX, tx}, Elementary{TranslateY, ty})
	}

	if args, ok := functionArgs(scaleRe, v); ok {
		sx := argAt(args, 0, 0)
		sy := argAt(args, 1, sx) // uniform by default
		ops = append(ops, Elementary{ScaleX, sx}, Elementary{ScaleY, sy})
	}

	if args, ok := functionArgs(rotateRe, v); ok {
		angle := argAt(args, 0, 0)
		cx, cy := argAt(args, 1, 0), argAt(args, 2, 0)
		ops = append(ops,
			Elementary{TranslateX, cx},
			Elementary{TranslateY, cy},
			Elementary{Rotate, angle * math.Pi / 180},
			Elementary{TranslateX, -cx},
			Elementary{TranslateY, -cy},
		)
	}

	if args, ok := functionArgs(skewXRe, v); ok {
		ops = append(ops, Elementary{SkewX, argAt(args, 0, 0) * math.Pi / 180})
	}

	if args, ok := functionArgs(skewYRe, v); ok {
		ops = append(ops, Elementary{SkewY, argAt(args, 0, 0) * math.Pi / 180})
	}

	return ops
}

// functionArgs returns the argument tokens of the first match of re.
func functionArgs(re *regexp.Regexp, v string) ([]string, bool) {
	m := re.FindStringSubmatch(v)
	if m == nil {
		return nil, false
	}
	return splitOnCommaOrSpace(m[1]), true
}

// argAt parses the i-th token, returning def when it is missing.
// A present but unreadable token gives 0.
func argAt(args []string, i int, def float64) float64 {
	if i >= len(args) {
		return def
	}
	return ParseLength(args[i], 0)
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
}

// SplitNumbers splits a list such as a viewBox on commas and whitespace,
// and parses every item with ParseLength.
func SplitNumbers(s string) []float64 {
	fields := splitOnCommaOrSpace(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		out[i] = ParseLength(f, 0)
	}
	return out
}

// ParseLength reads a numeric attribute, tolerating units
// and garbage: every character other than a digit, '.' or '-'
// is dropped, then the longest numeric prefix is parsed.
// It returns def when nothing numeric is left.
func ParseLength(v string, def float64) float64 {
	if v == "" {
		return def
	}
	cleaned := strings.Map(func(r rune) rune {
		if ('0' <= r && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, v)
	prefix := numericPrefix(cleaned)
	if prefix == "" {
		return def
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(f) {
		return def
	}
	return f
}

// numericPrefix returns the longest prefix of s of the form
// -?digits[.digits], with at least one digit, or "".
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	digits := 0
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && '0' <= s[j] && s[j] <= '9' {
			j++
			frac++
		}
		if frac > 0 || digits > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	return strings.TrimSuffix(s[:i], ".")
}
