// Implements the 2D affine algebra used to place
// SVG elements: parsing of the transform attribute
// into elementary operations, and their composition
// into one matrix.
package svgmatrix

import (
	"fmt"
	"math"
)

// Matrix2D represents an SVG style matrix.
// A point (x, y) is mapped to
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
//
// which is the layout used by rasterx, so a Matrix2D
// may be converted to a rasterx.Matrix2D directly.
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the matrix leaving every point unchanged.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a*b: the transform b is applied first.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate appends a translation by (x, y).
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale appends an anisotropic scaling.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate appends a rotation of theta radians about the origin.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sincos(theta)
	return a.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// SkewX appends a shear along the x axis, theta in radians.
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY appends a shear along the y axis, theta in radians.
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, math.Tan(theta), 0, 1, 0, 0})
}

// Transform applies the matrix to the point (x, y).
func (a Matrix2D) Transform(x, y float64) (float64, float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

// TransformVector applies the linear part of the matrix,
// ignoring the translation.
func (a Matrix2D) TransformVector(x, y float64) (float64, float64) {
	return a.A*x + a.C*y, a.B*x + a.D*y
}

// Det returns the determinant of the linear part.
func (a Matrix2D) Det() float64 {
	return a.A*a.D - a.B*a.C
}

// IsIdentity returns true if every coefficient matches
// the identity matrix.
func (a Matrix2D) IsIdentity() bool {
	return a == Identity
}

func (a Matrix2D) String() string {
	return fmt.Sprintf("matrix(%g %g %g %g %g %g)", a.A, a.B, a.C, a.D, a.E, a.F)
}
