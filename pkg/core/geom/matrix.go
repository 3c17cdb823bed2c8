// Package geom provides the 2D affine transforms used to place symbols.
//
// [Matrix] wraps [f64.Aff3], the row-major affine type from golang.org/x/image,
// so values interoperate with the x/image drawing packages. Transforms compose
// left to right in the same order as an SVG transform list:
//
//	m := geom.Compose(geom.Translate(72, 72), geom.Scale(0.875, 0.875), geom.RotateDeg(90, 64, 64))
//	fmt.Println(m.SVG()) // matrix(0, 0.875, -0.875, 0, 184, 72)
package geom

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/image/math/f64"
)

// Matrix is a 2D affine transform. Element order follows [f64.Aff3]:
//
//	| m[0] m[1] m[2] |
//	| m[3] m[4] m[5] |
//	|  0    0    1   |
type Matrix f64.Aff3

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{1, 0, 0, 0, 1, 0}
}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, tx, 0, 1, ty}
}

// Scale returns a scale by (sx, sy) about the origin.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, 0, sy, 0}
}

// Rotate returns a rotation by rad radians about the origin.
func Rotate(rad float64) Matrix {
	sin, cos := math.Sincos(rad)
	return Matrix{cos, -sin, 0, sin, cos, 0}
}

// RotateDeg returns a rotation by deg degrees about (cx, cy).
// Quarter turns are exact.
func RotateDeg(deg, cx, cy float64) Matrix {
	sin, cos := sincosDeg(deg)
	r := Matrix{cos, -sin, 0, sin, cos, 0}
	return Compose(Translate(cx, cy), r, Translate(-cx, -cy))
}

func sincosDeg(deg float64) (sin, cos float64) {
	switch math.Mod(math.Mod(deg, 360)+360, 360) {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(deg * math.Pi / 180)
}

// Mul returns m × n: n is applied first, then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		m[0]*n[0] + m[1]*n[3],
		m[0]*n[1] + m[1]*n[4],
		m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3],
		m[3]*n[1] + m[4]*n[4],
		m[3]*n[2] + m[4]*n[5] + m[5],
	}
}

// Compose multiplies ms left to right. The rightmost transform is applied to
// points first, matching SVG's "translate(...) scale(...) rotate(...)" order.
func Compose(ms ...Matrix) Matrix {
	out := Identity()
	for _, m := range ms {
		out = out.Mul(m)
	}
	return out
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Aff3 returns m as an [f64.Aff3].
func (m Matrix) Aff3() f64.Aff3 { return f64.Aff3(m) }

// SVG serializes m as an SVG transform: "matrix(a, b, c, d, e, f)".
// Values are rounded to six decimals so output is stable across platforms.
func (m Matrix) SVG() string {
	return fmt.Sprintf("matrix(%s, %s, %s, %s, %s, %s)",
		FormatFloat(m[0]), FormatFloat(m[3]),
		FormatFloat(m[1]), FormatFloat(m[4]),
		FormatFloat(m[2]), FormatFloat(m[5]))
}

// String implements fmt.Stringer.
func (m Matrix) String() string { return m.SVG() }

// FormatFloat renders v with at most six decimals and no trailing zeros.
func FormatFloat(v float64) string {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		r = 0 // normalize -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
