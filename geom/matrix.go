package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// Matrix is a 2D affine transformation in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// mapping
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate returns a translation.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale returns a scaling.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotate returns a rotation by angle radians. With y pointing down the
// rotation is clockwise on screen.
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// Multiply returns m * other, which applies other first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Apply transforms a point.
func (m Matrix) Apply(p orb.Point) orb.Point {
	return orb.Point{
		m.A*p[0] + m.B*p[1] + m.C,
		m.D*p[0] + m.E*p[1] + m.F,
	}
}

// ApplyVector transforms a vector, ignoring translation.
func (m Matrix) ApplyVector(p orb.Point) orb.Point {
	return orb.Point{
		m.A*p[0] + m.B*p[1],
		m.D*p[0] + m.E*p[1],
	}
}

// ApplyBound returns the axis-aligned bounds of b after transformation.
func (m Matrix) ApplyBound(b orb.Bound) orb.Bound {
	out := orb.Bound{Min: m.Apply(b.Min), Max: m.Apply(b.Min)}
	out = out.Extend(m.Apply(orb.Point{b.Max[0], b.Min[1]}))
	out = out.Extend(m.Apply(orb.Point{b.Min[0], b.Max[1]}))
	return out.Extend(m.Apply(b.Max))
}

// Projection returns m as an orb projection, for use with orb/project.
func (m Matrix) Projection() orb.Projection {
	return m.Apply
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse matrix, or false when m is singular.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Determinant()
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}
	inv := 1 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}, true
}

// IsIdentity reports whether m is the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslation reports whether m only translates.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// IsScaleOnly reports whether m has no rotation or shear.
func (m Matrix) IsScaleOnly() bool {
	return m.B == 0 && m.D == 0
}

// ScaleFactor returns the geometric mean of the axis scales.
func (m Matrix) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}

// Translation returns the translation component.
func (m Matrix) Translation() orb.Point {
	return orb.Point{m.C, m.F}
}
