package projective

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Matrix is a 3x3 real matrix acting on homogeneous coordinates, indexed
// [row][column].
type Matrix [3][3]float64

// Identity is the identity transform.
var Identity = Matrix{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

// FromColumns builds the matrix whose columns are a, b and c.
func FromColumns(a, b, c Point) Matrix {
	return Matrix{
		{a.X, b.X, c.X},
		{a.Y, b.Y, c.Y},
		{a.Z, b.Z, c.Z},
	}
}

// Column returns the j-th column as a point.
func (m Matrix) Column(j int) Point {
	return Pt(m[0][j], m[1][j], m[2][j])
}

// Mul computes m*o, so that m.Mul(o).Apply(p) == m.Apply(o.Apply(p)).
func (m Matrix) Mul(o Matrix) Matrix {
	var r Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return r
}

// MatrixMult is the plain matrix product a*b.
func MatrixMult(a, b Matrix) Matrix {
	return a.Mul(b)
}

// Apply maps p through m.
func (m Matrix) Apply(p Point) Point {
	return Pt(
		m[0][0]*p.X+m[0][1]*p.Y+m[0][2]*p.Z,
		m[1][0]*p.X+m[1][1]*p.Y+m[1][2]*p.Z,
		m[2][0]*p.X+m[2][1]*p.Y+m[2][2]*p.Z,
	)
}

func (m Matrix) Scale(s float64) Matrix {
	var r Matrix
	for i := range m {
		for j := range m[i] {
			r[i][j] = m[i][j] * s
		}
	}
	return r
}

func (m Matrix) Transpose() Matrix {
	var r Matrix
	for i := range m {
		for j := range m[i] {
			r[j][i] = m[i][j]
		}
	}
	return r
}

func (m Matrix) Trace() float64 {
	return m[0][0] + m[1][1] + m[2][2]
}

func (m Matrix) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Dual returns a lift of the dual transformation: the matrix whose columns are
// the cross products c1×c2, c2×c0 and c0×c1 of the columns of m. It equals
// det(m)·m^-T, but stays defined when m is singular.
func (m Matrix) Dual() Matrix {
	c0, c1, c2 := m.Column(0), m.Column(1), m.Column(2)
	return FromColumns(
		Point{c1.Cross(c2.Vector)},
		Point{c2.Cross(c0.Vector)},
		Point{c0.Cross(c1.Vector)},
	)
}

func (m Matrix) IsFinite() bool {
	for i := range m {
		for j := range m[i] {
			if !IsFinite(m[i][j]) {
				return false
			}
		}
	}
	return true
}

// NormalizedDet is det(m) divided by the product of the column norms. By
// Hadamard's inequality the result lies in [-1, 1], which makes it comparable
// against a fixed threshold whatever the scale of m. A matrix with a zero
// column reports 0.
func (m Matrix) NormalizedDet() float64 {
	scale := m.Column(0).Norm() * m.Column(1).Norm() * m.Column(2).Norm()
	if scale == 0 {
		return 0
	}
	return m.Det() / scale
}

// Invert returns the inverse of m, or ErrSingularMatrix when the normalized
// determinant is within t.Singular of zero (or not finite).
func (t Tolerances) Invert(m Matrix) (Matrix, error) {
	det := m.Det()
	nd := m.NormalizedDet()
	if !IsFinite(det) || !IsFinite(nd) || math.Abs(nd) <= t.Singular {
		return Matrix{}, errors.Wrapf(ErrSingularMatrix, "det=%g", det)
	}
	// Adjugate over determinant
	var r Matrix
	r[0][0] = m[1][1]*m[2][2] - m[1][2]*m[2][1]
	r[0][1] = m[0][2]*m[2][1] - m[0][1]*m[2][2]
	r[0][2] = m[0][1]*m[1][2] - m[0][2]*m[1][1]
	r[1][0] = m[1][2]*m[2][0] - m[1][0]*m[2][2]
	r[1][1] = m[0][0]*m[2][2] - m[0][2]*m[2][0]
	r[1][2] = m[0][2]*m[1][0] - m[0][0]*m[1][2]
	r[2][0] = m[1][0]*m[2][1] - m[1][1]*m[2][0]
	r[2][1] = m[0][1]*m[2][0] - m[0][0]*m[2][1]
	r[2][2] = m[0][0]*m[1][1] - m[0][1]*m[1][0]
	return r.Scale(1 / det), nil
}

// Invert3 inverts m with the default tolerances.
func Invert3(m Matrix) (Matrix, error) {
	return DefaultTolerances.Invert(m)
}

func (m Matrix) String() string {
	rows := make([]string, 3)
	for i, row := range m {
		rows[i] = fmt.Sprintf("[%g %g %g]", row[0], row[1], row[2])
	}
	return strings.Join(rows, " ")
}
