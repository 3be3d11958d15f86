package projective

import (
	"math"

	"github.com/pkg/errors"
)

// Lift returns the projective transformation M sending a, b, c, d to the
// standard frame:
//
//	M a ~ [1 : 0 : 0]
//	M b ~ [0 : 1 : 0]
//	M c ~ [0 : 0 : 1]
//	M d ~ [1 : 1 : 1]
//
// Given two windows of four points, Lift(w2)^-1 · Lift(w1) is then the unique
// projective map carrying the first window onto the second. The points must be
// in general position (no three collinear), otherwise ErrSingularMatrix is
// returned.
func (t Tolerances) Lift(a, b, c, d Point) (Matrix, error) {
	inv, err := t.Invert(FromColumns(a, b, c))
	if err != nil {
		return Matrix{}, errors.Wrap(err, "lift: first three points are collinear")
	}

	// d = l0 a + l1 b + l2 c; a vanishing coefficient means d lies on a line
	// through two of the others.
	l := inv.Apply(d)
	scale := math.Abs(l.X) + math.Abs(l.Y) + math.Abs(l.Z)
	for _, li := range []float64{l.X, l.Y, l.Z} {
		if !IsFinite(li) || math.Abs(li) <= t.Singular*scale {
			return Matrix{}, errors.Wrapf(ErrSingularMatrix, "lift: points not in general position (%s)", l)
		}
	}

	D := Matrix{
		{1 / l.X, 0, 0},
		{0, 1 / l.Y, 0},
		{0, 0, 1 / l.Z},
	}
	return D.Mul(inv), nil
}

// Lift with the default tolerances.
func Lift(a, b, c, d Point) (Matrix, error) {
	return DefaultTolerances.Lift(a, b, c, d)
}
