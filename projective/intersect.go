package projective

import "math"

// Intersection treats (p1, p2) and (p3, p4) as two lines and returns the point
// where they meet. When the point is on the affine patch it is scaled so that
// z == 1; otherwise the raw homogeneous vector is returned.
//
// No error is reported for degenerate input. If either pair is coincident, or
// both pairs span the same line, the result is the zero vector (or NaN for
// non-finite input), and callers detect that with Point.Valid.
func (t Tolerances) Intersection(p1, p2, p3, p4 Point) Point {
	p := Join(p1, p2).Meet(Join(p3, p4))
	if !p.IsFinite() || p.Z == 0 || math.Abs(p.Z) <= t.Affine*p.Norm() {
		return p
	}
	return Pt(p.X/p.Z, p.Y/p.Z, 1)
}

// Intersection with the default tolerances.
func Intersection(p1, p2, p3, p4 Point) Point {
	return DefaultTolerances.Intersection(p1, p2, p3, p4)
}
