package projective

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Point is a point of the real projective plane in homogeneous coordinates.
type Point struct {
	r3.Vector
}

// Line is a line of the projective plane, stored as the point of the dual
// plane it corresponds to. A point p lies on l iff p.Dot(l) == 0.
type Line struct {
	r3.Vector
}

// Pt returns the point [x : y : z].
func Pt(x, y, z float64) Point {
	return Point{r3.Vector{X: x, Y: y, Z: z}}
}

// AffinePt lifts (x, y) to [x : y : 1].
func AffinePt(x, y float64) Point {
	return Pt(x, y, 1)
}

func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0 && p.Z == 0
}

func (p Point) IsFinite() bool {
	return IsFinite(p.X) && IsFinite(p.Y) && IsFinite(p.Z)
}

// Valid reports whether p names an actual point: finite, no NaN, and not the
// zero vector.
func (p Point) Valid() bool {
	return p.IsFinite() && !p.IsZero()
}

// Affine returns the affine chart coordinates (x/z, y/z). ok is false when p
// is (relative to its own size) at infinity.
func (p Point) Affine(tol float64) (x, y float64, ok bool) {
	if !p.IsFinite() || p.Z == 0 || math.Abs(p.Z) <= tol*p.Norm() {
		return 0, 0, false
	}
	return p.X / p.Z, p.Y / p.Z, true
}

// Normalize scales p to unit length. The zero vector is returned unchanged.
func (p Point) Normalize() Point {
	return Point{p.Vector.Normalize()}
}

// Equivalent reports whether p and q are the same projective point, that is
// whether they are parallel as vectors up to tol.
func (p Point) Equivalent(q Point, tol float64) bool {
	return p.Cross(q.Vector).Norm() <= tol*p.Norm()*q.Norm()
}

func (p Point) String() string {
	return fmt.Sprintf("[%g : %g : %g]", p.X, p.Y, p.Z)
}

// Join returns the line through p and q. It is the zero line when p and q
// coincide.
func Join(p, q Point) Line {
	return Line{p.Cross(q.Vector)}
}

// Meet returns the intersection point of two lines. It is the zero point when
// the lines coincide.
func (l Line) Meet(m Line) Point {
	return Point{l.Cross(m.Vector)}
}

// Contains reports whether p is incident to l, up to tol relative to the sizes
// of both.
func (l Line) Contains(p Point, tol float64) bool {
	return math.Abs(l.Dot(p.Vector)) <= tol*l.Norm()*p.Norm()
}

// Collinear reports whether all points lie on one line, up to tol. Coincident
// points count as collinear.
func Collinear(points []Point, tol float64) bool {
	for j := 1; j < len(points); j++ {
		if points[0].Equivalent(points[j], tol) {
			continue
		}
		line := Join(points[0], points[j])
		for _, p := range points {
			if !line.Contains(p, tol) {
				return false
			}
		}
		return true
	}
	return true
}
