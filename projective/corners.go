package projective

// InverseCrossRatio of four collinear points:
//
//	(A - B)(C - D) / ((A - C)(B - D))
//
// computed from homogeneous coordinates as ((A×B)·(C×D)) / ((A×C)·(B×D)),
// which does not depend on the scaling of any of the four vectors. Degenerate
// input gives ±Inf or NaN.
func InverseCrossRatio(a, b, c, d Point) float64 {
	return a.Cross(b.Vector).Dot(c.Cross(d.Vector)) / a.Cross(c.Vector).Dot(b.Cross(d.Vector))
}

// CornerPair returns the two corner invariants attached to vertex i of a
// closed polygon (indices are taken cyclically):
//
//	even = x_{2i}, the cross ratio on the line through vertices i-1, i-2
//	odd  = x_{2i+1}, the cross ratio on the line through vertices i+1, i+2
//
// Each is the inverse cross ratio of the two vertices on that line and the two
// points where the line meets the neighbouring edges.
func CornerPair(vertices []Point, i int) (even, odd float64) {
	n := len(vertices)
	v := func(j int) Point { return vertices[CircularIndex(j, n)] }

	forward := Join(v(i+1), v(i+2))
	odd = InverseCrossRatio(
		forward.Meet(Join(v(i-2), v(i-1))),
		forward.Meet(Join(v(i), v(i-1))),
		v(i+1),
		v(i+2),
	)

	backward := Join(v(i-1), v(i-2))
	even = InverseCrossRatio(
		backward.Meet(Join(v(i+2), v(i+1))),
		backward.Meet(Join(v(i), v(i+1))),
		v(i-1),
		v(i-2),
	)
	return even, odd
}

// CornerInvariants returns the 2n corner invariants x_0 ... x_{2n-1} of a
// closed n-gon, in the indexing convention of the pentagram map literature.
// All of them are projective invariants of the polygon.
func CornerInvariants(vertices []Point) []float64 {
	coords := make([]float64, 2*len(vertices))
	for i := range vertices {
		coords[2*i], coords[2*i+1] = CornerPair(vertices, i)
	}
	return coords
}
