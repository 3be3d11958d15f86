package projective

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// IsLinearlyIndependent lifts five vectors of R^4 to R^5 by appending a
// trailing 1 and reports whether the lifted vectors are linearly independent,
// i.e. whether the five points of RP^4 are in general position with respect to
// hyperplanes through them.
//
// The test is |det| / ∏‖row‖ > t.Independence rather than det != 0. The
// normalized determinant is bounded by 1. It is not invariant under scaling of
// the points, since the appended 1 stays fixed.
func (t Tolerances) IsLinearlyIndependent(v1, v2, v3, v4, v5 [4]float64) bool {
	d := NormalizedDet5(v1, v2, v3, v4, v5)
	return IsFinite(d) && math.Abs(d) > t.Independence
}

// IsLinearlyIndependent with the default tolerances.
func IsLinearlyIndependent(v1, v2, v3, v4, v5 [4]float64) bool {
	return DefaultTolerances.IsLinearlyIndependent(v1, v2, v3, v4, v5)
}

// NormalizedDet5 is the determinant of the 5x5 matrix of lifted rows divided
// by the product of the row norms.
func NormalizedDet5(v1, v2, v3, v4, v5 [4]float64) float64 {
	data := make([]float64, 0, 25)
	scale := 1.0
	for _, v := range [5][4]float64{v1, v2, v3, v4, v5} {
		row := []float64{v[0], v[1], v[2], v[3], 1}
		scale *= mat.Norm(mat.NewVecDense(5, row), 2)
		data = append(data, row...)
	}
	return mat.Det(mat.NewDense(5, 5, data)) / scale
}
