package projective

import "math"

// Tolerances collects the numeric thresholds used by the kernel. The zero
// value is not useful; start from DefaultTolerances.
type Tolerances struct {
	// Singular is the threshold for the scale-normalized determinant below
	// which a matrix is treated as singular.
	Singular float64
	// Independence is the threshold for the scale-normalized 5x5 determinant
	// used by IsLinearlyIndependent.
	Independence float64
	// Affine is the relative size of z below which an intersection is treated
	// as a point at infinity and left un-normalized.
	Affine float64
}

var DefaultTolerances = Tolerances{
	Singular:     1e-12,
	Independence: 1e-10,
	Affine:       1e-12,
}

func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}
