package internal

import (
	"log/slog"
	"math"
	"math/cmplx"
	"sort"

	"github.com/osuushi/bigon/projective"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Monodromy is a lift of the projective transformation that shifts the vertex
// sequence of a twisted bigon by one period: T v[i] ~ v[i+2].
type Monodromy struct {
	T projective.Matrix
	// Dual is a lift of the dual transformation, acting on lines.
	Dual projective.Matrix
	// Eigenvalues of T scaled to determinant 1, sorted by decreasing modulus.
	// Diagnostic only; the map never uses them.
	Eigenvalues [3]complex128
}

// BuildMonodromy computes the monodromy from the first six vertices of a
// bigon. M1 lifts vertices 0-3 to the standard frame and M2 lifts vertices
// 2-5, so T = M2^-1 M1 carries the first window onto the second. Fails with
// ErrSingularMatrix when either window is not in general position.
func BuildMonodromy(vertices []projective.Point, tol projective.Tolerances) (Monodromy, error) {
	if len(vertices) < 6 {
		fatalf("monodromy needs 6 vertices, got %d", len(vertices))
	}
	v := vertices

	M1, err := tol.Lift(v[0], v[1], v[2], v[3])
	if err != nil {
		return Monodromy{}, errors.Wrap(err, "monodromy: window 0-3")
	}
	M2, err := tol.Lift(v[2], v[3], v[4], v[5])
	if err != nil {
		return Monodromy{}, errors.Wrap(err, "monodromy: window 2-5")
	}
	M2Inv, err := tol.Invert(M2)
	if err != nil {
		return Monodromy{}, errors.Wrap(err, "monodromy: inverting window 2-5")
	}

	T := M2Inv.Mul(M1)
	m := Monodromy{
		T:           T,
		Dual:        T.Dual(),
		Eigenvalues: eigenvalues(normalizeDet(T)),
	}
	Logger().Debug("built monodromy",
		slog.String("T", T.String()),
		slog.Any("eigenvalues", m.Eigenvalues))
	return m, nil
}

// MonodromyOf reconstructs the first six vertices of c and builds the
// monodromy from them.
func MonodromyOf(c CornerCoords, tol projective.Tolerances) (Monodromy, error) {
	first := Reconstruct6(c)
	return BuildMonodromy(first[:], tol)
}

// Invariants returns Ω₁ = tr(T)³/det(T) and Ω₂ = tr(T*)³/det(T*). Both are
// independent of the choice of lift.
func (m Monodromy) Invariants() (omega1, omega2 float64) {
	omega1 = math.Pow(m.T.Trace(), 3) / m.T.Det()
	omega2 = math.Pow(m.Dual.Trace(), 3) / m.Dual.Det()
	return omega1, omega2
}

// Normalized returns the lift of T with determinant 1.
func (m Monodromy) Normalized() projective.Matrix {
	return normalizeDet(m.T)
}

func normalizeDet(T projective.Matrix) projective.Matrix {
	det := T.Det()
	if det == 0 {
		return T
	}
	return T.Scale(1 / math.Cbrt(det))
}

func eigenvalues(T projective.Matrix) [3]complex128 {
	result := [3]complex128{cmplx.NaN(), cmplx.NaN(), cmplx.NaN()}
	if !T.IsFinite() {
		return result
	}
	a := mat.NewDense(3, 3, []float64{
		T[0][0], T[0][1], T[0][2],
		T[1][0], T[1][1], T[1][2],
		T[2][0], T[2][1], T[2][2],
	})
	var eig mat.Eigen
	if !eig.Factorize(a, mat.EigenNone) {
		return result
	}
	values := eig.Values(nil)
	sort.SliceStable(values, func(i, j int) bool {
		return cmplx.Abs(values[i]) > cmplx.Abs(values[j])
	})
	copy(result[:], values)
	return result
}
