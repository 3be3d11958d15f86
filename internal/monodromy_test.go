package internal

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/osuushi/bigon/projective"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonodromy(t *testing.T) {
	tol := projective.DefaultTolerances
	for _, c := range testCoords {
		t.Run(c.String(), func(t *testing.T) {
			mono, err := MonodromyOf(c, tol)
			require.NoError(t, err)

			// T shifts the sequence by one period
			seq, err := DirectFormula{}.Reconstruct(c, 10)
			require.NoError(t, err)
			for i := 0; i < 8; i++ {
				image := mono.T.Apply(seq.At(i))
				assert.True(t, image.Equivalent(seq.At(i+2), 1e-9), "T v%d", i)
			}
		})
	}

	t.Run("short window panics", func(t *testing.T) {
		first := Reconstruct6(testCoords[0])
		assert.Panics(t, func() {
			BuildMonodromy(first[:5], tol)
		})
	})

	t.Run("singular", func(t *testing.T) {
		_, err := MonodromyOf(Coords(0.5, 0, 0.5, 0.5), tol)
		assert.ErrorIs(t, err, ErrSingularMatrix)
	})
}

func TestMonodromyDual(t *testing.T) {
	mono, err := MonodromyOf(testCoords[0], projective.DefaultTolerances)
	require.NoError(t, err)

	// The dual acts on lines: T* (p × q) ~ (T p) × (T q)
	first := Reconstruct6(testCoords[0])
	for i := 0; i < 5; i++ {
		line := projective.Join(first[i], first[i+1])
		expected := projective.Join(mono.T.Apply(first[i]), mono.T.Apply(first[i+1]))
		actual := mono.Dual.Apply(projective.Point{Vector: line.Vector})
		assert.True(t, actual.Equivalent(projective.Point{Vector: expected.Vector}, 1e-9), "edge %d", i)
	}
}

func TestMonodromyInvariants(t *testing.T) {
	cases := []struct {
		coords         CornerCoords
		omega1, omega2 float64
	}{
		{Coords(0.3, 0.7, 0.4, 0.6), -1.275510204081632, 4.464285714285713},
		{Coords(0.2, 0.9, 0.35, 0.45), -3.73418686175888, 45.9183673469388},
	}
	for _, c := range cases {
		t.Run(c.coords.String(), func(t *testing.T) {
			closed1, closed2 := c.coords.Invariants()
			assert.InDelta(t, c.omega1, closed1, 1e-9)
			assert.InDelta(t, c.omega2, closed2, 1e-9)

			mono, err := MonodromyOf(c.coords, projective.DefaultTolerances)
			require.NoError(t, err)
			fromT1, fromT2 := mono.Invariants()
			assert.InDelta(t, c.omega1, fromT1, 1e-8)
			assert.InDelta(t, c.omega2, fromT2, 1e-8)
		})
	}
}

func TestMonodromyEigenvalues(t *testing.T) {
	mono, err := MonodromyOf(testCoords[0], projective.DefaultTolerances)
	require.NoError(t, err)

	assert.InDelta(t, 1, mono.Normalized().Det(), 1e-12)

	product := complex(1, 0)
	sum := complex(0, 0)
	for i, ev := range mono.Eigenvalues {
		require.False(t, cmplx.IsNaN(ev))
		product *= ev
		sum += ev
		if i > 0 {
			assert.GreaterOrEqual(t, cmplx.Abs(mono.Eigenvalues[i-1]), cmplx.Abs(ev))
		}
	}
	assert.InDelta(t, 1, real(product), 1e-9)
	assert.InDelta(t, 0, imag(product), 1e-9)
	assert.InDelta(t, mono.Normalized().Trace(), real(sum), 1e-9)

	t.Run("non-finite", func(t *testing.T) {
		values := eigenvalues(projective.Matrix{{math.NaN(), 0, 0}, {0, 1, 0}, {0, 0, 1}})
		for _, ev := range values {
			assert.True(t, cmplx.IsNaN(ev))
		}
	})
}
