package internal

import (
	"os"
	"testing"

	"github.com/osuushi/bigon/projective"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCoords = []CornerCoords{
	Coords(0.3, 0.7, 0.4, 0.6),
	Coords(0.2, 0.9, 0.35, 0.45),
	Coords(0.39493084363469855, 0.39493084363469855, 0.39493084363469855, 0.39493084363469855),
	Coords(-1, 7.0/3, -4.0/3, 2),
}

func assertSameVertices(t *testing.T, expected, actual []projective.Point) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.True(t, expected[i].Equivalent(actual[i], 1e-9),
			"vertex %d: %s vs %s", i, expected[i], actual[i])
	}
}

func TestDirectFormula(t *testing.T) {
	t.Run("starts on the unit square", func(t *testing.T) {
		seq, err := DirectFormula{}.Reconstruct(testCoords[0], 4)
		require.NoError(t, err)
		assert.Equal(t, unitSquare[:], seq.Vertices(4))
	})

	t.Run("first six match the closed form", func(t *testing.T) {
		for _, c := range testCoords {
			seq, err := DirectFormula{}.Reconstruct(c, 6)
			require.NoError(t, err)
			closed := Reconstruct6(c)
			assertSameVertices(t, closed[:], seq.Vertices(6))
		}
	})

	t.Run("extends lazily", func(t *testing.T) {
		seq, err := DirectFormula{}.Reconstruct(testCoords[0], 6)
		require.NoError(t, err)
		assert.Equal(t, 6, seq.Len())
		seq.At(9)
		assert.Equal(t, 10, seq.Len())
	})

	t.Run("negative index panics", func(t *testing.T) {
		seq, err := DirectFormula{}.Reconstruct(testCoords[0], 6)
		require.NoError(t, err)
		assert.Panics(t, func() { seq.At(-1) })
	})
}

func TestStrategiesAgree(t *testing.T) {
	monodromy := MonodromyExtension{Tolerances: projective.DefaultTolerances}
	for _, c := range testCoords {
		t.Run(c.String(), func(t *testing.T) {
			direct, err := DirectFormula{}.Reconstruct(c, 12)
			require.NoError(t, err)
			extended, err := monodromy.Reconstruct(c, 12)
			require.NoError(t, err)
			assertSameVertices(t, direct.Vertices(12), extended.Vertices(12))

			if os.Getenv(DebugDrawEnv) != "" {
				dbgDraw(direct.Vertices(12), 20)
			}
		})
	}
}

func TestMonodromyExtensionSingular(t *testing.T) {
	monodromy := MonodromyExtension{Tolerances: projective.DefaultTolerances}
	for _, c := range []CornerCoords{
		Coords(0, 0, 0, 0),
		// v4 lands on v3
		Coords(0.5, 0, 0.5, 0.5),
	} {
		_, err := monodromy.Reconstruct(c, 10)
		assert.ErrorIs(t, err, ErrSingularMatrix, "%s", c)
	}
}

func TestReconstruct(t *testing.T) {
	opts := DefaultOptions()

	t.Run("strategy policy", func(t *testing.T) {
		assert.IsType(t, DirectFormula{}, opts.StrategyFor(3))
		assert.IsType(t, MonodromyExtension{}, opts.StrategyFor(4))
		opts := opts
		opts.DirectFormulaMaxL = 10
		assert.IsType(t, DirectFormula{}, opts.StrategyFor(4))
	})

	t.Run("count", func(t *testing.T) {
		for _, l := range []int{1, 5} {
			vertices, err := Reconstruct(testCoords[0], l, 13, opts)
			require.NoError(t, err)
			assert.Len(t, vertices, 13)
		}
	})

	t.Run("is pure", func(t *testing.T) {
		a, err := Reconstruct(testCoords[1], 5, 10, opts)
		require.NoError(t, err)
		b, err := Reconstruct(testCoords[1], 5, 10, opts)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("singular", func(t *testing.T) {
		_, err := Reconstruct(Coords(0, 0, 0, 0), 5, 10, opts)
		assert.ErrorIs(t, err, ErrSingularMatrix)
	})
}
