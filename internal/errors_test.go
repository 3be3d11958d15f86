package internal

import (
	"fmt"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	c := Coords(0.5, 0.5, 0.5, 0.5)

	t.Run("degenerate", func(t *testing.T) {
		err := degenerateError("corner x2", c, math.NaN())
		err.Iteration = 4
		assert.ErrorIs(t, err, ErrDegenerateConfiguration)
		assert.NotErrorIs(t, err, ErrSingularMatrix)
		assert.Equal(t,
			"DegenerateConfiguration at iteration 4 (corner x2) from (0.5, 0.5, 0.5, 0.5): corner x2 = NaN: degenerate configuration",
			err.Error())
		assert.Contains(t, err.Pretty(), "corner x2")
	})

	t.Run("singular", func(t *testing.T) {
		err := singularError("reconstruct", c, errors.Wrap(ErrSingularMatrix, "lift"))
		assert.ErrorIs(t, err, ErrSingularMatrix)
		assert.Equal(t, KindSingularMatrix, err.Kind)
		assert.True(t, math.IsNaN(err.Value))
	})

	t.Run("as", func(t *testing.T) {
		wrapped := fmt.Errorf("orbit: %w", degenerateError("intersection 0", c, 0))
		mapErr, ok := AsMapError(wrapped)
		require.True(t, ok)
		assert.Equal(t, "intersection 0", mapErr.Step)

		_, ok = AsMapError(errors.New("other"))
		assert.False(t, ok)
		_, ok = AsMapError(nil)
		assert.False(t, ok)
	})

	assert.Equal(t, "SingularMatrix", KindSingularMatrix.String())
	assert.Equal(t, "ErrorKind(0)", ErrorKind(0).String())
}
