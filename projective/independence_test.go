package projective

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLinearlyIndependent(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	random := func() [4]float64 {
		return [4]float64{r.Float64(), r.Float64(), r.Float64(), r.Float64()}
	}

	t.Run("generic vectors", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			assert.True(t, IsLinearlyIndependent(random(), random(), random(), random(), random()))
		}
	})

	t.Run("affine combination", func(t *testing.T) {
		// v5 = v1 + v2 - v3 also lifts to the same combination, since the
		// trailing coordinates sum to 1 + 1 - 1.
		for i := 0; i < 20; i++ {
			v1, v2, v3, v4 := random(), random(), random(), random()
			var v5 [4]float64
			for j := range v5 {
				v5[j] = v1[j] + v2[j] - v3[j]
			}
			assert.False(t, IsLinearlyIndependent(v1, v2, v3, v4, v5))
		}
	})

	t.Run("repeated vector", func(t *testing.T) {
		v := random()
		assert.False(t, IsLinearlyIndependent(v, random(), v, random(), random()))
	})

	t.Run("clustered points", func(t *testing.T) {
		// Neighbouring orbit points from a boundary scan
		vs := [5][4]float64{
			{0.5, 0.5, 0.5, 0.5},
			{0.5, 0.5, 0.6605, 0.5955},
			{0.48695, 0.42543, 0.49147, 0.52758},
			{0.48705, 0.42603, 0.64699, 0.63721},
			{0.39584, 0.32213, 0.61506, 0.68348},
		}
		assert.True(t, IsLinearlyIndependent(vs[0], vs[1], vs[2], vs[3], vs[4]))
		assert.InDelta(t, 0, NormalizedDet5(vs[0], vs[0], vs[2], vs[3], vs[4]), 1e-12)

		// The appended 1 does not scale with the points, so shrinking them
		// towards the origin flattens the lifted rows into one hyperplane.
		var shrunk [5][4]float64
		for i, v := range vs {
			for j := range v {
				shrunk[i][j] = v[j] * 1e-3
			}
		}
		assert.False(t, IsLinearlyIndependent(shrunk[0], shrunk[1], shrunk[2], shrunk[3], shrunk[4]))
	})

	t.Run("configurable threshold", func(t *testing.T) {
		strict := DefaultTolerances
		strict.Independence = 1
		assert.False(t, strict.IsLinearlyIndependent(random(), random(), random(), random(), random()))
	})
}
