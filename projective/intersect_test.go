package projective

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersection(t *testing.T) {
	// The diagonals of the unit square meet in its center.
	p := Intersection(AffinePt(0, 0), AffinePt(1, 1), AffinePt(1, 0), AffinePt(0, 1))
	require.True(t, p.Valid())
	assert.InDelta(t, 0.5, p.X, 1e-12)
	assert.InDelta(t, 0.5, p.Y, 1e-12)
	assert.Equal(t, 1.0, p.Z)

	// Homogeneous scaling of the inputs does not move the result.
	q := Intersection(Pt(0, 0, 3), Pt(-2, -2, -2), Pt(5, 0, 5), Pt(0, 0.5, 0.5))
	assert.True(t, p.Equivalent(q, 1e-12))
}

func TestIntersectionAtInfinity(t *testing.T) {
	// Parallel lines meet on the line at infinity; the result is not rescaled.
	p := Intersection(AffinePt(0, 0), AffinePt(1, 0), AffinePt(0, 1), AffinePt(1, 1))
	require.True(t, p.Valid())
	assert.Equal(t, 0.0, p.Z)
	assert.True(t, p.Equivalent(Pt(1, 0, 0), 1e-12))
}

func TestIntersectionDegenerate(t *testing.T) {
	a, b, c := AffinePt(0, 0), AffinePt(1, 1), AffinePt(2, 2)

	t.Run("coincident pair", func(t *testing.T) {
		assert.False(t, Intersection(a, a, b, c).Valid())
	})

	t.Run("identical lines", func(t *testing.T) {
		assert.False(t, Intersection(a, b, b, c).Valid())
	})
}

func TestLineContains(t *testing.T) {
	l := Join(AffinePt(0, 0), AffinePt(1, 2))
	assert.True(t, l.Contains(AffinePt(2, 4), 1e-12))
	assert.False(t, l.Contains(AffinePt(2, 3), 1e-12))
}

func TestCollinear(t *testing.T) {
	onDiagonal := []Point{AffinePt(0, 0), Pt(2, 2, 2), AffinePt(-3, -3), Pt(1, 1, 0)}
	assert.True(t, Collinear(onDiagonal, 1e-12))
	assert.False(t, Collinear(append(onDiagonal, AffinePt(1, 0)), 1e-12))

	// A cluster of nearly identical points, as left by a collapsed image
	cluster := []Point{Pt(0, -4.0/3, 1), Pt(3.55e-15, -4.0/3, 1), Pt(-1.38e-14, -1.3333333333334163, 1)}
	assert.True(t, Collinear(cluster, 1e-9))
	assert.False(t, Collinear([]Point{AffinePt(0, 0), AffinePt(1, 0), AffinePt(0, 1)}, 1e-9))

	assert.True(t, Collinear(nil, 1e-12))
	assert.True(t, Collinear([]Point{AffinePt(4, 5)}, 1e-12))
}
