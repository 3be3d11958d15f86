package internal

import (
	"fmt"
	"log/slog"

	"github.com/osuushi/bigon/projective"
	"github.com/pkg/errors"
)

// The first four vertices of every reconstructed bigon sit on the unit square.
// Any twisted bigon can be moved there by a projective transformation, so this
// costs no generality.
var unitSquare = [4]projective.Point{
	projective.Pt(0, 0, 1),
	projective.Pt(1, 0, 1),
	projective.Pt(1, 1, 1),
	projective.Pt(0, 1, 1),
}

// VertexSequence is the bi-infinite vertex list of a twisted bigon, restricted
// to indices 0, 1, 2, .... Vertices are materialized lazily: At extends the
// sequence as far as needed with the strategy that created it.
type VertexSequence struct {
	vertices []projective.Point
	// next computes vertex len(vertices) from the ones already known
	next func(known []projective.Point) projective.Point
}

func newVertexSequence(capacity int, next func([]projective.Point) projective.Point) *VertexSequence {
	vertices := make([]projective.Point, len(unitSquare), max(capacity, len(unitSquare)))
	copy(vertices, unitSquare[:])
	return &VertexSequence{vertices: vertices, next: next}
}

// Len is the number of vertices materialized so far.
func (s *VertexSequence) Len() int {
	return len(s.vertices)
}

// Extend materializes vertices up to index n-1.
func (s *VertexSequence) Extend(n int) {
	for len(s.vertices) < n {
		s.vertices = append(s.vertices, s.next(s.vertices))
	}
}

// At returns vertex i, extending the sequence if needed. Negative indices are
// a programmer error.
func (s *VertexSequence) At(i int) projective.Point {
	if i < 0 {
		fatalf("vertex index %d is negative", i)
	}
	s.Extend(i + 1)
	return s.vertices[i]
}

// Vertices returns a copy of the first n vertices.
func (s *VertexSequence) Vertices(n int) []projective.Point {
	s.Extend(n)
	result := make([]projective.Point, n)
	copy(result, s.vertices)
	return result
}

// A Reconstructor turns corner coordinates into a vertex sequence with at least
// count vertices materialized. Implementations are pure: every call starts from
// scratch and nothing is cached between calls.
type Reconstructor interface {
	Reconstruct(c CornerCoords, count int) (*VertexSequence, error)
	Name() string
}

// DirectFormula computes every vertex from the corner coordinates with the
// reconstruction polynomials. It never fails.
type DirectFormula struct{}

func (DirectFormula) Name() string { return "direct formula" }

func (DirectFormula) Reconstruct(c CornerCoords, count int) (*VertexSequence, error) {
	x := c[:]
	M := projective.Matrix{
		{1, -1, c[0] * c[1]},
		{1, 0, 0},
		{1, 0, c[0] * c[1]},
	}
	seq := newVertexSequence(count, func(known []projective.Point) projective.Point {
		i := len(known)
		upper := 2*i - 5
		return M.Apply(projective.Pt(
			ReconstructionPolynomial(upper, -1, x),
			ReconstructionPolynomial(upper, 1, x),
			ReconstructionPolynomial(upper, 3, x),
		))
	})
	seq.Extend(count)
	return seq, nil
}

// Reconstruct6 is the closed form of the first six vertices.
func Reconstruct6(c CornerCoords) [6]projective.Point {
	x0, x1, x2, x3 := c[0], c[1], c[2], c[3]
	return [6]projective.Point{
		unitSquare[0],
		unitSquare[1],
		unitSquare[2],
		unitSquare[3],
		projective.Pt(
			-x1+x0*x1,
			1-x1,
			1-x1+x0*x1,
		),
		projective.Pt(
			-x1+x0*x1+x1*x2*x3,
			1-x1-x3+x1*x2*x3,
			1-x1-x3+x0*x1+x1*x2*x3,
		),
	}
}

// MonodromyExtension reconstructs six vertices, builds the monodromy T from
// them, and produces every further vertex as v[i] = T v[i-2]. The cost is
// linear in the number of vertices.
type MonodromyExtension struct {
	Tolerances projective.Tolerances
}

func (MonodromyExtension) Name() string { return "monodromy extension" }

func (m MonodromyExtension) Reconstruct(c CornerCoords, count int) (*VertexSequence, error) {
	first := Reconstruct6(c)
	mono, err := BuildMonodromy(first[:], m.Tolerances)
	if err != nil {
		return nil, err
	}
	return extendByMonodromy(mono.T, count), nil
}

func extendByMonodromy(T projective.Matrix, count int) *VertexSequence {
	seq := newVertexSequence(count, func(known []projective.Point) projective.Point {
		// Keep the homogeneous vectors at unit length so long sequences
		// neither overflow nor underflow.
		return T.Apply(known[len(known)-2]).Normalize()
	})
	seq.Extend(count)
	return seq
}

// Reconstruct picks a strategy for the diagonal parameter l and returns the
// first count vertices.
func Reconstruct(c CornerCoords, l, count int, opts Options) ([]projective.Point, error) {
	strategy := opts.StrategyFor(l)
	Logger().Debug("reconstructing bigon",
		slog.String("strategy", strategy.Name()),
		slog.Int("count", count),
		slog.String("coords", c.String()))
	seq, err := strategy.Reconstruct(c, count)
	if err != nil {
		return nil, errors.Wrapf(err, "reconstruct %s with %s", c, strategy.Name())
	}
	return seq.Vertices(count), nil
}

func (s *VertexSequence) String() string {
	return fmt.Sprintf("VertexSequence%v", s.vertices)
}
