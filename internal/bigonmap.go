package internal

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/osuushi/bigon/projective"
	"github.com/pkg/errors"
)

// Map is the bigon map T_{k,l}. Image vertex i is the meet of the diagonals
// (v[i+k], v[i+k+l]) and (v[i], v[i+l]) of the input bigon.
type Map struct {
	K, L    int
	Options Options
}

func NewMap(k, l int, opts Options) (Map, error) {
	if k < 0 || l < 0 {
		return Map{}, errors.Errorf("map parameters must be non-negative, got k=%d l=%d", k, l)
	}
	if err := opts.Validate(); err != nil {
		return Map{}, err
	}
	return Map{K: k, L: l, Options: opts}, nil
}

func (m Map) String() string {
	return fmt.Sprintf("T(%d,%d)", m.K, m.L)
}

// Apply iterates the map p times. Any failure aborts the whole chain; the
// returned *MapError carries the 1-based iteration it happened in.
func (m Map) Apply(c CornerCoords, p int) (CornerCoords, error) {
	return m.ApplyContext(context.Background(), c, p)
}

// ApplyContext is Apply with cancellation checked between iterations. A
// cancelled chain returns the context error and no coordinates.
func (m Map) ApplyContext(ctx context.Context, c CornerCoords, p int) (CornerCoords, error) {
	if p < 1 {
		return CornerCoords{}, errors.Errorf("iteration count must be positive, got %d", p)
	}
	for iteration := 1; iteration <= p; iteration++ {
		if err := ctx.Err(); err != nil {
			return CornerCoords{}, errors.WithStack(err)
		}
		next, err := m.Step(c)
		if err != nil {
			if mapErr, ok := AsMapError(err); ok {
				mapErr.Iteration = iteration
			}
			return CornerCoords{}, err
		}
		Logger().Debug("map iteration",
			slog.String("map", m.String()),
			slog.Int("iteration", iteration),
			slog.String("from", c.String()),
			slog.String("to", next.String()))
		c = next
	}
	return c, nil
}

// ApplyEach applies the map p times to every input on its own. A map failure
// only affects its own slot: the result there is all NaN and failures holds
// the error at the same index, so results line up with inputs. Any other error
// aborts the whole batch.
func (m Map) ApplyEach(ctx context.Context, inputs []CornerCoords, p int) ([]CornerCoords, []error, error) {
	results := make([]CornerCoords, len(inputs))
	failures := make([]error, len(inputs))
	for i, c := range inputs {
		result, err := m.ApplyContext(ctx, c, p)
		if err != nil {
			if _, ok := AsMapError(err); !ok {
				return nil, nil, err
			}
			nan := math.NaN()
			result = Coords(nan, nan, nan, nan)
			failures[i] = err
		}
		results[i] = result
	}
	return results, failures, nil
}

// Step applies the map once. Errors are always *MapError with Iteration 1.
func (m Map) Step(c CornerCoords) (CornerCoords, error) {
	k, l := m.K, m.L
	strategy := m.Options.StrategyFor(l)
	Logger().Debug("reconstructing bigon",
		slog.String("strategy", strategy.Name()),
		slog.Int("count", k+l+6),
		slog.String("coords", c.String()))
	seq, err := strategy.Reconstruct(c, k+l+6)
	if err != nil {
		mapErr := singularError("reconstruct", c, err)
		mapErr.Iteration = 1
		return CornerCoords{}, mapErr
	}

	tol := m.Options.Tolerances()
	var image [6]projective.Point
	for i := range image {
		image[i] = tol.Intersection(seq.At(i+k), seq.At(i+k+l), seq.At(i), seq.At(i+l))
		if !image[i].Valid() {
			mapErr := degenerateError(fmt.Sprintf("intersection %d", i), c, image[i].Norm())
			mapErr.Iteration = 1
			return CornerCoords{}, mapErr
		}
	}
	if projective.Collinear(image[:], m.Options.CollapseEpsilon) {
		mapErr := degenerateError("image collapse", c, math.NaN())
		mapErr.Iteration = 1
		return CornerCoords{}, mapErr
	}

	next := SelectCorners(extractCorners(image), k)
	if bad := next.Check(); bad >= 0 {
		mapErr := degenerateError(fmt.Sprintf("corner x%d", bad), c, next[bad])
		mapErr.Iteration = 1
		return CornerCoords{}, mapErr
	}
	return next, nil
}

// extractCorners computes the corner invariants x0..x7 attached to the first
// four image vertices.
func extractCorners(image [6]projective.Point) [8]float64 {
	var temp [8]float64
	for i := 0; i < 4; i++ {
		temp[2*i], temp[2*i+1] = projective.CornerPair(image[:], i)
	}
	return temp
}

// SelectCorners picks the new corner coordinates out of the eight extracted
// ones. An odd k flips the orientation of the image, which swaps the two
// halves.
func SelectCorners(temp [8]float64, k int) CornerCoords {
	if k%2 == 0 {
		return Coords(temp[4], temp[5], temp[6], temp[7])
	}
	return Coords(temp[6], temp[7], temp[4], temp[5])
}
