// Boundary dynamics of twisted bigons under projective diagonal maps.
//
// A twisted bigon is determined up to projective equivalence by four corner
// coordinates. The map T(k,l) reconstructs the bigon's vertices, intersects
// the diagonals (v[i+k], v[i+k+l]) and (v[i], v[i+l]), and reads the corner
// coordinates of the image back off. This package wraps the engine in
// internal with a small functional API.
package bigon

import (
	"context"
	"log/slog"

	"github.com/osuushi/bigon/internal"
	"github.com/osuushi/bigon/projective"
)

type CornerCoords = internal.CornerCoords
type Point = projective.Point
type Options = internal.Options
type MapError = internal.MapError
type Trajectory = internal.Trajectory

var (
	ErrSingularMatrix          = internal.ErrSingularMatrix
	ErrDegenerateConfiguration = internal.ErrDegenerateConfiguration
)

func Coords(x0, x1, x2, x3 float64) CornerCoords {
	return internal.Coords(x0, x1, x2, x3)
}

func DefaultOptions() Options {
	return internal.DefaultOptions()
}

// SetLogger routes engine logs to l. nil silences them again.
func SetLogger(l *slog.Logger) {
	internal.SetLogger(l)
}

// ApplyMap applies T(k,l) to c p times with the default options.
//
// Failures are a *MapError wrapping ErrSingularMatrix or
// ErrDegenerateConfiguration, and say which iteration failed.
func ApplyMap(c CornerCoords, k, l, p int) (CornerCoords, error) {
	return ApplyMapWithOptions(context.Background(), c, k, l, p, DefaultOptions())
}

func ApplyMapWithOptions(ctx context.Context, c CornerCoords, k, l, p int, opts Options) (result CornerCoords, err error) {
	defer func() {
		recoveredErr := internal.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = CornerCoords{}
			err = recoveredErr
		}
	}()
	m, err := internal.NewMap(k, l, opts)
	if err != nil {
		return CornerCoords{}, err
	}
	return m.ApplyContext(ctx, c, p)
}

// Orbit iterates T(k,l) up to steps times. On failure the partial trajectory
// is returned with the error.
func Orbit(ctx context.Context, c CornerCoords, k, l, steps int) (trajectory Trajectory, err error) {
	defer func() {
		recoveredErr := internal.HandlePanicRecover(recover())
		if recoveredErr != nil {
			err = recoveredErr
		}
	}()
	m, err := internal.NewMap(k, l, DefaultOptions())
	if err != nil {
		return nil, err
	}
	return m.Orbit(ctx, c, steps)
}

// Reconstruct returns the first count vertices of the bigon, choosing the
// reconstruction strategy for diagonal parameter l.
func Reconstruct(c CornerCoords, l, count int) (vertices []Point, err error) {
	defer func() {
		recoveredErr := internal.HandlePanicRecover(recover())
		if recoveredErr != nil {
			vertices = nil
			err = recoveredErr
		}
	}()
	return internal.Reconstruct(c, l, count, DefaultOptions())
}

// IsDegenerate reports whether c lies on a known singular locus: an unusable
// coordinate or a singular monodromy.
func IsDegenerate(c CornerCoords) bool {
	b := internal.BigonFromCoords(c)
	if b.IsDegenerate() {
		return true
	}
	b.Reconstruct(DefaultOptions())
	return b.IsDegenerate()
}
