package internal

import (
	"fmt"
	"math"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/bigon/projective"
	"github.com/pkg/errors"
)

var (
	// ErrSingularMatrix is the kernel's sentinel, re-exported for callers of
	// this package.
	ErrSingularMatrix = projective.ErrSingularMatrix

	// ErrDegenerateConfiguration means a map image left the domain of the map:
	// an intersection or a new corner coordinate is non-finite, NaN, or zero.
	ErrDegenerateConfiguration = errors.New("degenerate configuration")

	// ErrMonodromyUninitialized is returned when monodromy data is requested
	// from a Bigon that has not been reconstructed yet.
	ErrMonodromyUninitialized = errors.New("monodromy not reconstructed")
)

type ErrorKind int

const (
	KindSingularMatrix ErrorKind = iota + 1
	KindDegenerateConfiguration
)

func (k ErrorKind) String() string {
	switch k {
	case KindSingularMatrix:
		return "SingularMatrix"
	case KindDegenerateConfiguration:
		return "DegenerateConfiguration"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// MapError reports where an application of the map failed. Iteration is
// 1-based, so Iteration-1 is the number of images computed successfully before
// the failure.
type MapError struct {
	Kind      ErrorKind
	Iteration int
	// Step names the stage that failed, e.g. "reconstruct", "intersection 3",
	// "corner x2".
	Step string
	// Coords are the input corner coordinates of the failing iteration.
	Coords CornerCoords
	// Value is the offending scalar when there is one, NaN otherwise.
	Value float64
	Err   error
}

func (e *MapError) Error() string {
	return fmt.Sprintf("%s at iteration %d (%s) from %s: %v", e.Kind, e.Iteration, e.Step, e.Coords, e.Err)
}

func (e *MapError) Unwrap() error { return e.Err }

// Pretty is Error with terminal colours.
func (e *MapError) Pretty() string {
	return fmt.Sprintf("%s at iteration %s (%s) from %s",
		aurora.Red(e.Kind), aurora.Bold(e.Iteration), e.Step, e.Coords.Pretty())
}

func singularError(step string, c CornerCoords, err error) *MapError {
	return &MapError{
		Kind:   KindSingularMatrix,
		Step:   step,
		Coords: c,
		Value:  math.NaN(),
		Err:    err,
	}
}

func degenerateError(step string, c CornerCoords, value float64) *MapError {
	return &MapError{
		Kind:   KindDegenerateConfiguration,
		Step:   step,
		Coords: c,
		Value:  value,
		Err:    errors.Wrapf(ErrDegenerateConfiguration, "%s = %g", step, value),
	}
}

// AsMapError unwraps err to a *MapError if there is one.
func AsMapError(err error) (*MapError, bool) {
	var mapErr *MapError
	if errors.As(err, &mapErr) {
		return mapErr, true
	}
	return nil, false
}
