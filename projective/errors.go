package projective

import "github.com/pkg/errors"

// ErrSingularMatrix is returned when an inversion or a projective lift meets a
// (numerically) zero determinant. At a singular configuration this is the
// expected answer, so callers should match it with errors.Is and report it.
var ErrSingularMatrix = errors.New("singular matrix")
