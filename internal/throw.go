package internal

import "github.com/pkg/errors"

// Threading index errors through every vertex lookup would add a lot of noise
// to the map code. Instead, programmer errors (negative vertex indices, short
// vertex windows, bad collaborator arity) panic with an InternalError, and the
// public API recovers to convert to an error. Singular and degenerate
// configurations are NOT programmer errors and are always returned normally.

type InternalError struct {
	error
}

func (e InternalError) Unwrap() error { return e.error }

// Panic with an InternalError.
func fatalf(format string, args ...interface{}) {
	panic(InternalError{errors.Errorf(format, args...)})
}

// HandlePanicRecover converts a recovered InternalError into an error. Any
// other panic value is re-raised.
func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if internalError, ok := r.(InternalError); ok {
			return internalError
		}
		panic(r)
	}
	return nil
}
