package parallel

import "errors"

const Namespace = "parallel"

var (
	// ErrInvalidChunkSize is returned, before any dispatch, for an explicit
	// chunk size that is not strictly positive.
	ErrInvalidChunkSize = errors.New(Namespace + ": chunk size must be positive")

	// ErrInvalidConfig is returned for other invalid option values.
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")

	// ErrNilFunction is returned when the user function is nil.
	ErrNilFunction = errors.New(Namespace + ": nil function")

	// ErrPanicked wraps a panic recovered from the user function.
	ErrPanicked = errors.New(Namespace + ": function panicked")
)
