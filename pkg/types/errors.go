package types

import "errors"

// Domain errors shared across the retrieval pipeline
var (
	// ErrInvalidArgument indicates a caller-supplied parameter that fails
	// validation (non-positive window size, negative overlap, empty repo id,
	// empty vector, non-positive dimension).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDimensionMismatch indicates that two vectors compared in one
	// operation do not share the same dimensionality.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
