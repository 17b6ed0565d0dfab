package geo

import "errors"

// Domain errors for grid and source construction.
var (
	// ErrShapeMismatch indicates coordinate or component arrays of unequal length.
	ErrShapeMismatch = errors.New("geo: shape mismatch between coordinate arrays")

	// ErrCountMismatch indicates a source set whose strengths do not pair with its sources.
	ErrCountMismatch = errors.New("geo: source and strength counts differ")

	// ErrEmptyGrid indicates a grid specification that produces no points.
	ErrEmptyGrid = errors.New("geo: grid has no points")
)
