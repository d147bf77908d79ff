package radial

import "errors"

// Sentinel errors. Callers match them with errors.Is; returned errors
// carry the offending series and index.
var (
	// ErrLengthMismatch means a series does not hold one value per category.
	ErrLengthMismatch = errors.New("radial: series length does not match category count")

	// ErrOutOfRange means a value is outside [0, MaxValue] or is NaN.
	ErrOutOfRange = errors.New("radial: value out of range")

	// ErrUnknownVariant means an export variant name is not recognized.
	ErrUnknownVariant = errors.New("radial: unknown export variant")

	// ErrClosed means the chart was closed.
	ErrClosed = errors.New("radial: chart closed")
)
