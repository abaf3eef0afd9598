package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrInvalidState indicates a StatePatch that cannot be applied.
	ErrInvalidState = errors.New("invalid state patch")

	// ErrNilParser indicates AddParser was given a nil recognizer.
	ErrNilParser = errors.New("parser cannot be nil")
)
