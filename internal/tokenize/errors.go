package tokenize

import "errors"

var (
	// ErrRecognizerExists is returned when a name is registered twice.
	ErrRecognizerExists = errors.New("recognizer already registered")

	// ErrRecognizerNotFound is returned when removing an unknown name.
	ErrRecognizerNotFound = errors.New("recognizer not found")

	// ErrInvalidPattern is returned for an unusable custom pattern.
	ErrInvalidPattern = errors.New("invalid recognizer pattern")
)
