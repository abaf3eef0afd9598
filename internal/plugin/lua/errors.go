package lua

import (
	"errors"
	"fmt"
)

var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call overruns its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNoRecognizeFunc is returned for a script without a recognize
	// function.
	ErrNoRecognizeFunc = errors.New("script does not define recognize(text)")

	// ErrBadResult is returned when recognize returns something other than
	// a table of matches.
	ErrBadResult = errors.New("recognize returned an invalid result")
)

// ScriptError attributes a failure to a script.
type ScriptError struct {
	Script string
	Func   string
	Err    error
}

func (e *ScriptError) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("lua %s: %s: %v", e.Script, e.Func, e.Err)
	}
	return fmt.Sprintf("lua %s: %v", e.Script, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
