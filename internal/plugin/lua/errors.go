package lua

import "errors"

var (
	// ErrStateClosed is returned when running code on a closed state.
	ErrStateClosed = errors.New("lua: state is closed")

	// ErrTimeout is returned when a script runs past its time limit.
	ErrTimeout = errors.New("lua: execution timeout")

	// ErrPayload is raised when a script passes a payload the command
	// cannot take.
	ErrPayload = errors.New("lua: invalid payload")
)
