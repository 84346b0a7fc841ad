package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrMaxDepth indicates a chain of nested dispatches deeper than
	// Config.MaxDepth, usually handlers re-dispatching to each other.
	ErrMaxDepth = errors.New("dispatcher: maximum dispatch depth exceeded")

	// ErrPanic indicates a handler panicked while panic recovery was on.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrNilHandler indicates a nil handler passed to Register.
	ErrNilHandler = errors.New("dispatcher: nil handler")
)
