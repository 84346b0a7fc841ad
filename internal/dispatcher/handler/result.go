package handler

import "fmt"

// Status indicates the outcome of handling a command.
type Status uint8

const (
	// StatusUnhandled passes the command on to lower priority handlers.
	StatusUnhandled Status = iota
	// StatusHandled stops propagation.
	StatusHandled
	// StatusError aborts the dispatch and its transaction.
	StatusError
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusUnhandled:
		return "unhandled"
	case StatusHandled:
		return "handled"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result represents the outcome of handling a command.
type Result struct {
	Status Status
	Error  error

	// Message is an optional human-readable note for logs.
	Message string
}

// IsHandled reports whether the command was claimed.
func (r Result) IsHandled() bool {
	return r.Status == StatusHandled
}

// IsError reports whether the handler failed.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Handled creates a result that stops propagation.
func Handled() Result {
	return Result{Status: StatusHandled}
}

// Unhandled creates a result that passes the command on.
func Unhandled() Result {
	return Result{Status: StatusUnhandled}
}

// FromBool converts a handled flag to a result.
func FromBool(handled bool) Result {
	if handled {
		return Handled()
	}
	return Unhandled()
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...interface{}) Result {
	return Result{
		Status: StatusError,
		Error:  fmt.Errorf(format, args...),
	}
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}
