package engine

import "errors"

// Errors returned by editor operations.
var (
	// ErrNestedUpdate indicates Update was called while another update was
	// running. Updates are not reentrant.
	ErrNestedUpdate = errors.New("engine: update already in progress")

	// ErrNilMutator indicates Update was called without a mutator.
	ErrNilMutator = errors.New("engine: nil mutator")

	// ErrNilState indicates SetState was called with a nil state.
	ErrNilState = errors.New("engine: nil state")
)
