package tree

import (
	"errors"
	"fmt"
)

// Errors returned by tree operations.
var (
	// ErrFrozen indicates a mutation was attempted on a committed snapshot.
	ErrFrozen = errors.New("tree: state is frozen")

	// ErrUnregisteredKind indicates a node kind that is not in the registry.
	ErrUnregisteredKind = errors.New("tree: node kind not registered")

	// ErrInvalidKind indicates a kind that cannot be used for the operation.
	ErrInvalidKind = errors.New("tree: invalid node kind")

	// ErrInvalidChild indicates a parent/child combination the tree forbids.
	ErrInvalidChild = errors.New("tree: invalid child")

	// ErrNodeNotFound indicates a key that is not present in the state.
	ErrNodeNotFound = errors.New("tree: node not found")

	// ErrInvariant indicates the tree violates a structural invariant.
	ErrInvariant = errors.New("tree: invariant violated")
)

// ParseError describes a failure to decode a serialized state.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("tree: parse: %s", e.Message)
	}
	return fmt.Sprintf("tree: parse %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
