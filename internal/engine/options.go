package engine

import (
	"github.com/google/uuid"

	"github.com/mrdivyansh/lexical/internal/engine/tree"
	"github.com/mrdivyansh/lexical/internal/logging"
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithRegistry sets the node kinds the editor's documents may contain.
func WithRegistry(reg *tree.Registry) Option {
	return func(e *Editor) {
		if reg != nil {
			e.registry = reg
		}
	}
}

// WithInitialState starts the editor from a copy of st instead of an empty
// root. The editor adopts the state's registry.
func WithInitialState(st *tree.State) Option {
	return func(e *Editor) {
		e.initial = st
	}
}

// WithFocus sets the query used by IsFocused to ask the host whether the
// editing surface has focus.
func WithFocus(focused func() bool) Option {
	return func(e *Editor) {
		e.focus = focused
	}
}

// WithLogger sets the editor's logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithID sets the editor ID instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(e *Editor) {
		e.id = id
	}
}

// UpdateOption configures a single Update call.
type UpdateOption func(*updateOptions)

type updateOptions struct {
	onUpdate func()
	tags     []string
}

// WithOnUpdate registers a callback run after the update has committed and
// update listeners have been notified. It runs for clean updates too, but
// not when the mutator fails.
func WithOnUpdate(fn func()) UpdateOption {
	return func(o *updateOptions) {
		o.onUpdate = fn
	}
}

// WithTag labels the update. Tags are passed to update listeners.
func WithTag(tag string) UpdateOption {
	return func(o *updateOptions) {
		o.tags = append(o.tags, tag)
	}
}
