// Package execctx provides the execution context passed to command
// handlers.
package execctx

import (
	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/engine"
	"github.com/mrdivyansh/lexical/internal/engine/tree"
	"github.com/mrdivyansh/lexical/internal/logging"
)

// DispatchFunc runs a command through the handler chain of the dispatcher
// that created a context.
type DispatchFunc func(cmd command.Command) (bool, error)

// Context is the handler's view of one dispatch. It is only valid while
// the handler runs.
type Context struct {
	// Tx is the transaction the dispatch runs in.
	Tx *engine.Tx

	// Depth is the nesting level: 0 for a top-level dispatch, one more for
	// every command re-dispatched from a handler.
	Depth int

	// Logger is the dispatcher's logger.
	Logger *logging.Logger

	// Data holds values shared between hooks of the same dispatch.
	Data map[string]interface{}

	dispatch DispatchFunc
}

// New creates a context for a dispatch running in tx.
func New(tx *engine.Tx, depth int, dispatch DispatchFunc) *Context {
	return &Context{
		Tx:       tx,
		Depth:    depth,
		Logger:   logging.Null,
		Data:     make(map[string]interface{}),
		dispatch: dispatch,
	}
}

// WithLogger returns the context with the logger set.
func (ctx *Context) WithLogger(l *logging.Logger) *Context {
	if l != nil {
		ctx.Logger = l
	}
	return ctx
}

// State returns the transaction's writable draft, or nil outside a
// transaction.
func (ctx *Context) State() *tree.State {
	if ctx == nil || ctx.Tx == nil {
		return nil
	}
	return ctx.Tx.State()
}

// Editor returns the editor running the transaction.
func (ctx *Context) Editor() *engine.Editor {
	if ctx == nil || ctx.Tx == nil {
		return nil
	}
	return ctx.Tx.Editor()
}

// Selection returns a copy of the draft's selection, or nil when there is
// none.
func (ctx *Context) Selection() *tree.Selection {
	s := ctx.State()
	if s == nil {
		return nil
	}
	return s.Selection()
}

// HasSelection reports whether the draft has a selection whose endpoints
// are attached.
func (ctx *Context) HasSelection() bool {
	s := ctx.State()
	return s != nil && s.SelectionValid()
}

// Dispatch runs cmd through the same handler chain inside the current
// transaction and reports whether a handler claimed it.
func (ctx *Context) Dispatch(cmd command.Command) (bool, error) {
	if ctx == nil || ctx.dispatch == nil {
		return false, ErrNoDispatcher
	}
	return ctx.dispatch(cmd)
}

// SetData sets a context data value.
func (ctx *Context) SetData(key string, value interface{}) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]interface{})
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *Context) GetData(key string) (interface{}, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// Validate checks that the context belongs to a running transaction.
func (ctx *Context) Validate() error {
	if ctx == nil || ctx.Tx == nil {
		return ErrNoTransaction
	}
	return nil
}
