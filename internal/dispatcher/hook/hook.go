package hook

import (
	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/dispatcher/execctx"
	"github.com/mrdivyansh/lexical/internal/dispatcher/handler"
)

// Hook is the base interface for all dispatch hooks.
type Hook interface {
	// Name returns a unique identifier for this hook.
	Name() string

	// Priority returns the hook priority.
	// Higher values run first for pre-hooks, last for post-hooks.
	Priority() int
}

// PreDispatchHook is called before a command reaches its handlers.
type PreDispatchHook interface {
	Hook

	// PreDispatch may modify the command. Returning false cancels it.
	PreDispatch(cmd *command.Command, ctx *execctx.Context) bool
}

// PostDispatchHook is called after the handler chain has run.
type PostDispatchHook interface {
	Hook

	PostDispatch(cmd *command.Command, ctx *execctx.Context, result *handler.Result)
}

// PreDispatchFunc wraps a function as a PreDispatchHook.
type PreDispatchFunc struct {
	name     string
	priority int
	fn       func(cmd *command.Command, ctx *execctx.Context) bool
}

// NewPreDispatchFunc creates a new PreDispatchFunc hook.
func NewPreDispatchFunc(name string, priority int, fn func(cmd *command.Command, ctx *execctx.Context) bool) *PreDispatchFunc {
	return &PreDispatchFunc{name: name, priority: priority, fn: fn}
}

// Name implements Hook.
func (f *PreDispatchFunc) Name() string { return f.name }

// Priority implements Hook.
func (f *PreDispatchFunc) Priority() int { return f.priority }

// PreDispatch implements PreDispatchHook.
func (f *PreDispatchFunc) PreDispatch(cmd *command.Command, ctx *execctx.Context) bool {
	if f.fn == nil {
		return true
	}
	return f.fn(cmd, ctx)
}

// PostDispatchFunc wraps a function as a PostDispatchHook.
type PostDispatchFunc struct {
	name     string
	priority int
	fn       func(cmd *command.Command, ctx *execctx.Context, result *handler.Result)
}

// NewPostDispatchFunc creates a new PostDispatchFunc hook.
func NewPostDispatchFunc(name string, priority int, fn func(cmd *command.Command, ctx *execctx.Context, result *handler.Result)) *PostDispatchFunc {
	return &PostDispatchFunc{name: name, priority: priority, fn: fn}
}

// Name implements Hook.
func (f *PostDispatchFunc) Name() string { return f.name }

// Priority implements Hook.
func (f *PostDispatchFunc) Priority() int { return f.priority }

// PostDispatch implements PostDispatchHook.
func (f *PostDispatchFunc) PostDispatch(cmd *command.Command, ctx *execctx.Context, result *handler.Result) {
	if f.fn != nil {
		f.fn(cmd, ctx, result)
	}
}
