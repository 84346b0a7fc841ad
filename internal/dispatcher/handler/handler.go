// Package handler provides the handler interface and result types for
// command dispatch.
package handler

import (
	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/dispatcher/execctx"
)

// Handler processes commands routed to it by the dispatcher.
type Handler interface {
	// Handle executes the command against the running transaction.
	// Returning an unhandled result passes the command to the next
	// handler in the chain.
	Handle(cmd command.Command, ctx *execctx.Context) Result
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(cmd command.Command, ctx *execctx.Context) Result

// Handle implements Handler.
func (f HandlerFunc) Handle(cmd command.Command, ctx *execctx.Context) Result {
	if f == nil {
		return Errorf("handler function is nil")
	}
	return f(cmd, ctx)
}

// BoolFunc adapts a function reporting "handled" as a bool, the shape used
// by script handlers.
func BoolFunc(fn func(cmd command.Command, ctx *execctx.Context) bool) Handler {
	return HandlerFunc(func(cmd command.Command, ctx *execctx.Context) Result {
		return FromBool(fn(cmd, ctx))
	})
}
