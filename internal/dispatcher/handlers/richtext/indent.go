package richtext

import (
	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/dispatcher/execctx"
	"github.com/mrdivyansh/lexical/internal/dispatcher/handler"
	"github.com/mrdivyansh/lexical/internal/engine/selection"
	"github.com/mrdivyansh/lexical/internal/engine/tree"
)

func indent(ctx *execctx.Context) handler.Result {
	block := selection.AnchorElement(ctx.State())
	if block == nil {
		return handler.Error(ErrNoBlock)
	}
	if block.AcceptsTab() {
		if r := redispatch(ctx, command.New(command.InsertText, "\t")); r.IsError() {
			return r
		}
		return handler.Handled()
	}
	if n := block.Indent(); n < tree.MaxIndent {
		block.SetIndent(n + 1)
	}
	return handler.Handled()
}

func outdent(ctx *execctx.Context) handler.Result {
	s := ctx.State()
	block := selection.AnchorElement(s)
	if block == nil {
		return handler.Error(ErrNoBlock)
	}
	if block.AcceptsTab() {
		if r, ok := selection.RuneBeforeAnchor(s); ok && r == '\t' {
			if res := redispatch(ctx, command.New(command.DeleteCharacter, true)); res.IsError() {
				return res
			}
		}
		return handler.Handled()
	}
	if n := block.Indent(); n > 0 {
		block.SetIndent(n - 1)
	}
	return handler.Handled()
}

// keyTab always consumes the key, whether or not the indent command it
// produces finds a handler.
func keyTab(cmd command.Command, ctx *execctx.Context) handler.Result {
	event := cmd.KeyEvent()
	event.PreventDefault()
	if event.Shift() {
		return redispatch(ctx, command.New(command.OutdentContent, nil))
	}
	return redispatch(ctx, command.New(command.IndentContent, nil))
}
