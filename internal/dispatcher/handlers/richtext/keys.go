package richtext

import (
	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/dispatcher/execctx"
	"github.com/mrdivyansh/lexical/internal/dispatcher/handler"
	"github.com/mrdivyansh/lexical/internal/engine/selection"
)

// keyEnter always consumes the key, whether or not the paragraph or line
// break command finds a handler.
func keyEnter(cmd command.Command, ctx *execctx.Context) handler.Result {
	event := cmd.KeyEvent()
	event.PreventDefault()
	if event.Shift() {
		return redispatch(ctx, command.New(command.InsertLineBreak, false))
	}
	return redispatch(ctx, command.New(command.InsertParagraph, nil))
}

func keyDelete(cmd command.Command, ctx *execctx.Context, backward bool) handler.Result {
	cmd.KeyEvent().PreventDefault()
	return redispatch(ctx, command.New(command.DeleteCharacter, backward))
}

// keyArrow moves the caret itself only where the host's native movement
// would land somewhere unusable; elsewhere the key is left to the host.
func keyArrow(cmd command.Command, ctx *execctx.Context, backward bool) handler.Result {
	s := ctx.State()
	event := cmd.KeyEvent()
	if !selection.ShouldOverrideDefaultCharacterSelection(s, backward) {
		return handler.Unhandled()
	}
	event.PreventDefault()
	return handler.FromBool(selection.MoveCharacter(s, backward, event.Shift()))
}
