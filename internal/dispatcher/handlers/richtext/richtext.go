package richtext

import (
	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/dispatcher/execctx"
	"github.com/mrdivyansh/lexical/internal/dispatcher/handler"
	"github.com/mrdivyansh/lexical/internal/engine/selection"
)

// Handler implements the built-in rich-text commands.
type Handler struct{}

// New creates the rich-text handler.
func New() *Handler {
	return &Handler{}
}

// Commands lists the command types the handler implements.
func Commands() []command.Type {
	return []command.Type{
		command.DeleteCharacter,
		command.DeleteWord,
		command.DeleteLine,
		command.InsertText,
		command.RemoveText,
		command.FormatText,
		command.FormatElement,
		command.InsertLineBreak,
		command.InsertParagraph,
		command.IndentContent,
		command.OutdentContent,
		command.KeyTab,
		command.KeyEnter,
		command.KeyBackspace,
		command.KeyDelete,
		command.KeyArrowLeft,
		command.KeyArrowRight,
		command.SelectAll,
	}
}

// Handle implements handler.Handler.
func (h *Handler) Handle(cmd command.Command, ctx *execctx.Context) handler.Result {
	s := ctx.State()
	if s == nil || !s.SelectionValid() {
		return handler.Unhandled()
	}

	switch cmd.Type {
	case command.DeleteCharacter:
		return handler.FromBool(selection.DeleteCharacter(s, cmd.Bool()))
	case command.DeleteWord:
		return handler.FromBool(selection.DeleteWord(s, cmd.Bool()))
	case command.DeleteLine:
		return handler.FromBool(selection.DeleteLine(s, cmd.Bool()))
	case command.InsertText:
		return handler.FromBool(selection.InsertText(s, cmd.Text()))
	case command.RemoveText:
		return handler.FromBool(selection.RemoveText(s))
	case command.FormatText:
		return handler.FromBool(selection.FormatText(s, cmd.TextFormat()))
	case command.FormatElement:
		return handler.FromBool(selection.FormatElement(s, cmd.ElementFormat()))
	case command.InsertLineBreak:
		return handler.FromBool(selection.InsertLineBreak(s, cmd.Bool()))
	case command.InsertParagraph:
		return handler.FromBool(selection.InsertParagraph(s))
	case command.SelectAll:
		return handler.FromBool(selection.SelectAll(s))

	case command.IndentContent:
		return indent(ctx)
	case command.OutdentContent:
		return outdent(ctx)
	case command.KeyTab:
		return keyTab(cmd, ctx)

	case command.KeyEnter:
		return keyEnter(cmd, ctx)
	case command.KeyBackspace:
		return keyDelete(cmd, ctx, true)
	case command.KeyDelete:
		return keyDelete(cmd, ctx, false)
	case command.KeyArrowLeft:
		return keyArrow(cmd, ctx, true)
	case command.KeyArrowRight:
		return keyArrow(cmd, ctx, false)
	}
	return handler.Unhandled()
}

// redispatch runs next through the dispatcher and converts the outcome to a
// result.
func redispatch(ctx *execctx.Context, next command.Command) handler.Result {
	handled, err := ctx.Dispatch(next)
	if err != nil {
		return handler.Error(err)
	}
	return handler.FromBool(handled)
}
