package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mrdivyansh/lexical/internal/engine/tree"
	"github.com/mrdivyansh/lexical/internal/input/key"
)

// Parse reads a command written as a channel name followed by an optional
// argument, the form used by batch scripts:
//
//	insertText "a\tb"
//	deleteCharacter backward
//	formatText bold
//	keyEnter Shift+Enter
//
// Unknown names produce Custom commands whose payload is the raw argument
// string, or nil without one.
func Parse(line string) (Command, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	if name == "" {
		return Command{}, fmt.Errorf("%w: empty command", ErrInvalidArgument)
	}
	arg = strings.TrimSpace(arg)

	t, ok := ParseType(name)
	if !ok {
		var payload any
		if arg != "" {
			payload = arg
		}
		return Command{Type: Custom, Name: name, Payload: payload}, nil
	}
	payload, err := ParsePayload(t, arg)
	if err != nil {
		return Command{}, fmt.Errorf("%s: %w", name, err)
	}
	return New(t, payload), nil
}

// ParsePayload converts a textual argument to the payload type t expects.
// Key commands without an argument get a plain event for their key.
func ParsePayload(t Type, arg string) (any, error) {
	switch t {
	case DeleteCharacter, DeleteWord, DeleteLine, InsertLineBreak:
		return parseBool(arg)

	case InsertText:
		if strings.HasPrefix(arg, `"`) {
			s, err := strconv.Unquote(arg)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, err)
			}
			return s, nil
		}
		return arg, nil

	case FormatText:
		var f tree.TextFormat
		for _, name := range strings.Split(arg, "|") {
			flag, ok := tree.ParseTextFormat(name)
			if !ok {
				return nil, fmt.Errorf("%w: text format %q", ErrInvalidArgument, name)
			}
			f |= flag
		}
		return f, nil

	case FormatElement:
		f, ok := tree.ParseElementFormat(arg)
		if !ok {
			return nil, fmt.Errorf("%w: element format %q", ErrInvalidArgument, arg)
		}
		return f, nil

	case KeyTab, KeyEnter, KeyBackspace, KeyDelete, KeyArrowLeft, KeyArrowRight:
		if arg == "" {
			return key.NewSpecialEvent(keyFor(t), key.ModNone), nil
		}
		e, err := key.Parse(arg)
		if err != nil {
			return nil, err
		}
		return e, nil

	case RemoveText, InsertParagraph, IndentContent, OutdentContent, SelectAll:
		if arg != "" {
			return nil, fmt.Errorf("%w: %s takes no argument", ErrInvalidArgument, t)
		}
		return nil, nil

	case Custom:
		if arg == "" {
			return nil, nil
		}
		return arg, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, t)
}

func parseBool(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "", "false", "forward", "after":
		return false, nil
	case "true", "backward", "before":
		return true, nil
	}
	return false, fmt.Errorf("%w: boolean %q", ErrInvalidArgument, arg)
}

func keyFor(t Type) key.Key {
	switch t {
	case KeyTab:
		return key.KeyTab
	case KeyEnter:
		return key.KeyEnter
	case KeyBackspace:
		return key.KeyBackspace
	case KeyDelete:
		return key.KeyDelete
	case KeyArrowLeft:
		return key.KeyLeft
	case KeyArrowRight:
		return key.KeyRight
	}
	return key.KeyNone
}
