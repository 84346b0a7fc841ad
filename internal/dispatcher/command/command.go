package command

import (
	"fmt"

	"github.com/mrdivyansh/lexical/internal/engine/tree"
	"github.com/mrdivyansh/lexical/internal/input/key"
)

// Type identifies a built-in command.
type Type uint8

const (
	DeleteCharacter Type = iota
	DeleteWord
	DeleteLine
	InsertText
	RemoveText
	FormatText
	FormatElement
	InsertLineBreak
	InsertParagraph
	IndentContent
	OutdentContent
	KeyTab
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyArrowLeft
	KeyArrowRight
	SelectAll

	// Custom is a command defined outside the engine, identified by name.
	Custom
)

var typeNames = [...]string{
	DeleteCharacter: "deleteCharacter",
	DeleteWord:      "deleteWord",
	DeleteLine:      "deleteLine",
	InsertText:      "insertText",
	RemoveText:      "removeText",
	FormatText:      "formatText",
	FormatElement:   "formatElement",
	InsertLineBreak: "insertLineBreak",
	InsertParagraph: "insertParagraph",
	IndentContent:   "indentContent",
	OutdentContent:  "outdentContent",
	KeyTab:          "keyTab",
	KeyEnter:        "keyEnter",
	KeyBackspace:    "keyBackspace",
	KeyDelete:       "keyDelete",
	KeyArrowLeft:    "keyArrowLeft",
	KeyArrowRight:   "keyArrowRight",
	SelectAll:       "selectAll",
	Custom:          "custom",
}

// String returns the command channel name of the type.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", t)
}

// ParseType returns the built-in type with the given name. Custom is not
// returned; unknown names report false.
func ParseType(name string) (Type, bool) {
	for t, n := range typeNames {
		if n == name && Type(t) != Custom {
			return Type(t), true
		}
	}
	return Custom, false
}

// Types returns every built-in type, excluding Custom.
func Types() []Type {
	types := make([]Type, 0, len(typeNames)-1)
	for t := range typeNames {
		if Type(t) != Custom {
			types = append(types, Type(t))
		}
	}
	return types
}

// IsKey reports whether the type carries a key event payload.
func (t Type) IsKey() bool {
	switch t {
	case KeyTab, KeyEnter, KeyBackspace, KeyDelete, KeyArrowLeft, KeyArrowRight:
		return true
	}
	return false
}

// Mutates reports whether the command may change document content.
// Selection-only commands report false; custom commands are assumed to
// mutate.
func (t Type) Mutates() bool {
	switch t {
	case KeyArrowLeft, KeyArrowRight, SelectAll:
		return false
	}
	return true
}

// Command is a single editing intent.
type Command struct {
	Type    Type
	Name    string // set for Custom commands only
	Payload any
}

// New creates a built-in command.
func New(t Type, payload any) Command {
	return Command{Type: t, Payload: payload}
}

// Named creates a command from a channel name. Names of built-in types
// produce that type; any other name produces a Custom command.
func Named(name string, payload any) Command {
	if t, ok := ParseType(name); ok {
		return Command{Type: t, Payload: payload}
	}
	return Command{Type: Custom, Name: name, Payload: payload}
}

// Channel returns the name handlers are registered under.
func (c Command) Channel() string {
	if c.Type == Custom {
		return c.Name
	}
	return c.Type.String()
}

func (c Command) String() string {
	if c.Payload == nil {
		return c.Channel()
	}
	return fmt.Sprintf("%s(%v)", c.Channel(), c.Payload)
}

// ============================================================================
// Payload accessors
// ============================================================================

// Bool returns a boolean payload. A nil payload is false.
func (c Command) Bool() bool {
	if c.Payload == nil {
		return false
	}
	v, ok := c.Payload.(bool)
	if !ok {
		panic(&PayloadError{Channel: c.Channel(), Want: "bool", Got: c.Payload})
	}
	return v
}

// Text returns a string payload.
func (c Command) Text() string {
	v, ok := c.Payload.(string)
	if !ok {
		panic(&PayloadError{Channel: c.Channel(), Want: "string", Got: c.Payload})
	}
	return v
}

// TextFormat returns a text format payload.
func (c Command) TextFormat() tree.TextFormat {
	v, ok := c.Payload.(tree.TextFormat)
	if !ok {
		panic(&PayloadError{Channel: c.Channel(), Want: "tree.TextFormat", Got: c.Payload})
	}
	return v
}

// ElementFormat returns an element format payload.
func (c Command) ElementFormat() tree.ElementFormat {
	v, ok := c.Payload.(tree.ElementFormat)
	if !ok {
		panic(&PayloadError{Channel: c.Channel(), Want: "tree.ElementFormat", Got: c.Payload})
	}
	return v
}

// KeyEvent returns the originating key event, or nil when the command was
// dispatched without one.
func (c Command) KeyEvent() *key.Event {
	if c.Payload == nil {
		return nil
	}
	v, ok := c.Payload.(*key.Event)
	if !ok {
		panic(&PayloadError{Channel: c.Channel(), Want: "*key.Event", Got: c.Payload})
	}
	return v
}
