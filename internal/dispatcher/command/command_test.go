package command_test

import (
	"errors"
	"testing"

	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/engine/tree"
	"github.com/mrdivyansh/lexical/internal/input/key"
)

func TestTypeNamesRoundTrip(t *testing.T) {
	for _, typ := range command.Types() {
		got, ok := command.ParseType(typ.String())
		if !ok || got != typ {
			t.Errorf("ParseType(%q) = %v, %v; want %v", typ.String(), got, ok, typ)
		}
	}
	if _, ok := command.ParseType("custom"); ok {
		t.Error("custom should not parse as a built-in type")
	}
	if _, ok := command.ParseType("bogus"); ok {
		t.Error("unknown name should not parse")
	}
}

func TestNamed(t *testing.T) {
	c := command.Named("insertText", "x")
	if c.Type != command.InsertText || c.Channel() != "insertText" {
		t.Errorf("Named(insertText) = %+v", c)
	}

	c = command.Named("toggleTodo", 3)
	if c.Type != command.Custom || c.Channel() != "toggleTodo" {
		t.Errorf("Named(toggleTodo) = %+v", c)
	}
}

func TestPayloadAccessors(t *testing.T) {
	if !command.New(command.DeleteCharacter, true).Bool() {
		t.Error("Bool() = false, want true")
	}
	if command.New(command.DeleteCharacter, nil).Bool() {
		t.Error("nil bool payload should be false")
	}
	if got := command.New(command.InsertText, "hi").Text(); got != "hi" {
		t.Errorf("Text() = %q", got)
	}
	if got := command.New(command.FormatText, tree.FormatBold).TextFormat(); got != tree.FormatBold {
		t.Errorf("TextFormat() = %v", got)
	}
	if got := command.New(command.FormatElement, tree.AlignCenter).ElementFormat(); got != tree.AlignCenter {
		t.Errorf("ElementFormat() = %v", got)
	}
	if command.New(command.KeyTab, nil).KeyEvent() != nil {
		t.Error("nil key payload should give a nil event")
	}
	e := key.NewSpecialEvent(key.KeyTab, key.ModShift)
	if command.New(command.KeyTab, e).KeyEvent() != e {
		t.Error("KeyEvent() should return the payload event")
	}
}

func TestPayloadMismatchPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"bool", func() { command.New(command.DeleteWord, "yes").Bool() }},
		{"text", func() { command.New(command.InsertText, 42).Text() }},
		{"text nil", func() { command.New(command.InsertText, nil).Text() }},
		{"format", func() { command.New(command.FormatText, "bold").TextFormat() }},
		{"element", func() { command.New(command.FormatElement, 1).ElementFormat() }},
		{"key", func() { command.New(command.KeyEnter, key.Event{}).KeyEvent() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				var perr *command.PayloadError
				err, _ := r.(error)
				if !errors.As(err, &perr) {
					t.Fatalf("recovered %v, want *PayloadError", r)
				}
			}()
			tt.fn()
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		line    string
		typ     command.Type
		payload any
	}{
		{"insertText hello world", command.InsertText, "hello world"},
		{`insertText "\tx"`, command.InsertText, "\tx"},
		{"deleteCharacter backward", command.DeleteCharacter, true},
		{"deleteWord", command.DeleteWord, false},
		{"insertLineBreak true", command.InsertLineBreak, true},
		{"formatText bold|italic", command.FormatText, tree.FormatBold | tree.FormatItalic},
		{"formatElement center", command.FormatElement, tree.AlignCenter},
		{"insertParagraph", command.InsertParagraph, nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			c, err := command.Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if c.Type != tt.typ || c.Payload != tt.payload {
				t.Errorf("Parse() = %v %#v, want %v %#v", c.Type, c.Payload, tt.typ, tt.payload)
			}
		})
	}
}

func TestParseKeyCommands(t *testing.T) {
	c, err := command.Parse("keyTab")
	if err != nil {
		t.Fatal(err)
	}
	if e := c.KeyEvent(); e == nil || e.Key != key.KeyTab || e.Shift() {
		t.Errorf("keyTab event = %v", e)
	}

	c, err = command.Parse("keyEnter Shift+Enter")
	if err != nil {
		t.Fatal(err)
	}
	if e := c.KeyEvent(); e.Key != key.KeyEnter || !e.Shift() {
		t.Errorf("keyEnter event = %v", e)
	}
}

func TestParseCustomAndErrors(t *testing.T) {
	c, err := command.Parse("toggleTodo  item 3 ")
	if err != nil {
		t.Fatal(err)
	}
	if c.Type != command.Custom || c.Name != "toggleTodo" || c.Payload != "item 3" {
		t.Errorf("custom = %+v", c)
	}

	for _, line := range []string{"", "deleteCharacter sideways", "formatText shiny", "indentContent 2", `insertText "open`} {
		if _, err := command.Parse(line); !errors.Is(err, command.ErrInvalidArgument) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidArgument", line, err)
		}
	}
}

func TestMutates(t *testing.T) {
	if command.SelectAll.Mutates() || command.KeyArrowLeft.Mutates() {
		t.Error("selection commands should not mutate")
	}
	if !command.InsertText.Mutates() || !command.Custom.Mutates() {
		t.Error("edits and custom commands should mutate")
	}
}
