package keymap

import (
	"fmt"

	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/input/key"
)

// Binding represents a single key-to-command mapping.
type Binding struct {
	// Keys is the key chord, e.g. "Ctrl+B".
	Keys string `json:"keys" yaml:"keys" toml:"keys"`

	// Command is a command line, e.g. "deleteWord backward".
	Command string `json:"command" yaml:"command" toml:"command"`

	// Description documents the binding.
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`

	// Priority breaks ties between bindings for the same chord within
	// one keymap. Higher wins.
	Priority int `json:"priority,omitempty" yaml:"priority,omitempty" toml:"priority,omitempty"`
}

// NewBinding creates a binding.
func NewBinding(keys, cmd string) Binding {
	return Binding{Keys: keys, Command: cmd}
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithPriority sets the priority for this binding.
func (b Binding) WithPriority(priority int) Binding {
	b.Priority = priority
	return b
}

// Parse validates the binding and resolves its chord and command.
func (b Binding) Parse() (*ParsedBinding, error) {
	ev, err := key.Parse(b.Keys)
	if err != nil {
		return nil, fmt.Errorf("binding %q: %w", b.Keys, err)
	}
	cmd, err := command.Parse(b.Command)
	if err != nil {
		return nil, fmt.Errorf("binding %q: %w", b.Keys, err)
	}
	return &ParsedBinding{Binding: b, Chord: ev.String(), cmd: cmd}, nil
}

// ParsedBinding is a binding with a canonical chord and a parsed command.
type ParsedBinding struct {
	Binding

	// Chord is the canonical form of Keys.
	Chord string

	cmd command.Command
}

// Resolve returns the command to dispatch for ev. Key commands carry ev as
// their payload.
func (pb *ParsedBinding) Resolve(ev *key.Event) command.Command {
	cmd := pb.cmd
	if cmd.Type.IsKey() {
		cmd.Payload = ev
	}
	return cmd
}

// Command returns the bound command as parsed.
func (pb *ParsedBinding) Command() command.Command {
	return pb.cmd
}
