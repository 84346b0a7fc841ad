package keymap

import (
	"errors"
	"fmt"
)

// Keymap is a named set of bindings.
type Keymap struct {
	// Name identifies the keymap in a Registry.
	Name string `json:"name" yaml:"name" toml:"name"`

	// Priority orders keymaps. Higher wins.
	Priority int `json:"priority,omitempty" yaml:"priority,omitempty" toml:"priority,omitempty"`

	// Source records where the keymap came from: "default", "user", a
	// file path or a plugin name.
	Source string `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`

	Bindings []Binding `json:"bindings" yaml:"bindings" toml:"bindings"`
}

// NewKeymap creates an empty keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name}
}

// WithPriority sets the priority for this keymap.
func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding.
func (k *Keymap) Add(keys, cmd string) *Keymap {
	return k.AddBinding(NewBinding(keys, cmd))
}

// AddBinding adds a binding.
func (k *Keymap) AddBinding(b Binding) *Keymap {
	k.Bindings = append(k.Bindings, b)
	return k
}

// ErrNoName is returned when validating a keymap without a name.
var ErrNoName = errors.New("keymap: name is required")

// Validate checks that every binding parses.
func (k *Keymap) Validate() error {
	_, err := k.Parse()
	return err
}

// Parse resolves every binding. For bindings sharing a chord the one with
// the highest priority wins, then the one added last.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	if k.Name == "" {
		return nil, ErrNoName
	}
	pk := &ParsedKeymap{Keymap: k, byChord: make(map[string]*ParsedBinding, len(k.Bindings))}
	for i, b := range k.Bindings {
		pb, err := b.Parse()
		if err != nil {
			return nil, fmt.Errorf("keymap %s: binding %d: %w", k.Name, i, err)
		}
		if old, ok := pk.byChord[pb.Chord]; ok && old.Priority > pb.Priority {
			continue
		}
		pk.byChord[pb.Chord] = pb
	}
	return pk, nil
}

// Clone returns a deep copy.
func (k *Keymap) Clone() *Keymap {
	c := *k
	c.Bindings = append([]Binding(nil), k.Bindings...)
	return &c
}

// ParsedKeymap is a keymap indexed by chord.
type ParsedKeymap struct {
	*Keymap
	byChord map[string]*ParsedBinding
}

// Lookup returns the binding for a canonical chord.
func (pk *ParsedKeymap) Lookup(chord string) *ParsedBinding {
	return pk.byChord[chord]
}

// Len returns the number of distinct chords.
func (pk *ParsedKeymap) Len() int {
	return len(pk.byChord)
}
