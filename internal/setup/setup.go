// Package setup wires the rich-text behavior into an editor and owns the
// document lifecycle operations.
//
// Register installs the rich-text node kinds and the built-in command
// handler at editor priority. InitEditor seeds an empty document with a
// paragraph and ClearEditor resets any document to that seeded shape. Both
// run as ordinary editor updates.
package setup

import (
	"github.com/mrdivyansh/lexical/internal/dispatcher"
	"github.com/mrdivyansh/lexical/internal/dispatcher/handlers/richtext"
	"github.com/mrdivyansh/lexical/internal/engine"
	"github.com/mrdivyansh/lexical/internal/engine/selection"
	"github.com/mrdivyansh/lexical/internal/engine/tree"
)

// Update tags used by the lifecycle operations.
const (
	TagInit  = "init"
	TagClear = "clear"
)

// Nodes returns the node kinds a rich-text document is built from.
func Nodes() []tree.Kind {
	return []tree.Kind{
		tree.KindHeading,
		tree.KindList,
		tree.KindListItem,
		tree.KindQuote,
		tree.KindCode,
		tree.KindParagraph,
	}
}

// NewEditor creates an editor whose registry holds Nodes.
func NewEditor(opts ...engine.Option) *engine.Editor {
	opts = append([]engine.Option{engine.WithRegistry(tree.NewRegistry(Nodes()...))}, opts...)
	return engine.New(opts...)
}

// Register makes the rich-text kinds legal in ed's documents and installs
// the built-in handler on d for every command it implements. The returned
// function removes the handler registrations; the kinds stay registered
// because committed documents may already contain them.
func Register(ed *engine.Editor, d *dispatcher.Dispatcher) func() {
	ed.Registry().Register(Nodes()...)

	h := richtext.New()
	types := richtext.Commands()
	unregister := make([]func(), 0, len(types))
	for _, t := range types {
		unregister = append(unregister, d.Register(t, dispatcher.PriorityEditor, h))
	}
	ed.Logger().Debug("rich text registered", "commands", len(types))

	return func() {
		for _, fn := range unregister {
			fn()
		}
	}
}

// InitEditor seeds an empty document with one paragraph. A collapsed
// selection is placed in it when the document already had a selection or
// the host surface has focus. A document with content is left alone.
func InitEditor(ed *engine.Editor) error {
	focused := ed.IsFocused()
	return ed.Update(func(tx *engine.Tx) error {
		return seed(tx.State(), focused)
	}, engine.WithTag(TagInit))
}

// ClearEditor removes every block and seeds the document again. onComplete,
// if not nil, runs after the update has committed.
func ClearEditor(ed *engine.Editor, onComplete func()) error {
	focused := ed.IsFocused()
	opts := []engine.UpdateOption{engine.WithTag(TagClear)}
	if onComplete != nil {
		opts = append(opts, engine.WithOnUpdate(onComplete))
	}
	return ed.Update(func(tx *engine.Tx) error {
		s := tx.State()
		s.Clear(s.Root())
		return seed(s, focused)
	}, opts...)
}

func seed(s *tree.State, focused bool) error {
	root := s.Root()
	if root.ChildCount() > 0 {
		return nil
	}
	hadSelection := s.Selection() != nil
	p := s.NewParagraph()
	if err := s.Append(root, p); err != nil {
		return err
	}
	if hadSelection || focused {
		selection.SelectStart(s, p)
	}
	return nil
}
