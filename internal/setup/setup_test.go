package setup_test

import (
	"testing"

	"github.com/mrdivyansh/lexical/internal/dispatcher"
	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/engine"
	"github.com/mrdivyansh/lexical/internal/engine/tree"
	"github.com/mrdivyansh/lexical/internal/setup"
)

func build(t *testing.T, ed *engine.Editor, fn func(s *tree.State) error) {
	t.Helper()
	if err := ed.Update(func(tx *engine.Tx) error { return fn(tx.State()) }); err != nil {
		t.Fatal(err)
	}
}

func TestNodes(t *testing.T) {
	ed := setup.NewEditor()
	for _, k := range setup.Nodes() {
		if !ed.Registry().Has(k) {
			t.Errorf("kind %s not registered", k)
		}
	}
}

func TestInitEditorSeedsEmptyDocument(t *testing.T) {
	tests := []struct {
		name    string
		focused bool
		wantSel bool
	}{
		{"unfocused", false, false},
		{"focused", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := setup.NewEditor(engine.WithFocus(func() bool { return tt.focused }))
			if err := setup.InitEditor(ed); err != nil {
				t.Fatal(err)
			}
			st := ed.State()
			root := st.Root()
			if root.ChildCount() != 1 || root.FirstChild().Kind() != tree.KindParagraph {
				t.Fatalf("root children = %d, want one paragraph", root.ChildCount())
			}
			if got := st.Selection() != nil; got != tt.wantSel {
				t.Errorf("selection placed = %v, want %v", got, tt.wantSel)
			}
			if tt.wantSel && st.Selection().Anchor != tree.ElementPoint(root.FirstChild().Key(), 0) {
				t.Errorf("selection = %+v", st.Selection())
			}
		})
	}
}

func TestInitEditorKeepsExistingSelection(t *testing.T) {
	ed := setup.NewEditor()
	build(t, ed, func(s *tree.State) error {
		s.SetSelection(tree.Collapsed(tree.ElementPoint(tree.RootKey, 0)))
		return nil
	})

	if err := setup.InitEditor(ed); err != nil {
		t.Fatal(err)
	}
	st := ed.State()
	if st.Selection() == nil {
		t.Fatal("selection dropped")
	}
	if st.Selection().Anchor.Key != st.Root().FirstChild().Key() {
		t.Errorf("selection should move into the seed paragraph, got %+v", st.Selection())
	}
}

func TestInitEditorLeavesContentAlone(t *testing.T) {
	ed := setup.NewEditor()
	build(t, ed, func(s *tree.State) error {
		h, err := s.NewElement(tree.KindHeading)
		if err != nil {
			return err
		}
		if err := s.Append(s.Root(), h); err != nil {
			return err
		}
		return s.Append(h, s.NewText("title", 0))
	})
	before := ed.State()

	if err := setup.InitEditor(ed); err != nil {
		t.Fatal(err)
	}
	if ed.State() != before {
		t.Error("InitEditor changed a document with content")
	}
}

func TestClearEditorLeavesOneParagraph(t *testing.T) {
	shapes := map[string]func(s *tree.State) error{
		"empty": func(s *tree.State) error { return nil },
		"paragraphs": func(s *tree.State) error {
			for _, text := range []string{"a", "b", "c"} {
				p := s.NewParagraph()
				if err := s.Append(s.Root(), p); err != nil {
					return err
				}
				if err := s.Append(p, s.NewText(text, 0)); err != nil {
					return err
				}
			}
			return nil
		},
		"nested list with selection": func(s *tree.State) error {
			list, err := s.NewElement(tree.KindList)
			if err != nil {
				return err
			}
			item, err := s.NewElement(tree.KindListItem)
			if err != nil {
				return err
			}
			text := s.NewText("item", 0)
			if err := s.Append(s.Root(), list); err != nil {
				return err
			}
			if err := s.Append(list, item); err != nil {
				return err
			}
			if err := s.Append(item, text); err != nil {
				return err
			}
			s.SetSelection(tree.Collapsed(tree.TextPoint(text.Key(), 2)))
			return nil
		},
	}

	for name, shape := range shapes {
		t.Run(name, func(t *testing.T) {
			ed := setup.NewEditor()
			build(t, ed, shape)

			completed := 0
			if err := setup.ClearEditor(ed, func() { completed++ }); err != nil {
				t.Fatal(err)
			}
			st := ed.State()
			root := st.Root()
			if root.ChildCount() != 1 {
				t.Fatalf("root children = %d, want 1", root.ChildCount())
			}
			p := root.FirstChild()
			if p.Kind() != tree.KindParagraph || p.ChildCount() != 0 {
				t.Errorf("child = %s with %d children, want an empty paragraph", p.Kind(), p.ChildCount())
			}
			if completed != 1 {
				t.Errorf("onComplete ran %d times", completed)
			}
			if sel := st.Selection(); sel != nil && !st.SelectionValid() {
				t.Errorf("dangling selection %+v", sel)
			}
		})
	}
}

func TestClearEditorWithoutCallback(t *testing.T) {
	ed := setup.NewEditor()
	if err := setup.ClearEditor(ed, nil); err != nil {
		t.Fatal(err)
	}
	if ed.State().Root().ChildCount() != 1 {
		t.Error("expected a seeded paragraph")
	}
}

func TestRegister(t *testing.T) {
	ed := engine.New()
	d := dispatcher.NewWithDefaults(ed)
	cleanup := setup.Register(ed, d)

	if !ed.Registry().Has(tree.KindCode) {
		t.Error("Register did not add the rich-text kinds")
	}
	if !d.Registry().Has(command.InsertText.String()) {
		t.Fatal("insertText has no handler")
	}

	ed.SetFocused(true)
	if err := setup.InitEditor(ed); err != nil {
		t.Fatal(err)
	}
	handled, err := d.Dispatch(command.New(command.InsertText, "hi"))
	if err != nil || !handled {
		t.Fatalf("Dispatch() = %v, %v", handled, err)
	}
	if got := ed.State().TextContent(); got != "hi" {
		t.Errorf("text = %q", got)
	}

	cleanup()
	if d.Registry().Count() != 0 {
		t.Errorf("%d handlers left after cleanup", d.Registry().Count())
	}
	handled, _ = d.Dispatch(command.New(command.InsertText, "!"))
	if handled {
		t.Error("dispatch handled after cleanup")
	}
}
