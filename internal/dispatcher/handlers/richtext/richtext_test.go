package richtext_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/mrdivyansh/lexical/internal/dispatcher"
	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/dispatcher/execctx"
	"github.com/mrdivyansh/lexical/internal/dispatcher/handler"
	"github.com/mrdivyansh/lexical/internal/dispatcher/handlers/richtext"
	"github.com/mrdivyansh/lexical/internal/engine"
	"github.com/mrdivyansh/lexical/internal/engine/tree"
	"github.com/mrdivyansh/lexical/internal/input/key"
)

// ============================================================================
// Fixture
// ============================================================================

type fixture struct {
	t  *testing.T
	ed *engine.Editor
	d  *dispatcher.Dispatcher
}

// newFixture builds a document with build and installs the handler for
// every command it implements. build returns the node and offset of a
// collapsed selection, or nil for no selection.
func newFixture(t *testing.T, build func(s *tree.State) (*tree.Node, int)) *fixture {
	t.Helper()
	reg := tree.NewRegistry(tree.KindHeading, tree.KindList, tree.KindListItem, tree.KindQuote, tree.KindCode)
	ed := engine.New(engine.WithRegistry(reg))
	err := ed.Update(func(tx *engine.Tx) error {
		s := tx.State()
		n, off := build(s)
		if n == nil {
			return nil
		}
		p := tree.TextPoint(n.Key(), off)
		if !n.IsText() {
			p = tree.ElementPoint(n.Key(), off)
		}
		s.SetSelection(tree.Collapsed(p))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	d := dispatcher.NewWithDefaults(ed)
	h := richtext.New()
	for _, typ := range richtext.Commands() {
		d.Register(typ, dispatcher.PriorityEditor, h)
	}
	return &fixture{t: t, ed: ed, d: d}
}

// add appends a block of kind to the root with one text node per part; an
// empty part adds a line break. It returns the block and its last child.
func add(s *tree.State, kind tree.Kind, parts ...string) (*tree.Node, *tree.Node) {
	b, err := s.NewElement(kind)
	if err != nil {
		panic(err)
	}
	if err := s.Append(s.Root(), b); err != nil {
		panic(err)
	}
	var last *tree.Node
	for _, p := range parts {
		last = s.NewLineBreak()
		if p != "" {
			last = s.NewText(p, 0)
		}
		if err := s.Append(b, last); err != nil {
			panic(err)
		}
	}
	return b, last
}

func (f *fixture) dispatch(cmd command.Command) bool {
	f.t.Helper()
	handled, err := f.d.Dispatch(cmd)
	if err != nil {
		f.t.Fatalf("Dispatch(%s) error = %v", cmd.Channel(), err)
	}
	return handled
}

func (f *fixture) blocks() []string {
	var out []string
	for _, b := range f.ed.State().Blocks() {
		out = append(out, tree.BlockText(b))
	}
	return out
}

func (f *fixture) firstBlock() *tree.Node {
	return f.ed.State().Blocks()[0]
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func samplePayload(t command.Type) any {
	switch t {
	case command.DeleteCharacter, command.DeleteWord, command.DeleteLine, command.InsertLineBreak:
		return true
	case command.InsertText:
		return "x"
	case command.FormatText:
		return tree.FormatBold
	case command.FormatElement:
		return tree.AlignCenter
	}
	if t.IsKey() {
		return key.NewSpecialEvent(key.KeyTab, key.ModNone)
	}
	return nil
}

// ============================================================================
// Selection requirements and unknown commands
// ============================================================================

func TestNullSelectionIsUnhandled(t *testing.T) {
	for _, typ := range richtext.Commands() {
		t.Run(typ.String(), func(t *testing.T) {
			f := newFixture(t, func(s *tree.State) (*tree.Node, int) {
				add(s, tree.KindCode, "\tcode")
				add(s, tree.KindParagraph, "text")
				return nil, 0
			})
			before := f.ed.State()

			if f.dispatch(command.New(typ, samplePayload(typ))) {
				t.Error("Dispatch() = true without a selection")
			}
			if f.ed.State() != before {
				t.Error("dispatch without a selection committed a new state")
			}
		})
	}
}

func TestUnknownCommandIsUnhandled(t *testing.T) {
	f := newFixture(t, func(s *tree.State) (*tree.Node, int) {
		_, text := add(s, tree.KindParagraph, "text")
		return text, 2
	})
	before := f.ed.State()

	if f.dispatch(command.Named("bogus", "payload")) {
		t.Error("unknown command reported handled")
	}
	if f.ed.State() != before {
		t.Error("unknown command mutated the document")
	}

	// Even when routed to the handler directly.
	f.d.RegisterChannel("bogus", dispatcher.PriorityEditor, richtext.New())
	if f.dispatch(command.Named("bogus", nil)) {
		t.Error("handler claimed a custom command")
	}
	if f.ed.State() != before {
		t.Error("custom command mutated the document")
	}
}

// ============================================================================
// Indentation
// ============================================================================

func paragraphWithIndent(indent int) func(s *tree.State) (*tree.Node, int) {
	return func(s *tree.State) (*tree.Node, int) {
		b, text := add(s, tree.KindParagraph, "text")
		b.SetIndent(indent)
		return text, 1
	}
}

func TestIndentAtCeiling(t *testing.T) {
	f := newFixture(t, paragraphWithIndent(tree.MaxIndent))

	if !f.dispatch(command.New(command.IndentContent, nil)) {
		t.Error("indentContent at the ceiling should still be handled")
	}
	if got := f.firstBlock().Indent(); got != tree.MaxIndent {
		t.Errorf("indent = %d, want %d", got, tree.MaxIndent)
	}
}

func TestOutdentAtFloor(t *testing.T) {
	f := newFixture(t, paragraphWithIndent(0))

	if !f.dispatch(command.New(command.OutdentContent, nil)) {
		t.Error("outdentContent at zero should still be handled")
	}
	if got := f.firstBlock().Indent(); got != 0 {
		t.Errorf("indent = %d, want 0", got)
	}
}

func TestIndentThenOutdentRestores(t *testing.T) {
	for start := 0; start <= tree.MaxIndent; start++ {
		f := newFixture(t, paragraphWithIndent(start))
		f.dispatch(command.New(command.IndentContent, nil))
		indented := f.firstBlock().Indent()
		f.dispatch(command.New(command.OutdentContent, nil))
		got := f.firstBlock().Indent()

		switch {
		case start == tree.MaxIndent:
			if indented != tree.MaxIndent {
				t.Errorf("start %d: indent moved past the ceiling to %d", start, indented)
			}
		case got != start:
			t.Errorf("start %d: indent then outdent gave %d", start, got)
		}
	}
}

func TestIndentStaysInRange(t *testing.T) {
	f := newFixture(t, func(s *tree.State) (*tree.Node, int) {
		list, err := s.NewElement(tree.KindList)
		if err != nil {
			panic(err)
		}
		if err := s.Append(s.Root(), list); err != nil {
			panic(err)
		}
		item, err := s.NewElement(tree.KindListItem)
		if err != nil {
			panic(err)
		}
		if err := s.Append(list, item); err != nil {
			panic(err)
		}
		text := s.NewText("item", 0)
		if err := s.Append(item, text); err != nil {
			panic(err)
		}
		return text, 0
	})

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		typ := command.IndentContent
		if rng.Intn(2) == 0 {
			typ = command.OutdentContent
		}
		if !f.dispatch(command.New(typ, nil)) {
			t.Fatalf("step %d: %s not handled", i, typ)
		}
		f.ed.State().Walk(func(n *tree.Node, _ int) bool {
			if n.IsElement() && (n.Indent() < 0 || n.Indent() > tree.MaxIndent) {
				t.Fatalf("step %d: %s indent %d out of range", i, n.Kind(), n.Indent())
			}
			return true
		})
	}
}

func TestKeyTabIndents(t *testing.T) {
	f := newFixture(t, paragraphWithIndent(2))

	tab := key.NewSpecialEvent(key.KeyTab, key.ModNone)
	if !f.dispatch(command.New(command.KeyTab, tab)) {
		t.Fatal("keyTab not handled")
	}
	if got := f.firstBlock().Indent(); got != 3 {
		t.Errorf("indent after Tab = %d, want 3", got)
	}
	if !tab.DefaultPrevented() {
		t.Error("handled Tab should be consumed")
	}

	shiftTab := key.NewSpecialEvent(key.KeyTab, key.ModShift)
	f.dispatch(command.New(command.KeyTab, shiftTab))
	if got := f.firstBlock().Indent(); got != 2 {
		t.Errorf("indent after Shift+Tab = %d, want 2", got)
	}

	// A toolbar can send keyTab without an event.
	f.dispatch(command.New(command.KeyTab, nil))
	if got := f.firstBlock().Indent(); got != 3 {
		t.Errorf("indent after eventless keyTab = %d, want 3", got)
	}
}

func TestKeyTabInCodeInsertsTab(t *testing.T) {
	f := newFixture(t, func(s *tree.State) (*tree.Node, int) {
		_, text := add(s, tree.KindCode, "x := 1")
		return text, 0
	})

	if !f.dispatch(command.New(command.KeyTab, key.NewSpecialEvent(key.KeyTab, key.ModNone))) {
		t.Fatal("keyTab not handled")
	}
	code := f.firstBlock()
	if got := tree.BlockText(code); got != "\tx := 1" {
		t.Errorf("code = %q, want %q", got, "\tx := 1")
	}
	if code.Indent() != 0 {
		t.Errorf("code indent = %d, want 0", code.Indent())
	}
}

func TestOutdentInCode(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
		want   string
	}{
		{"tab before caret", "\tx", 1, "x"},
		{"no tab before caret", "\tx", 2, "\tx"},
		{"caret at start", "\tx", 0, "\tx"},
		// The scalar before the caret is the combining mark, not the tab.
		{"combining mark", "\t\u0301x", 3, "\t\u0301x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(s *tree.State) (*tree.Node, int) {
				_, text := add(s, tree.KindCode, tt.text)
				return text, tt.offset
			})
			shiftTab := key.NewSpecialEvent(key.KeyTab, key.ModShift)
			if !f.dispatch(command.New(command.KeyTab, shiftTab)) {
				t.Fatal("Shift+Tab not handled")
			}
			if got := tree.BlockText(f.firstBlock()); got != tt.want {
				t.Errorf("code = %q, want %q", got, tt.want)
			}
			if f.firstBlock().Indent() != 0 {
				t.Error("code indent changed")
			}
		})
	}
}

func TestIndentOverrideByHigherPriority(t *testing.T) {
	f := newFixture(t, paragraphWithIndent(0))
	var seen []command.Type
	f.d.Register(command.IndentContent, dispatcher.PriorityHigh, handler.HandlerFunc(func(cmd command.Command, ctx *execctx.Context) handler.Result {
		seen = append(seen, cmd.Type)
		return handler.Handled()
	}))

	if !f.dispatch(command.New(command.KeyTab, nil)) {
		t.Fatal("keyTab not handled")
	}
	if len(seen) != 1 {
		t.Errorf("override saw %v", seen)
	}
	if f.firstBlock().Indent() != 0 {
		t.Error("built-in indent ran despite the override")
	}
}

// ============================================================================
// Enter, Backspace, Delete
// ============================================================================

func TestInsertParagraphAtEnd(t *testing.T) {
	f := newFixture(t, func(s *tree.State) (*tree.Node, int) {
		_, text := add(s, tree.KindParagraph, "hello")
		return text, 5
	})

	if !f.dispatch(command.New(command.InsertParagraph, nil)) {
		t.Fatal("insertParagraph not handled")
	}

	st := f.ed.State()
	root := st.Root()
	if root.ChildCount() != 2 {
		t.Fatalf("root children = %d, want 2", root.ChildCount())
	}
	second := root.ChildAt(1)
	if root.ChildAt(0).Kind() != tree.KindParagraph || second.Kind() != tree.KindParagraph {
		t.Error("both children should be paragraphs")
	}
	if !equal(f.blocks(), []string{"hello", ""}) {
		t.Errorf("blocks = %q", f.blocks())
	}
	sel := st.Selection()
	if sel == nil || !sel.IsCollapsed() || sel.Anchor != tree.ElementPoint(second.Key(), 0) {
		t.Errorf("selection = %+v, want start of the new paragraph", sel)
	}
}

func TestKeyEnter(t *testing.T) {
	build := func(s *tree.State) (*tree.Node, int) {
		_, text := add(s, tree.KindParagraph, "ab")
		return text, 1
	}

	f := newFixture(t, build)
	enter := key.NewSpecialEvent(key.KeyEnter, key.ModNone)
	if !f.dispatch(command.New(command.KeyEnter, enter)) {
		t.Fatal("Enter not handled")
	}
	if !equal(f.blocks(), []string{"a", "b"}) {
		t.Errorf("blocks after Enter = %q", f.blocks())
	}
	if !enter.DefaultPrevented() {
		t.Error("Enter should be consumed")
	}

	f = newFixture(t, build)
	shiftEnter := key.NewSpecialEvent(key.KeyEnter, key.ModShift)
	f.dispatch(command.New(command.KeyEnter, shiftEnter))
	if !equal(f.blocks(), []string{"a\nb"}) {
		t.Errorf("blocks after Shift+Enter = %q", f.blocks())
	}
}

func TestKeyEnterConsumedWithoutParagraphHandler(t *testing.T) {
	reg := tree.NewRegistry()
	ed := engine.New(engine.WithRegistry(reg))
	err := ed.Update(func(tx *engine.Tx) error {
		s := tx.State()
		p := s.NewParagraph()
		if err := s.Append(s.Root(), p); err != nil {
			return err
		}
		s.SetSelection(tree.Collapsed(tree.ElementPoint(p.Key(), 0)))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	d := dispatcher.NewWithDefaults(ed)
	d.Register(command.KeyEnter, dispatcher.PriorityEditor, richtext.New())

	enter := key.NewSpecialEvent(key.KeyEnter, key.ModNone)
	handled, err := d.Dispatch(command.New(command.KeyEnter, enter))
	if err != nil {
		t.Fatal(err)
	}
	if handled {
		t.Error("Enter reported handled although insertParagraph has no handler")
	}
	if !enter.DefaultPrevented() {
		t.Error("Enter should be consumed regardless")
	}
}

func TestKeyTabConsumedWithoutIndentHandler(t *testing.T) {
	ed := engine.New()
	err := ed.Update(func(tx *engine.Tx) error {
		s := tx.State()
		p := s.NewParagraph()
		if err := s.Append(s.Root(), p); err != nil {
			return err
		}
		s.SetSelection(tree.Collapsed(tree.ElementPoint(p.Key(), 0)))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	d := dispatcher.NewWithDefaults(ed)
	d.Register(command.KeyTab, dispatcher.PriorityEditor, richtext.New())

	for _, mods := range []key.Modifier{key.ModNone, key.ModShift} {
		tab := key.NewSpecialEvent(key.KeyTab, mods)
		handled, err := d.Dispatch(command.New(command.KeyTab, tab))
		if err != nil {
			t.Fatal(err)
		}
		if handled {
			t.Errorf("%s reported handled although no indent handler exists", tab)
		}
		if !tab.DefaultPrevented() {
			t.Errorf("%s should be consumed regardless", tab)
		}
	}
}

func TestSelectionInsideRuneIsDropped(t *testing.T) {
	f := newFixture(t, func(s *tree.State) (*tree.Node, int) {
		_, text := add(s, tree.KindParagraph, "é")
		return text, 1
	})
	if f.ed.State().Selection() != nil {
		t.Fatal("selection inside a UTF-8 sequence survived the update")
	}
	if f.dispatch(command.New(command.InsertText, "x")) {
		t.Error("insertText handled without a usable selection")
	}
	if got := f.blocks(); !equal(got, []string{"é"}) {
		t.Errorf("blocks = %q, want [é]", got)
	}
}

func TestKeyBackspaceAtDocumentStart(t *testing.T) {
	f := newFixture(t, func(s *tree.State) (*tree.Node, int) {
		_, text := add(s, tree.KindParagraph, "abc")
		return text, 0
	})

	var nested []command.Command
	f.d.Hooks().RegisterPre(hookRecorder(&nested))

	bs := key.NewSpecialEvent(key.KeyBackspace, key.ModNone)
	if !f.dispatch(command.New(command.KeyBackspace, bs)) {
		t.Error("Backspace at the start should be handled")
	}
	if !bs.DefaultPrevented() {
		t.Error("Backspace should be consumed")
	}
	if !equal(f.blocks(), []string{"abc"}) {
		t.Errorf("blocks = %q, want no change", f.blocks())
	}
	if len(nested) != 2 || nested[1].Type != command.DeleteCharacter || !nested[1].Bool() {
		t.Errorf("dispatched %v, want keyBackspace then deleteCharacter(true)", nested)
	}
}

func TestKeyDelete(t *testing.T) {
	f := newFixture(t, func(s *tree.State) (*tree.Node, int) {
		_, text := add(s, tree.KindParagraph, "abc")
		return text, 1
	})

	del := key.NewSpecialEvent(key.KeyDelete, key.ModNone)
	if !f.dispatch(command.New(command.KeyDelete, del)) {
		t.Fatal("Delete not handled")
	}
	if !equal(f.blocks(), []string{"ac"}) {
		t.Errorf("blocks = %q", f.blocks())
	}
	if !del.DefaultPrevented() {
		t.Error("Delete should be consumed")
	}
}

// ============================================================================
// Arrows
// ============================================================================

func TestKeyArrowInsideTextIsLeftToHost(t *testing.T) {
	f := newFixture(t, func(s *tree.State) (*tree.Node, int) {
		_, text := add(s, tree.KindParagraph, "abc")
		return text, 1
	})
	before := f.ed.State()

	left := key.NewSpecialEvent(key.KeyLeft, key.ModNone)
	if f.dispatch(command.New(command.KeyArrowLeft, left)) {
		t.Error("arrow inside text should be unhandled")
	}
	if left.DefaultPrevented() {
		t.Error("unhandled arrow should not be consumed")
	}
	if f.ed.State() != before {
		t.Error("unhandled arrow changed the state")
	}
}

func TestKeyArrowAcrossBlocks(t *testing.T) {
	var first *tree.Node
	f := newFixture(t, func(s *tree.State) (*tree.Node, int) {
		_, first = add(s, tree.KindParagraph, "ab")
		_, second := add(s, tree.KindParagraph, "cd")
		return second, 0
	})

	left := key.NewSpecialEvent(key.KeyLeft, key.ModNone)
	if !f.dispatch(command.New(command.KeyArrowLeft, left)) {
		t.Fatal("arrow across blocks should be handled")
	}
	if !left.DefaultPrevented() {
		t.Error("handled arrow should be consumed")
	}
	sel := f.ed.State().Selection()
	if !sel.IsCollapsed() || sel.Focus != tree.TextPoint(first.Key(), 2) {
		t.Errorf("selection = %+v, want end of the first paragraph", sel)
	}

	right := key.NewSpecialEvent(key.KeyRight, key.ModShift)
	if !f.dispatch(command.New(command.KeyArrowRight, right)) {
		t.Fatal("Shift+Right at block end should be handled")
	}
	sel = f.ed.State().Selection()
	if sel.IsCollapsed() || sel.Anchor != tree.TextPoint(first.Key(), 2) {
		t.Errorf("Shift+Right should extend from the anchor, got %+v", sel)
	}
}

// ============================================================================
// Editing commands
// ============================================================================

func TestEditingCommands(t *testing.T) {
	build := func(s *tree.State) (*tree.Node, int) {
		_, text := add(s, tree.KindParagraph, "hello world")
		return text, 5
	}

	tests := []struct {
		name  string
		cmds  []command.Command
		want  []string
		check func(t *testing.T, f *fixture)
	}{
		{
			name: "insertText",
			cmds: []command.Command{command.New(command.InsertText, ",")},
			want: []string{"hello, world"},
		},
		{
			name: "deleteWord backward",
			cmds: []command.Command{command.New(command.DeleteWord, true)},
			want: []string{" world"},
		},
		{
			name: "deleteLine forward",
			cmds: []command.Command{command.New(command.DeleteLine, false)},
			want: []string{"hello"},
		},
		{
			name: "selectAll then removeText",
			cmds: []command.Command{command.New(command.SelectAll, nil), command.New(command.RemoveText, nil)},
			want: []string{""},
		},
		{
			name: "insertLineBreak",
			cmds: []command.Command{command.New(command.InsertLineBreak, false)},
			want: []string{"hello\n world"},
		},
		{
			name: "formatElement",
			cmds: []command.Command{command.New(command.FormatElement, tree.AlignRight)},
			want: []string{"hello world"},
			check: func(t *testing.T, f *fixture) {
				if f.firstBlock().Align() != tree.AlignRight {
					t.Errorf("align = %v", f.firstBlock().Align())
				}
			},
		},
		{
			name: "formatText then insertText",
			cmds: []command.Command{
				command.New(command.FormatText, tree.FormatBold),
				command.New(command.InsertText, "!"),
			},
			want: []string{"hello! world"},
			check: func(t *testing.T, f *fixture) {
				bold := 0
				for _, c := range f.firstBlock().Children() {
					if c.Format().Has(tree.FormatBold) {
						bold++
						if c.Text() != "!" {
							t.Errorf("bold text = %q", c.Text())
						}
					}
				}
				if bold != 1 {
					t.Errorf("bold nodes = %d, want 1", bold)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, build)
			for _, c := range tt.cmds {
				if !f.dispatch(c) {
					t.Fatalf("%s not handled", c.Channel())
				}
			}
			if !equal(f.blocks(), tt.want) {
				t.Errorf("blocks = %q, want %q", f.blocks(), tt.want)
			}
			if tt.check != nil {
				tt.check(t, f)
			}
		})
	}
}

func TestPayloadMismatchFailsFast(t *testing.T) {
	f := newFixture(t, func(s *tree.State) (*tree.Node, int) {
		_, text := add(s, tree.KindParagraph, "abc")
		return text, 1
	})
	before := f.ed.State()

	defer func() {
		r := recover()
		var perr *command.PayloadError
		if err, _ := r.(error); !errors.As(err, &perr) {
			t.Errorf("recovered %v, want *command.PayloadError", r)
		}
		if f.ed.State() != before {
			t.Error("panicking command committed a state")
		}
	}()
	f.d.Dispatch(command.New(command.InsertText, 42))
}
