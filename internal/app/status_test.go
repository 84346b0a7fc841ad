package app

import (
	"testing"

	"github.com/mrdivyansh/lexical/internal/engine/tree"
)

func TestSelectionStatus(t *testing.T) {
	s := tree.NewState(nil)
	p := s.NewParagraph()
	if err := s.Append(s.Root(), p); err != nil {
		t.Fatal(err)
	}
	text := s.NewText("hello", 0)
	if err := s.Append(p, text); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		sel  *tree.Selection
		want string
	}{
		{"none", nil, ""},
		{"caret", tree.Collapsed(tree.TextPoint(text.Key(), 2)), ""},
		{"forward", &tree.Selection{Anchor: tree.TextPoint(text.Key(), 0), Focus: tree.TextPoint(text.Key(), 5)}, "[selection ->]"},
		{"backward", &tree.Selection{Anchor: tree.TextPoint(text.Key(), 4), Focus: tree.TextPoint(text.Key(), 1)}, "[selection <-]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetSelection(tt.sel)
			if got := selectionStatus(s); got != tt.want {
				t.Errorf("selectionStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}
