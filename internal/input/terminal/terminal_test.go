package terminal_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/mrdivyansh/lexical/internal/input/terminal"
)

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want string
	}{
		{"rune", tcell.KeyRune, 'a', tcell.ModNone, "a"},
		{"upper rune", tcell.KeyRune, 'A', tcell.ModShift, "A"},
		{"alt rune", tcell.KeyRune, 'x', tcell.ModAlt, "Alt+x"},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, "Enter"},
		{"shift enter", tcell.KeyEnter, 0, tcell.ModShift, "Shift+Enter"},
		{"backtab", tcell.KeyBacktab, 0, tcell.ModNone, "Shift+Tab"},
		{"backspace", tcell.KeyBackspace2, 0, tcell.ModNone, "Backspace"},
		{"ctrl backspace", tcell.KeyBackspace2, 0, tcell.ModCtrl, "Ctrl+Backspace"},
		{"delete", tcell.KeyDelete, 0, tcell.ModNone, "Delete"},
		{"shift left", tcell.KeyLeft, 0, tcell.ModShift, "Shift+Left"},
		{"ctrl b", tcell.KeyCtrlB, 0, tcell.ModCtrl, "Ctrl+b"},
		{"escape", tcell.KeyEscape, 0, tcell.ModNone, "Escape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := terminal.FromTcell(tcell.NewEventKey(tt.key, tt.r, tt.mod))
			if !ok {
				t.Fatal("FromTcell() reported unsupported")
			}
			if got := ev.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if ev.Timestamp.IsZero() {
				t.Error("timestamp not carried over")
			}
		})
	}
}

func TestFromTcellUnsupported(t *testing.T) {
	if _, ok := terminal.FromTcell(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)); ok {
		t.Error("F5 should be unsupported")
	}
	if _, ok := terminal.FromTcell(nil); ok {
		t.Error("nil event should be unsupported")
	}
}
