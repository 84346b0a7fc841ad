package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/mrdivyansh/lexical/internal/engine/selection"
	"github.com/mrdivyansh/lexical/internal/engine/tree"
	"github.com/mrdivyansh/lexical/internal/input/terminal"
)

// RunTerminal edits the document interactively on an initialized screen
// until Ctrl+Q is pressed or the screen is finalized. The caller owns the
// screen's Init and Fini.
func (a *Application) RunTerminal(screen tcell.Screen) error {
	if a.isClosed() {
		return ErrClosed
	}
	screen.EnableFocus()
	v := &view{app: a, screen: screen}
	v.draw()

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventFocus:
			a.editor.SetFocused(ev.Focused)
		case *tcell.EventKey:
			if isQuit(ev) {
				return nil
			}
			kev, ok := terminal.FromTcell(ev)
			if !ok {
				continue
			}
			v.status = ""
			if _, err := a.HandleKey(kev); err != nil {
				a.logger.Warn("key failed", "key", kev.String(), "error", err)
				v.status = err.Error()
			}
		}
		v.draw()
	}
}

func isQuit(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlQ {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 &&
		(ev.Rune() == 'q' || ev.Rune() == 'Q')
}

type view struct {
	app    *Application
	screen tcell.Screen
	status string
}

func (v *view) draw() {
	s := v.app.editor.State()
	v.screen.Clear()
	_, height := v.screen.Size()

	caretBlock, caretPos, hasCaret := selection.Caret(s)
	cx, cy := -1, -1

	y := 0
	for i, b := range s.Blocks() {
		if i > 0 {
			y++
		}
		if y >= height-1 {
			break
		}
		pos := -1
		if hasCaret && b == caretBlock {
			pos = caretPos
		}
		var bx, by int
		y, bx, by = v.drawBlock(b, y, pos)
		if pos >= 0 {
			cx, cy = bx, by
		}
		y++
	}

	if cx >= 0 {
		v.screen.ShowCursor(cx, cy)
	} else {
		v.screen.HideCursor()
	}
	v.drawStatus(height - 1)
	v.screen.Show()
}

// drawBlock draws b starting on row y. It returns the last row used and the
// screen position of byte offset caret within the block's text.
func (v *view) drawBlock(b *tree.Node, y, caret int) (lastY, cx, cy int) {
	prefix := strings.Repeat("  ", b.Indent()) + marker(b)
	left := uniseg.StringWidth(prefix)
	v.text(0, y, prefix, tcell.StyleDefault.Dim(true))

	x := left
	off := 0
	cx, cy = -1, -1
	for _, c := range b.Children() {
		if c.Kind() == tree.KindLineBreak {
			if off == caret {
				cx, cy = x, y
			}
			off++
			x, y = left, y+1
			continue
		}
		style := textStyle(c.Format())
		g := uniseg.NewGraphemes(c.Text())
		for g.Next() {
			from, _ := g.Positions()
			if off+from == caret {
				cx, cy = x, y
			}
			runes := g.Runes()
			v.screen.SetContent(x, y, runes[0], runes[1:], style)
			x += g.Width()
		}
		off += len(c.Text())
	}
	if cx < 0 && caret >= 0 {
		cx, cy = x, y
	}
	return y, cx, cy
}

func (v *view) drawStatus(y int) {
	st := v.app.editor.State()
	line := fmt.Sprintf(" %d blocks  v%d", len(st.Blocks()), st.Version())
	if sel := selectionStatus(st); sel != "" {
		line += "  " + sel
	}
	if v.app.ReadOnly() {
		line += "  [read-only]"
	}
	if v.app.recorder.IsRecording() {
		line += "  [recording]"
	}
	if v.status != "" {
		line += "  " + v.status
	}
	line += "  Ctrl+Q quit"
	v.text(0, y, line, tcell.StyleDefault.Reverse(true))
}

// selectionStatus describes a range selection and its direction.
func selectionStatus(s *tree.State) string {
	sel := s.Selection()
	if sel == nil || sel.IsCollapsed() || !s.SelectionValid() {
		return ""
	}
	if sel.IsBackward(s) {
		return "[selection <-]"
	}
	return "[selection ->]"
}

func (v *view) text(x, y int, s string, style tcell.Style) {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		v.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += g.Width()
	}
}

func marker(b *tree.Node) string {
	switch b.Kind() {
	case tree.KindHeading:
		return "# "
	case tree.KindQuote:
		return "> "
	case tree.KindListItem:
		return "- "
	case tree.KindCode:
		return "| "
	}
	return ""
}

func textStyle(f tree.TextFormat) tcell.Style {
	return tcell.StyleDefault.
		Bold(f.Has(tree.FormatBold)).
		Italic(f.Has(tree.FormatItalic)).
		Underline(f.Has(tree.FormatUnderline)).
		StrikeThrough(f.Has(tree.FormatStrikethrough)).
		Reverse(f.Has(tree.FormatCode))
}
