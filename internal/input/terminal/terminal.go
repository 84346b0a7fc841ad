// Package terminal converts tcell key events into editor key events.
package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/mrdivyansh/lexical/internal/input/key"
)

// FromTcell converts a tcell key event. It reports false for keys the
// editor has no name for, such as function keys.
func FromTcell(ev *tcell.EventKey) (*key.Event, bool) {
	if ev == nil {
		return nil, false
	}
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	var out *key.Event
	switch {
	case k == tcell.KeyRune:
		out = key.NewRuneEvent(ev.Rune(), mods)
	case k == tcell.KeyBacktab:
		out = key.NewSpecialEvent(key.KeyTab, mods|key.ModShift)
	case k == tcell.KeyTab:
		out = key.NewSpecialEvent(key.KeyTab, mods)
	case k == tcell.KeyEnter:
		out = key.NewSpecialEvent(key.KeyEnter, mods)
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		out = key.NewSpecialEvent(key.KeyBackspace, mods)
	case k == tcell.KeyEscape:
		out = key.NewSpecialEvent(key.KeyEscape, mods)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		// Older terminals report Ctrl+letter as a control code.
		out = key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods|key.ModCtrl)
	default:
		named, ok := specialKeys[k]
		if !ok {
			return nil, false
		}
		out = key.NewSpecialEvent(named, mods)
	}
	out.Timestamp = ev.When()
	return out, true
}

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyDelete: key.KeyDelete,
	tcell.KeyHome:   key.KeyHome,
	tcell.KeyEnd:    key.KeyEnd,
	tcell.KeyUp:     key.KeyUp,
	tcell.KeyDown:   key.KeyDown,
	tcell.KeyLeft:   key.KeyLeft,
	tcell.KeyRight:  key.KeyRight,
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModMeta
	}
	return mods
}
