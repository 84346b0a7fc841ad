package key

import (
	"time"
	"unicode"
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
	Timestamp time.Time

	prevented bool
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) *Event {
	return &Event{Key: KeyRune, Rune: r, Modifiers: mods, Timestamp: time.Now()}
}

// NewSpecialEvent creates a key event for a named key.
func NewSpecialEvent(k Key, mods Modifier) *Event {
	return &Event{Key: k, Modifiers: mods, Timestamp: time.Now()}
}

// IsRune reports whether this is a character key event.
func (e *Event) IsRune() bool {
	return e != nil && e.Key == KeyRune && e.Rune != 0
}

// IsChar reports whether the event types a printable character: a rune
// with no modifier other than Shift.
func (e *Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && e.Modifiers&(ModCtrl|ModAlt|ModMeta) == 0
}

// Shift reports whether Shift is held. A nil event has no modifiers.
func (e *Event) Shift() bool {
	return e != nil && e.Modifiers.HasShift()
}

// PreventDefault marks the event consumed so the front end does not apply
// its own handling. It is a no-op on a nil event.
func (e *Event) PreventDefault() {
	if e != nil {
		e.prevented = true
	}
}

// DefaultPrevented reports whether a handler consumed the event.
func (e *Event) DefaultPrevented() bool {
	return e != nil && e.prevented
}

// String returns the canonical specification of the event, as accepted by
// Parse. Letters held with Ctrl print in lower case so that "Ctrl+B" and
// "Ctrl+b" name the same chord.
func (e *Event) String() string {
	if e == nil {
		return ""
	}
	mods := e.Modifiers
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
		if e.Rune == ' ' {
			name = "Space"
		}
		switch {
		case mods.HasCtrl() && e.Rune != ' ':
			name = string(unicode.ToLower(e.Rune))
		case unicode.IsUpper(e.Rune):
			mods &^= ModShift
		}
	}
	if m := mods.String(); m != "" {
		return m + "+" + name
	}
	return name
}
