package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("key: empty key specification")
	ErrInvalidSpec = errors.New("key: invalid key specification")
)

// Parse reads a key specification such as "a", "Enter" or "Ctrl+Shift+Tab"
// into an event.
func Parse(spec string) (*Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, ErrEmptySpec
	}

	var mods Modifier
	keyPart := spec
	// "+" on its own, or as the last part of "Ctrl++", is the plus key.
	if i := strings.LastIndex(spec[:len(spec)-1], "+"); i >= 0 {
		keyPart = spec[i+1:]
		for _, p := range strings.Split(spec[:i], "+") {
			mod := ModifierFromName(p)
			if mod == ModNone {
				return nil, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
			}
			mods |= mod
		}
	}

	if strings.EqualFold(keyPart, "space") {
		return NewRuneEvent(' ', mods), nil
	}
	if k := KeyFromName(keyPart); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	r, size := utf8.DecodeRuneInString(keyPart)
	if r == utf8.RuneError || size != len(keyPart) {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}
	switch {
	case mods.HasCtrl():
		r = unicode.ToLower(r)
	case unicode.IsUpper(r):
		mods |= ModShift
	}
	return NewRuneEvent(r, mods), nil
}

// MustParse is like Parse but panics on an invalid specification.
func MustParse(spec string) *Event {
	e, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return e
}
