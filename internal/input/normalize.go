package input

import (
	"sync"

	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/input/key"
	"github.com/mrdivyansh/lexical/internal/input/keymap"
)

var (
	defaultsOnce sync.Once
	defaults     *keymap.Registry
)

func defaultKeymaps() *keymap.Registry {
	defaultsOnce.Do(func() {
		defaults = keymap.NewRegistry()
		if err := keymap.LoadDefaults(defaults); err != nil {
			panic(err)
		}
	})
	return defaults
}

// Normalize maps ev to a command using the built-in keymap. It reports
// false for events no command covers.
func Normalize(ev *key.Event) (command.Command, bool) {
	return resolve(defaultKeymaps(), ev)
}

func resolve(keymaps *keymap.Registry, ev *key.Event) (command.Command, bool) {
	if ev == nil {
		return command.Command{}, false
	}
	if pb := keymaps.Lookup(ev); pb != nil {
		return pb.Resolve(ev), true
	}
	if ev.IsChar() {
		return command.New(command.InsertText, string(ev.Rune)), true
	}
	return command.Command{}, false
}
