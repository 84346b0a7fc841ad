// Package keymap maps key chords to editor commands.
//
// A Binding pairs a key specification ("Ctrl+B", "Shift+Enter") with a
// command line as accepted by command.Parse ("formatText bold"). Keymaps
// group bindings; a Registry holds several keymaps and resolves a key event
// to the highest-priority binding for its chord.
//
// # Key Commands
//
// Bindings whose command is one of the key commands (keyTab, keyEnter ...)
// receive the triggering event as their payload, so handlers can inspect
// its modifiers and consume it.
//
// # Files
//
// Keymaps can be loaded from YAML, TOML or JSON files:
//
//	name: user
//	priority: 10
//	bindings:
//	  - keys: Ctrl+Shift+X
//	    command: formatText strikethrough
package keymap
