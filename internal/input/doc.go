// Package input turns key events into editor commands.
//
// A Handler resolves each event against a keymap registry, falling back to
// insertText for printable characters, and dispatches the resulting command.
// Key commands (keyTab, keyEnter ...) carry the event itself, so a handler
// that consumes it marks it with PreventDefault. For any other command a
// handled dispatch consumes the event.
//
// # Hooks
//
// Hooks see every event before it is resolved and may swallow it, and see
// the outcome afterwards. The macro package records through a hook.
//
// # Usage
//
//	h := input.NewHandler(d)
//	consumed, err := h.HandleKey(ev)
//	if !consumed {
//	    // let the front end apply its default behavior
//	}
package input
