// Package key defines the normalized keyboard events the editor consumes.
//
// An Event is produced by a terminal or script front end and travels with
// key commands through the dispatcher. Handlers that take over a key call
// PreventDefault so the front end skips its own fallback behavior.
//
// # Key Specifications
//
// Parse reads the notation used by scripts and configuration:
//
//   - Single characters: "a", "A", "1", "@"
//   - Named keys: "Enter", "Tab", "Backspace", "Delete", "Left", "Right"
//   - With modifiers: "Ctrl+B", "Shift+Tab", "Ctrl+Backspace"
package key
