// Package richtext provides the built-in handler for rich-text editing
// commands.
//
// The handler is a state machine over command.Type. Every command it knows
// requires a selection: without a valid one it reports unhandled and leaves
// the document alone. Editing commands map one to one onto operations of
// package selection. Key commands translate into editing commands and run
// them through the dispatcher again:
//
//   - keyTab re-dispatches outdentContent with Shift, else indentContent
//   - keyEnter re-dispatches insertLineBreak with Shift, else insertParagraph
//   - keyBackspace and keyDelete re-dispatch deleteCharacter
//
// so that a toolbar or a script can send the editing command directly and
// a higher priority handler can override either level.
//
// # Indentation
//
// indentContent and outdentContent act on the block holding the selection
// anchor. Blocks that accept literal tabs (code) take a tab character
// instead: indenting inserts one and outdenting deletes the one just before
// the anchor, if any. Other blocks change their indent level within
// [0, tree.MaxIndent]; at a bound the command is still handled.
//
// # Usage
//
//	h := richtext.New()
//	for _, t := range richtext.Commands() {
//	    d.Register(t, dispatcher.PriorityEditor, h)
//	}
package richtext
