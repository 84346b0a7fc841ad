// Package command defines the editing commands routed by the dispatcher.
//
// A Command pairs a Type with a payload whose shape the type determines:
//
//   - DeleteCharacter, DeleteWord, DeleteLine: bool, true to delete backward
//   - InsertText: string
//   - FormatText: tree.TextFormat
//   - FormatElement: tree.ElementFormat
//   - InsertLineBreak: bool, true to keep the selection before the break
//   - KeyTab, KeyEnter, KeyBackspace, KeyDelete, KeyArrowLeft,
//     KeyArrowRight: *key.Event, nil when no key event originated the command
//   - RemoveText, InsertParagraph, IndentContent, OutdentContent, SelectAll:
//     no payload
//
// Custom commands carry a name chosen by whoever registers handlers for
// them, and an arbitrary payload.
//
// The typed accessors panic with a *PayloadError when the payload does not
// have the expected type. A mismatched payload is a programming error in
// the caller that built the command.
package command
