// Package selection implements the editing operations that act on a
// document through its anchor/focus selection.
//
// Every operation takes the writable state of the running transaction and
// reports whether it ran. A nil or invalid selection makes each operation a
// silent no-op that returns false; an operation that finds nothing to do in
// the requested direction (deleting at the start of the document, moving
// past its end) still returns true.
//
// # Positions
//
// Operations resolve selection points to positions in a block's linear text,
// the concatenation of its text payloads with one "\n" per line break.
// Splitting and merging text nodes inside a block leaves these positions
// unchanged, so an operation can restructure the block and then place the
// selection by position. Text is normalized after every edit: adjacent text
// nodes with equal formats merge and empty text nodes are dropped.
//
// # Units
//
// Character deletion and movement step over grapheme clusters; word deletion
// uses Unicode word boundaries. Both come from github.com/rivo/uniseg.
package selection
