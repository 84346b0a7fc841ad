// Package tree provides the document model for the rich-text engine.
//
// A document is a tree of typed nodes owned by a State. The root holds
// blocks (paragraphs, headings, quotes, code blocks) and lists; lists hold
// list items; every block holds inline leaves (text and line breaks).
//
// # Snapshots
//
// A State is either writable (a draft inside a transaction) or frozen (a
// committed snapshot). Drafts are produced by Clone; committed snapshots are
// never mutated again, so they can be retained by collaborators such as a
// history stack. Mutating a frozen state panics with ErrFrozen.
//
// Nodes are identified by Key. A *Node pointer is only meaningful for the
// State it was obtained from; use the key to find the same node in a later
// snapshot.
//
// # Selection
//
// The selection is an anchor/focus pair of Points stored on the State.
// Points reference nodes by key, so a selection whose node has been removed
// is detected by SelectionValid rather than by dangling pointers.
package tree
