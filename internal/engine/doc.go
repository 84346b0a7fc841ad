// Package engine provides the transaction runner for rich-text documents.
//
// An Editor owns the current document snapshot, a frozen *tree.State. All
// changes go through Update, which hands the mutator a writable copy and
// commits it atomically when the mutator returns nil.
//
// # Transactions
//
//	err := ed.Update(func(tx *engine.Tx) error {
//		st := tx.State()
//		p := st.NewParagraph()
//		return st.Append(st.Root(), p)
//	}, engine.WithOnUpdate(func() { fmt.Println("done") }))
//
// A mutator that returns an error or panics leaves the committed snapshot
// untouched. A mutator that changes nothing keeps the current snapshot and
// version. Before a draft is committed, detached nodes are dropped, a
// selection pointing at removed nodes is cleared and the tree invariants are
// validated; an invariant failure aborts the commit.
//
// Updates are not reentrant: calling Update from inside a mutator returns
// ErrNestedUpdate. Commands that need to chain edits inside one transaction
// go through the dispatcher, which reuses the running Tx.
//
// # Snapshots
//
// Committed snapshots are immutable and may be retained. Nodes obtained from
// a Tx belong to that transaction's draft and must not be kept past it.
package engine
