package engine

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/mrdivyansh/lexical/internal/engine/tree"
	"github.com/mrdivyansh/lexical/internal/logging"
)

// Tx is the write access granted to a mutator for the duration of one
// update. Nodes reached through a Tx must not be used after the mutator
// returns.
type Tx struct {
	editor *Editor
	state  *tree.State
	tags   []string
}

// State returns the writable draft.
func (tx *Tx) State() *tree.State { return tx.state }

// Editor returns the editor running the update.
func (tx *Tx) Editor() *Editor { return tx.editor }

// Tags returns the tags the update was started with.
func (tx *Tx) Tags() []string { return tx.tags }

// Update describes a committed state change.
type Update struct {
	Prev *tree.State
	Next *tree.State
	Tags []string
}

// UpdateListener is notified after every committed update.
type UpdateListener func(Update)

// Editor owns the committed document snapshot and serializes the updates
// that replace it.
type Editor struct {
	mu sync.Mutex

	id       uuid.UUID
	registry *tree.Registry
	initial  *tree.State
	state    *tree.State
	active   bool

	focus   func() bool
	focused bool

	listeners    map[int]UpdateListener
	nextListener int

	logger *logging.Logger
}

// New creates an editor holding an empty, frozen document.
func New(opts ...Option) *Editor {
	e := &Editor{
		listeners: make(map[int]UpdateListener),
		logger:    logging.Null,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.id == uuid.Nil {
		e.id = uuid.New()
	}

	if e.initial != nil {
		e.state = e.initial.Clone()
		e.registry = e.state.Registry()
		e.initial = nil
	} else {
		if e.registry == nil {
			e.registry = tree.NewRegistry()
		}
		e.state = tree.NewState(e.registry)
	}
	e.state.Freeze()
	e.logger = e.logger.WithComponent("engine").WithField("editor", e.id.String())
	return e
}

// ============================================================================
// Accessors
// ============================================================================

// ID returns the editor's unique ID.
func (e *Editor) ID() uuid.UUID { return e.id }

// Registry returns the node registry.
func (e *Editor) Registry() *tree.Registry { return e.registry }

// Logger returns the editor's logger.
func (e *Editor) Logger() *logging.Logger { return e.logger }

// State returns the committed, read-only snapshot.
func (e *Editor) State() *tree.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Read runs fn against the committed snapshot.
func (e *Editor) Read(fn func(*tree.State) error) error {
	return fn(e.State())
}

// IsFocused reports whether the host editing surface has focus. A query
// installed with WithFocus takes precedence over SetFocused.
func (e *Editor) IsFocused() bool {
	e.mu.Lock()
	focus, focused := e.focus, e.focused
	e.mu.Unlock()
	if focus != nil {
		return focus()
	}
	return focused
}

// SetFocused records the host focus state.
func (e *Editor) SetFocused(focused bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.focused = focused
}

// RegisterUpdateListener adds fn to the listeners notified after every
// committed update and returns a function that removes it.
func (e *Editor) RegisterUpdateListener(fn UpdateListener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextListener
	e.nextListener++
	e.listeners[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
	}
}

// ============================================================================
// Updates
// ============================================================================

// Update runs fn against a writable copy of the committed snapshot.
//
// When fn returns nil and changed the draft, unattached nodes are collected,
// a selection left pointing at removed nodes is cleared, the tree invariants
// are checked and the draft is frozen and committed as the next version.
// When fn returns an error the draft is discarded and the error returned; a
// panic in fn discards the draft and propagates. The committed snapshot is
// only ever replaced whole.
func (e *Editor) Update(fn func(*Tx) error, opts ...UpdateOption) error {
	if fn == nil {
		return ErrNilMutator
	}
	var o updateOptions
	for _, opt := range opts {
		opt(&o)
	}

	e.mu.Lock()
	if e.active {
		e.mu.Unlock()
		return ErrNestedUpdate
	}
	e.active = true
	prev := e.state
	e.mu.Unlock()

	next, err := e.apply(prev, fn, o.tags)
	if err != nil {
		return err
	}
	if next != prev {
		e.notify(Update{Prev: prev, Next: next, Tags: o.tags})
	}
	if o.onUpdate != nil {
		o.onUpdate()
	}
	return nil
}

// apply runs the mutator and commits its draft. It always clears the active
// flag, including when fn panics.
func (e *Editor) apply(prev *tree.State, fn func(*Tx) error, tags []string) (next *tree.State, err error) {
	defer func() {
		e.mu.Lock()
		if err == nil && next != nil {
			e.state = next
		}
		e.active = false
		e.mu.Unlock()
	}()

	draft := prev.Clone()
	if err := fn(&Tx{editor: e, state: draft, tags: tags}); err != nil {
		e.logger.Debug("update discarded", "error", err)
		return nil, err
	}
	if !draft.Dirty() {
		return prev, nil
	}
	if err := e.seal(draft, prev.Version()+1); err != nil {
		return nil, err
	}
	e.logger.Debug("update committed", "version", draft.Version(), "tags", tags)
	return draft, nil
}

// seal prepares a draft for commit.
func (e *Editor) seal(draft *tree.State, version uint64) error {
	if n := draft.Collect(); n > 0 {
		e.logger.Debug("collected detached nodes", "count", n)
	}
	if draft.Selection() != nil && !draft.SelectionValid() {
		e.logger.Warn("clearing invalid selection")
		draft.SetSelection(nil)
	}
	if err := draft.Validate(); err != nil {
		return fmt.Errorf("engine: commit rejected: %w", err)
	}
	draft.SetVersion(version)
	draft.Freeze()
	return nil
}

// SetState replaces the document with a copy of st. Every node in st must
// have a kind registered with the editor.
func (e *Editor) SetState(st *tree.State) error {
	if st == nil {
		return ErrNilState
	}
	e.mu.Lock()
	if e.active {
		e.mu.Unlock()
		return ErrNestedUpdate
	}
	prev := e.state
	e.mu.Unlock()

	next := st.Clone()
	var unknown error
	next.Walk(func(n *tree.Node, _ int) bool {
		if unknown == nil && n.Kind() != tree.KindRoot && !e.registry.Has(n.Kind()) {
			unknown = fmt.Errorf("engine: node %s: %w: %s", n.Key(), tree.ErrUnregisteredKind, n.Kind())
		}
		return unknown == nil
	})
	if unknown != nil {
		return unknown
	}
	if err := e.seal(next, prev.Version()+1); err != nil {
		return err
	}

	e.mu.Lock()
	e.state = next
	e.mu.Unlock()
	e.notify(Update{Prev: prev, Next: next, Tags: []string{"set-state"}})
	return nil
}

func (e *Editor) notify(u Update) {
	e.mu.Lock()
	ids := make([]int, 0, len(e.listeners))
	for id := range e.listeners {
		ids = append(ids, id)
	}
	listeners := make([]UpdateListener, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, e.listeners[id])
	}
	e.mu.Unlock()

	for _, l := range listeners {
		l(u)
	}
}
