package tree

import (
	"fmt"
	"strconv"
	"strings"
)

// State is a document snapshot: the node tree plus the selection.
type State struct {
	nodes     map[Key]*Node
	selection *Selection
	registry  *Registry
	nextKey   uint64
	version   uint64
	dirty     bool
	frozen    bool
}

// NewState creates a writable state holding an empty root.
// A nil registry means only the core kinds are allowed.
func NewState(reg *Registry) *State {
	if reg == nil {
		reg = NewRegistry()
	}
	s := &State{
		nodes:    make(map[Key]*Node),
		registry: reg,
		nextKey:  1,
	}
	s.nodes[RootKey] = &Node{owner: s, key: RootKey, kind: KindRoot}
	return s
}

// Clone returns a writable deep copy of the state.
func (s *State) Clone() *State {
	c := &State{
		nodes:    make(map[Key]*Node, len(s.nodes)),
		registry: s.registry,
		nextKey:  s.nextKey,
		version:  s.version,
	}
	for k, n := range s.nodes {
		c.nodes[k] = n.clone(c)
	}
	if s.selection != nil {
		c.selection = s.selection.Clone()
	}
	return c
}

// Freeze makes the state read-only.
func (s *State) Freeze() { s.frozen = true }

// Frozen reports whether the state is read-only.
func (s *State) Frozen() bool { return s.frozen }

// Dirty reports whether the state was mutated since it was cloned.
func (s *State) Dirty() bool { return s.dirty }

// Version returns the snapshot version.
func (s *State) Version() uint64 { return s.version }

// SetVersion stamps the version of a draft before it is committed.
func (s *State) SetVersion(v uint64) {
	if s.frozen {
		panic(ErrFrozen)
	}
	s.version = v
}

// Registry returns the node registry the state validates kinds against.
func (s *State) Registry() *Registry { return s.registry }

func (s *State) mustWrite() {
	if s.frozen {
		panic(ErrFrozen)
	}
	s.dirty = true
}

// Root returns the root node.
func (s *State) Root() *Node { return s.nodes[RootKey] }

// Node returns the node with the given key, or nil.
func (s *State) Node(key Key) *Node { return s.nodes[key] }

// Len returns the number of nodes held by the state, attached or not.
func (s *State) Len() int { return len(s.nodes) }

// IsAttached reports whether key is reachable from the root.
func (s *State) IsAttached(key Key) bool {
	seen := 0
	for key != "" {
		if key == RootKey {
			return true
		}
		n := s.nodes[key]
		if n == nil {
			return false
		}
		key = n.parent
		seen++
		if seen > len(s.nodes) {
			return false
		}
	}
	return false
}

func (s *State) newNode(kind Kind) *Node {
	key := Key(strconv.FormatUint(s.nextKey, 10))
	s.nextKey++
	n := &Node{owner: s, key: key, kind: kind}
	s.nodes[key] = n
	return n
}

// NewElement creates a detached element of the given kind.
func (s *State) NewElement(kind Kind) (*Node, error) {
	if !kind.IsElement() || kind == KindRoot {
		return nil, fmt.Errorf("%w: %s is not a creatable element", ErrInvalidKind, kind)
	}
	if !s.registry.Has(kind) {
		return nil, fmt.Errorf("%w: %s", ErrUnregisteredKind, kind)
	}
	s.mustWrite()
	n := s.newNode(kind)
	if kind == KindHeading {
		n.tag = "h1"
	}
	return n, nil
}

// NewParagraph creates a detached paragraph. Paragraphs are always registered.
func (s *State) NewParagraph() *Node {
	s.mustWrite()
	return s.newNode(KindParagraph)
}

// NewText creates a detached text node.
func (s *State) NewText(text string, format TextFormat) *Node {
	s.mustWrite()
	n := s.newNode(KindText)
	n.text = text
	n.format = format
	return n
}

// NewLineBreak creates a detached line break.
func (s *State) NewLineBreak() *Node {
	s.mustWrite()
	return s.newNode(KindLineBreak)
}

// InsertAt inserts child into parent at index, detaching it from any
// previous parent first.
func (s *State) InsertAt(parent *Node, index int, child *Node) error {
	if parent == nil || child == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidChild)
	}
	if child.key == RootKey {
		return fmt.Errorf("%w: root cannot be a child", ErrInvalidChild)
	}
	if !parent.kind.canContain(child.kind) {
		return fmt.Errorf("%w: %s cannot hold %s", ErrInvalidChild, parent.kind, child.kind)
	}
	for p := parent; p != nil; p = p.Parent() {
		if p.key == child.key {
			return fmt.Errorf("%w: %s would become its own ancestor", ErrInvalidChild, child.key)
		}
	}
	s.mustWrite()

	s.detach(child)
	if index < 0 || index > len(parent.children) {
		index = len(parent.children)
	}
	parent.children = append(parent.children, "")
	copy(parent.children[index+1:], parent.children[index:])
	parent.children[index] = child.key
	child.parent = parent.key
	return nil
}

// Append adds child as the last child of parent.
func (s *State) Append(parent, child *Node) error {
	if parent == nil {
		return fmt.Errorf("%w: nil parent", ErrInvalidChild)
	}
	return s.InsertAt(parent, len(parent.children), child)
}

// InsertAfter inserts node directly after sibling.
func (s *State) InsertAfter(sibling, node *Node) error {
	p := sibling.Parent()
	if p == nil {
		return fmt.Errorf("%w: %s has no parent", ErrInvalidChild, sibling.key)
	}
	if node.parent == p.key && node.Index() <= sibling.Index() {
		s.detach(node)
	}
	return s.InsertAt(p, sibling.Index()+1, node)
}

// InsertBefore inserts node directly before sibling.
func (s *State) InsertBefore(sibling, node *Node) error {
	p := sibling.Parent()
	if p == nil {
		return fmt.Errorf("%w: %s has no parent", ErrInvalidChild, sibling.key)
	}
	if node.parent == p.key {
		s.detach(node)
	}
	return s.InsertAt(p, sibling.Index(), node)
}

func (s *State) detach(n *Node) {
	p := n.Parent()
	if p == nil {
		return
	}
	for i, k := range p.children {
		if k == n.key {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = ""
}

// Remove detaches n and deletes it together with all descendants.
// Removing the root is a no-op.
func (s *State) Remove(n *Node) {
	if n == nil || n.key == RootKey {
		return
	}
	s.mustWrite()
	s.detach(n)
	s.drop(n)
}

func (s *State) drop(n *Node) {
	for _, k := range n.children {
		if c := s.nodes[k]; c != nil {
			s.drop(c)
		}
	}
	delete(s.nodes, n.key)
}

// Clear removes every child of parent.
func (s *State) Clear(parent *Node) {
	s.mustWrite()
	for _, c := range parent.Children() {
		s.detach(c)
		s.drop(c)
	}
}

// Replace swaps old for a new element of the given kind that takes over
// old's children, indent and alignment. old is removed.
func (s *State) Replace(old *Node, kind Kind) (*Node, error) {
	n, err := s.NewElement(kind)
	if err != nil {
		return nil, err
	}
	n.indent = old.indent
	n.align = old.align
	if err := s.InsertAfter(old, n); err != nil {
		s.drop(n)
		return nil, err
	}
	for _, c := range old.Children() {
		if err := s.Append(n, c); err != nil {
			return nil, err
		}
	}
	s.Remove(old)
	return n, nil
}

// Collect deletes nodes that are not attached to the root and returns how
// many were removed.
func (s *State) Collect() int {
	removed := 0
	for k := range s.nodes {
		if !s.IsAttached(k) {
			delete(s.nodes, k)
			removed++
		}
	}
	if removed > 0 {
		s.mustWrite()
	}
	return removed
}

// Walk visits attached nodes depth-first in document order. Returning false
// from fn skips the node's children.
func (s *State) Walk(fn func(n *Node, depth int) bool) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, c := range n.Children() {
			visit(c, depth+1)
		}
	}
	visit(s.Root(), 0)
}

// Blocks returns every block in document order.
func (s *State) Blocks() []*Node {
	var blocks []*Node
	s.Walk(func(n *Node, _ int) bool {
		if n.IsBlock() {
			blocks = append(blocks, n)
			return false
		}
		return true
	})
	return blocks
}

// NearestBlock returns n if it is a block, else its closest block ancestor.
func (s *State) NearestBlock(n *Node) *Node {
	for ; n != nil; n = n.Parent() {
		if n.IsBlock() {
			return n
		}
	}
	return nil
}

// NearestElement returns n if it is an element, else its closest element
// ancestor.
func (s *State) NearestElement(n *Node) *Node {
	for ; n != nil; n = n.Parent() {
		if n.IsElement() {
			return n
		}
	}
	return nil
}

// BlockText returns the linear text of a block: text payloads concatenated
// with one "\n" per line break.
func BlockText(block *Node) string {
	var b strings.Builder
	for _, c := range block.Children() {
		switch c.kind {
		case KindText:
			b.WriteString(c.text)
		case KindLineBreak:
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// BlockSize returns the length of a block's linear text.
func BlockSize(block *Node) int {
	size := 0
	for _, c := range block.Children() {
		size += c.Size()
	}
	return size
}

// TextContent returns the document text with blocks separated by blank lines.
func (s *State) TextContent() string {
	blocks := s.Blocks()
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = BlockText(b)
	}
	return strings.Join(parts, "\n\n")
}

// Validate checks the structural invariants of the attached tree.
func (s *State) Validate() error {
	root := s.Root()
	if root == nil || root.kind != KindRoot {
		return fmt.Errorf("%w: missing root", ErrInvariant)
	}
	if root.parent != "" {
		return fmt.Errorf("%w: root has a parent", ErrInvariant)
	}
	seen := make(map[Key]bool, len(s.nodes))
	var check func(n *Node) error
	check = func(n *Node) error {
		if seen[n.key] {
			return fmt.Errorf("%w: node %s reached twice", ErrInvariant, n.key)
		}
		seen[n.key] = true
		if n.key != RootKey && !s.registry.Has(n.kind) {
			return fmt.Errorf("%w: node %s has unregistered kind %s", ErrInvariant, n.key, n.kind)
		}
		if n.indent < 0 || n.indent > MaxIndent {
			return fmt.Errorf("%w: node %s indent %d out of range", ErrInvariant, n.key, n.indent)
		}
		if !n.IsElement() && len(n.children) > 0 {
			return fmt.Errorf("%w: leaf %s has children", ErrInvariant, n.key)
		}
		for _, k := range n.children {
			c := s.nodes[k]
			if c == nil {
				return fmt.Errorf("%w: node %s lists missing child %s", ErrInvariant, n.key, k)
			}
			if c.parent != n.key {
				return fmt.Errorf("%w: node %s parent is %q, listed under %s", ErrInvariant, k, c.parent, n.key)
			}
			if !n.kind.canContain(c.kind) {
				return fmt.Errorf("%w: %s %s cannot hold %s %s", ErrInvariant, n.kind, n.key, c.kind, k)
			}
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}
	return check(root)
}
