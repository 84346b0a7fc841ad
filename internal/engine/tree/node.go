package tree

// Key identifies a node across snapshots.
type Key string

// RootKey is the key of the document root.
const RootKey Key = "root"

// MaxIndent is the largest indent level an element may carry.
const MaxIndent = 10

// Node is a single node of the document tree.
//
// Getters are safe on any state. Setters panic with ErrFrozen when the
// owning state is a committed snapshot.
type Node struct {
	owner    *State
	key      Key
	kind     Kind
	parent   Key
	children []Key

	// Inline payload.
	text   string
	format TextFormat

	// Element attributes.
	indent   int
	align    ElementFormat
	tag      string
	listType ListType
	language string
}

// Key returns the node key.
func (n *Node) Key() Key { return n.key }

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// IsElement reports whether the node owns children.
func (n *Node) IsElement() bool { return n.kind.IsElement() }

// IsBlock reports whether the node holds inline content directly.
func (n *Node) IsBlock() bool { return n.kind.IsBlock() }

// IsText reports whether the node is a text leaf.
func (n *Node) IsText() bool { return n.kind == KindText }

// AcceptsTab reports whether the node takes literal tab characters.
func (n *Node) AcceptsTab() bool { return n.kind.AcceptsTab() }

// ParentKey returns the parent's key, or "" for the root and detached nodes.
func (n *Node) ParentKey() Key { return n.parent }

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node {
	if n.parent == "" {
		return nil
	}
	return n.owner.nodes[n.parent]
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// ChildAt returns the child at index i, or nil when out of range.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.owner.nodes[n.children[i]]
}

// Children returns the child nodes in order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, k := range n.children {
		if c := n.owner.nodes[k]; c != nil {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node { return n.ChildAt(0) }

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node { return n.ChildAt(len(n.children) - 1) }

// Index returns the node's position in its parent, or -1.
func (n *Node) Index() int {
	p := n.Parent()
	if p == nil {
		return -1
	}
	for i, k := range p.children {
		if k == n.key {
			return i
		}
	}
	return -1
}

// PrevSibling returns the previous sibling or nil.
func (n *Node) PrevSibling() *Node {
	p := n.Parent()
	if p == nil {
		return nil
	}
	return p.ChildAt(n.Index() - 1)
}

// NextSibling returns the next sibling or nil.
func (n *Node) NextSibling() *Node {
	p := n.Parent()
	if p == nil {
		return nil
	}
	i := n.Index()
	if i < 0 {
		return nil
	}
	return p.ChildAt(i + 1)
}

// Text returns the text payload of a text node.
func (n *Node) Text() string { return n.text }

// Format returns the text format flags of a text node.
func (n *Node) Format() TextFormat { return n.format }

// Size is the length a leaf contributes to its block's linear text:
// the byte length for text, one for a line break.
func (n *Node) Size() int {
	switch n.kind {
	case KindText:
		return len(n.text)
	case KindLineBreak:
		return 1
	}
	return 0
}

// Indent returns the element indent level.
func (n *Node) Indent() int { return n.indent }

// Align returns the element alignment.
func (n *Node) Align() ElementFormat { return n.align }

// Tag returns the heading tag.
func (n *Node) Tag() string { return n.tag }

// ListType returns the list type.
func (n *Node) ListType() ListType { return n.listType }

// Language returns the code block language.
func (n *Node) Language() string { return n.language }

// SetText replaces the text payload.
func (n *Node) SetText(text string) {
	n.owner.mustWrite()
	n.text = text
}

// SetFormat replaces the format flags.
func (n *Node) SetFormat(f TextFormat) {
	n.owner.mustWrite()
	n.format = f
}

// SetIndent sets the indent level clamped to [0, MaxIndent] and returns the
// stored value.
func (n *Node) SetIndent(indent int) int {
	n.owner.mustWrite()
	n.indent = clampIndent(indent)
	return n.indent
}

// SetAlign sets the element alignment.
func (n *Node) SetAlign(f ElementFormat) {
	n.owner.mustWrite()
	n.align = f
}

// SetTag sets the heading tag.
func (n *Node) SetTag(tag string) {
	n.owner.mustWrite()
	n.tag = tag
}

// SetListType sets the list type.
func (n *Node) SetListType(t ListType) {
	n.owner.mustWrite()
	n.listType = t
}

// SetLanguage sets the code block language.
func (n *Node) SetLanguage(lang string) {
	n.owner.mustWrite()
	n.language = lang
}

// IsAttached reports whether the node is reachable from the root.
func (n *Node) IsAttached() bool {
	return n.owner.IsAttached(n.key)
}

func clampIndent(i int) int {
	if i < 0 {
		return 0
	}
	if i > MaxIndent {
		return MaxIndent
	}
	return i
}

func (n *Node) clone(owner *State) *Node {
	c := *n
	c.owner = owner
	if n.children != nil {
		c.children = make([]Key, len(n.children))
		copy(c.children, n.children)
	}
	return &c
}
