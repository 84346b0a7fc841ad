package tree

// Kind identifies the variant of a node.
type Kind uint8

const (
	// KindRoot is the single root of a document.
	KindRoot Kind = iota
	// KindParagraph is a plain block of inline content.
	KindParagraph
	// KindHeading is a block with a heading tag (h1-h6).
	KindHeading
	// KindList holds list items.
	KindList
	// KindListItem is a block inside a list.
	KindListItem
	// KindQuote is a block quote.
	KindQuote
	// KindCode is a code block. It accepts literal tab characters.
	KindCode
	// KindText is an inline leaf holding a string and format flags.
	KindText
	// KindLineBreak is an inline leaf representing a soft line break.
	KindLineBreak
)

var kindNames = [...]string{
	KindRoot:      "root",
	KindParagraph: "paragraph",
	KindHeading:   "heading",
	KindList:      "list",
	KindListItem:  "listitem",
	KindQuote:     "quote",
	KindCode:      "code",
	KindText:      "text",
	KindLineBreak: "linebreak",
}

// String returns the serialized name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind returns the kind with the given serialized name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// IsElement reports whether nodes of this kind own children.
func (k Kind) IsElement() bool {
	switch k {
	case KindRoot, KindParagraph, KindHeading, KindList, KindListItem, KindQuote, KindCode:
		return true
	}
	return false
}

// IsInline reports whether nodes of this kind are inline leaves.
func (k Kind) IsInline() bool {
	return k == KindText || k == KindLineBreak
}

// IsBlock reports whether nodes of this kind hold inline content directly.
func (k Kind) IsBlock() bool {
	switch k {
	case KindParagraph, KindHeading, KindListItem, KindQuote, KindCode:
		return true
	}
	return false
}

// AcceptsTab reports whether a block of this kind takes literal tab
// characters instead of changing its indent.
func (k Kind) AcceptsTab() bool {
	return k == KindCode
}

// canContain reports whether a parent of kind k may hold a child of kind c.
func (k Kind) canContain(c Kind) bool {
	switch k {
	case KindRoot:
		return c.IsBlock() && c != KindListItem || c == KindList
	case KindList:
		return c == KindListItem
	default:
		return k.IsBlock() && c.IsInline()
	}
}

// AllKinds lists every kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}
