package tree

import "unicode/utf8"

// PointType tags what a Point's offset counts.
type PointType uint8

const (
	// PointText offsets are byte offsets into a text node.
	PointText PointType = iota
	// PointElement offsets are child indices of an element.
	PointElement
)

func (t PointType) String() string {
	if t == PointElement {
		return "element"
	}
	return "text"
}

// Point is one endpoint of a selection.
type Point struct {
	Key    Key
	Offset int
	Type   PointType
}

// TextPoint returns a point inside a text node.
func TextPoint(key Key, offset int) Point {
	return Point{Key: key, Offset: offset, Type: PointText}
}

// ElementPoint returns a point between the children of an element.
func ElementPoint(key Key, offset int) Point {
	return Point{Key: key, Offset: offset, Type: PointElement}
}

// Selection is an anchor/focus pair. Format holds the text format applied
// to the next inserted character.
type Selection struct {
	Anchor Point
	Focus  Point
	Format TextFormat
}

// Collapsed returns a selection with anchor and focus at p.
func Collapsed(p Point) *Selection {
	return &Selection{Anchor: p, Focus: p}
}

// IsCollapsed reports whether anchor and focus coincide.
func (s *Selection) IsCollapsed() bool {
	return s.Anchor == s.Focus
}

// Clone returns a copy of the selection.
func (s *Selection) Clone() *Selection {
	c := *s
	return &c
}

// Selection returns a copy of the current selection, or nil.
func (s *State) Selection() *Selection {
	if s.selection == nil {
		return nil
	}
	return s.selection.Clone()
}

// SetSelection replaces the selection. nil clears it.
func (s *State) SetSelection(sel *Selection) {
	s.mustWrite()
	if sel == nil {
		s.selection = nil
		return
	}
	s.selection = sel.Clone()
}

// PointValid reports whether p references an attached node with an offset
// in range for its type. A text offset must fall on a rune boundary.
func (s *State) PointValid(p Point) bool {
	n := s.nodes[p.Key]
	if n == nil || !s.IsAttached(p.Key) || p.Offset < 0 {
		return false
	}
	switch p.Type {
	case PointText:
		if n.kind != KindText || p.Offset > len(n.text) {
			return false
		}
		return p.Offset == len(n.text) || utf8.RuneStart(n.text[p.Offset])
	case PointElement:
		return n.IsElement() && p.Offset <= len(n.children)
	}
	return false
}

// SelectionValid reports whether a selection exists and both endpoints are
// valid.
func (s *State) SelectionValid() bool {
	return s.selection != nil && s.PointValid(s.selection.Anchor) && s.PointValid(s.selection.Focus)
}

// path returns the child indices from the root to p, followed by p's offset.
func (s *State) path(p Point) []int {
	var rev []int
	for n := s.nodes[p.Key]; n != nil && n.key != RootKey; n = n.Parent() {
		rev = append(rev, n.Index())
	}
	out := make([]int, 0, len(rev)+1)
	for i := len(rev) - 1; i >= 0; i-- {
		out = append(out, rev[i])
	}
	return append(out, p.Offset)
}

// ComparePoints orders two valid points in document order, returning -1, 0
// or 1.
func (s *State) ComparePoints(a, b Point) int {
	pa, pb := s.path(a), s.path(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] < pb[i] {
			return -1
		}
		if pa[i] > pb[i] {
			return 1
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	}
	return 0
}

// IsBackward reports whether the focus precedes the anchor.
func (sel *Selection) IsBackward(s *State) bool {
	return s.ComparePoints(sel.Anchor, sel.Focus) > 0
}
