package selection

import (
	"strings"
	"unicode/utf8"

	"github.com/mrdivyansh/lexical/internal/engine/tree"
)

// formatAt returns the format of the text node a point sits in, or zero.
func formatAt(s *tree.State, p tree.Point) tree.TextFormat {
	if p.Type != tree.PointText {
		return 0
	}
	if n := s.Node(p.Key); n != nil && n.IsText() {
		return n.Format()
	}
	return 0
}

// Select sets the selection to the given endpoints. The pending format is
// taken from the anchor's text node. Invalid points leave the selection
// unchanged and return false.
func Select(s *tree.State, anchor, focus tree.Point) bool {
	if !s.PointValid(anchor) || !s.PointValid(focus) {
		return false
	}
	s.SetSelection(&tree.Selection{Anchor: anchor, Focus: focus, Format: formatAt(s, anchor)})
	return true
}

// SelectStart places a collapsed selection at the start of n, which may be
// a block, a container of blocks or a text node.
func SelectStart(s *tree.State, n *tree.Node) bool {
	return selectEdge(s, n, false)
}

// SelectEnd places a collapsed selection at the end of n.
func SelectEnd(s *tree.State, n *tree.Node) bool {
	return selectEdge(s, n, true)
}

func selectEdge(s *tree.State, n *tree.Node, end bool) bool {
	if n == nil || !n.IsAttached() {
		return false
	}
	if n.IsText() {
		off := 0
		if end {
			off = len(n.Text())
		}
		return Select(s, tree.TextPoint(n.Key(), off), tree.TextPoint(n.Key(), off))
	}
	var c caret
	if end {
		b := lastBlock(n)
		if b == nil {
			return false
		}
		c = caret{block: b, pos: tree.BlockSize(b)}
	} else {
		b := firstBlock(n)
		if b == nil {
			return false
		}
		c = caret{block: b}
	}
	p := point(c)
	return Select(s, p, p)
}

// SelectAll selects from the start of the first block to the end of the
// last one. It returns false for a document without blocks.
func SelectAll(s *tree.State) bool {
	blocks := s.Blocks()
	if len(blocks) == 0 {
		return false
	}
	last := blocks[len(blocks)-1]
	return Select(s, point(caret{block: blocks[0]}), point(caret{block: last, pos: tree.BlockSize(last)}))
}

// TextContent returns the selected text. Blocks are separated by blank
// lines, as in tree.State.TextContent.
func TextContent(s *tree.State) string {
	sp, ok := current(s)
	if !ok || sp.collapsed() {
		return ""
	}
	start, end := sp.ordered(s)
	blocks := blocksBetween(s, start.block, end.block)
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		text := tree.BlockText(b)
		from, to := 0, len(text)
		if i == 0 {
			from = start.pos
		}
		if i == len(blocks)-1 {
			to = end.pos
		}
		parts[i] = text[from:to]
	}
	return strings.Join(parts, "\n\n")
}

// AnchorElement returns the anchor node if it is an element, else its
// nearest element ancestor. It returns nil without a valid selection or
// when the anchor has no element ancestor.
func AnchorElement(s *tree.State) *tree.Node {
	if !s.SelectionValid() {
		return nil
	}
	return s.NearestElement(s.Node(s.Selection().Anchor.Key))
}

// RuneBeforeAnchor decodes the Unicode scalar value ending at the anchor.
// It does not step over whole grapheme clusters: a combining mark before
// the anchor is returned on its own.
func RuneBeforeAnchor(s *tree.State) (rune, bool) {
	sp, ok := current(s)
	if !ok || sp.anchor.pos == 0 {
		return utf8.RuneError, false
	}
	r, _ := utf8.DecodeLastRuneInString(tree.BlockText(sp.anchor.block)[:sp.anchor.pos])
	return r, r != utf8.RuneError
}

// Caret returns the block holding the focus and the focus offset into
// tree.BlockText of that block.
func Caret(s *tree.State) (*tree.Node, int, bool) {
	sp, ok := current(s)
	if !ok {
		return nil, 0, false
	}
	return sp.focus.block, sp.focus.pos, true
}
