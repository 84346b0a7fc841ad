package selection

import (
	"github.com/mrdivyansh/lexical/internal/engine/tree"
)

// span is a resolved selection.
type span struct {
	sel           *tree.Selection
	anchor, focus caret
}

func current(s *tree.State) (span, bool) {
	if !s.SelectionValid() {
		return span{}, false
	}
	sel := s.Selection()
	a, ok := resolve(s, sel.Anchor)
	if !ok {
		return span{}, false
	}
	f, ok := resolve(s, sel.Focus)
	if !ok {
		return span{}, false
	}
	return span{sel: sel, anchor: a, focus: f}, true
}

func (sp span) collapsed() bool {
	return sp.anchor.block.Key() == sp.focus.block.Key() && sp.anchor.pos == sp.focus.pos
}

func (sp span) ordered(s *tree.State) (start, end caret) {
	if compare(s, sp.anchor, sp.focus) <= 0 {
		return sp.anchor, sp.focus
	}
	return sp.focus, sp.anchor
}

// collapse deletes the range if there is one and returns the caret left.
func (sp span) collapse(s *tree.State) caret {
	if sp.collapsed() {
		return sp.anchor
	}
	start, end := sp.ordered(s)
	return removeRange(s, start, end)
}

// place collapses the selection to c.
func place(s *tree.State, c caret, format tree.TextFormat) {
	p := point(c)
	s.SetSelection(&tree.Selection{Anchor: p, Focus: p, Format: format})
}

// DeleteCharacter deletes the range, or one grapheme cluster in the given
// direction. At the start of a quote or list item a backward delete turns
// the block into a paragraph; at other block edges the neighbouring blocks
// are joined.
func DeleteCharacter(s *tree.State, backward bool) bool {
	sp, ok := current(s)
	if !ok {
		return false
	}
	if !sp.collapsed() {
		place(s, sp.collapse(s), sp.sel.Format)
		return true
	}

	c := sp.anchor
	text := tree.BlockText(c.block)
	switch {
	case backward && c.pos == 0:
		return joinBackward(s, sp.sel, c)
	case !backward && c.pos >= len(text):
		return joinForward(s, sp.sel, c)
	case backward:
		from := prevGrapheme(text, c.pos)
		deleteInBlock(s, c.block, from, c.pos)
		c.pos = from
	default:
		deleteInBlock(s, c.block, c.pos, nextGrapheme(text, c.pos))
	}
	normalize(s, c.block)
	place(s, c, sp.sel.Format)
	return true
}

func joinBackward(s *tree.State, sel *tree.Selection, c caret) bool {
	switch c.block.Kind() {
	case tree.KindQuote:
		p, err := s.Replace(c.block, tree.KindParagraph)
		must(err)
		place(s, caret{block: p}, sel.Format)
		return true
	case tree.KindListItem:
		place(s, caret{block: unwrapListItem(s, c.block)}, sel.Format)
		return true
	}

	prev := previousBlock(s, c.block)
	if prev == nil {
		return true
	}
	if tree.BlockSize(prev) == 0 && prev.Kind() != c.block.Kind() {
		removeBlock(s, prev)
		place(s, c, sel.Format)
		return true
	}
	pos := tree.BlockSize(prev)
	mergeBlocks(s, prev, c.block)
	normalize(s, prev)
	place(s, caret{block: prev, pos: pos}, sel.Format)
	return true
}

func joinForward(s *tree.State, sel *tree.Selection, c caret) bool {
	next := nextBlock(s, c.block)
	if next == nil {
		return true
	}
	if tree.BlockSize(c.block) == 0 && next.Kind() != c.block.Kind() {
		removeBlock(s, c.block)
		place(s, caret{block: next}, sel.Format)
		return true
	}
	mergeBlocks(s, c.block, next)
	normalize(s, c.block)
	place(s, c, sel.Format)
	return true
}

// DeleteWord deletes the range, or whitespace plus one word in the given
// direction. At a block edge it behaves like DeleteCharacter.
func DeleteWord(s *tree.State, backward bool) bool {
	return deleteUnit(s, backward, prevWord, nextWord)
}

// DeleteLine deletes the range, or up to the edge of the current line. Line
// breaks delimit lines inside a block.
func DeleteLine(s *tree.State, backward bool) bool {
	return deleteUnit(s, backward, lineStart, lineEnd)
}

func deleteUnit(s *tree.State, backward bool, prev, next func(string, int) int) bool {
	sp, ok := current(s)
	if !ok {
		return false
	}
	if !sp.collapsed() {
		place(s, sp.collapse(s), sp.sel.Format)
		return true
	}

	c := sp.anchor
	text := tree.BlockText(c.block)
	from, to := c.pos, c.pos
	if backward {
		from = prev(text, c.pos)
	} else {
		to = next(text, c.pos)
	}
	if from == to {
		return DeleteCharacter(s, backward)
	}
	deleteInBlock(s, c.block, from, to)
	normalize(s, c.block)
	c.pos = from
	place(s, c, sp.sel.Format)
	return true
}

// InsertText replaces the range with text in the pending format.
func InsertText(s *tree.State, text string) bool {
	sp, ok := current(s)
	if !ok {
		return false
	}
	c := sp.collapse(s)
	format := sp.sel.Format
	if text == "" {
		place(s, c, format)
		return true
	}

	idx := splitAt(s, c.block, c.pos)
	prev, next := c.block.ChildAt(idx-1), c.block.ChildAt(idx)
	switch {
	case prev != nil && prev.IsText() && prev.Format() == format:
		prev.SetText(prev.Text() + text)
	case next != nil && next.IsText() && next.Format() == format:
		next.SetText(text + next.Text())
	default:
		must(s.InsertAt(c.block, idx, s.NewText(text, format)))
	}
	normalize(s, c.block)
	c.pos += len(text)
	place(s, c, format)
	return true
}

// RemoveText deletes the range without inserting anything.
func RemoveText(s *tree.State) bool {
	sp, ok := current(s)
	if !ok {
		return false
	}
	place(s, sp.collapse(s), sp.sel.Format)
	return true
}

// FormatText toggles f. A collapsed selection toggles the pending format;
// a range adds f to every covered text node when the first one lacks it and
// removes it otherwise.
func FormatText(s *tree.State, f tree.TextFormat) bool {
	sp, ok := current(s)
	if !ok {
		return false
	}
	sel := sp.sel
	if sp.collapsed() {
		sel.Format = sel.Format.Toggle(f)
		s.SetSelection(sel)
		return true
	}

	start, end := sp.ordered(s)
	splitAt(s, start.block, start.pos)
	splitAt(s, end.block, end.pos)
	nodes := textNodesBetween(s, start, end)
	if len(nodes) == 0 {
		sel.Format = sel.Format.Toggle(f)
		s.SetSelection(sel)
		return true
	}

	add := !nodes[0].Format().Has(f)
	for _, n := range nodes {
		if n.Format().Has(f) != add {
			n.SetFormat(n.Format().Toggle(f))
		}
	}
	for _, b := range blocksBetween(s, start.block, end.block) {
		normalize(s, b)
	}
	s.SetSelection(&tree.Selection{
		Anchor: point(sp.anchor),
		Focus:  point(sp.focus),
		Format: nodes[0].Format(),
	})
	return true
}

func blocksBetween(s *tree.State, first, last *tree.Node) []*tree.Node {
	blocks, idx := blockIndex(s)
	return blocks[idx[first.Key()] : idx[last.Key()]+1]
}

// textNodesBetween returns the text nodes lying wholly inside [start, end).
func textNodesBetween(s *tree.State, start, end caret) []*tree.Node {
	var nodes []*tree.Node
	for _, b := range blocksBetween(s, start.block, end.block) {
		from, to := 0, tree.BlockSize(b)
		if b.Key() == start.block.Key() {
			from = start.pos
		}
		if b.Key() == end.block.Key() {
			to = end.pos
		}
		pos := 0
		for _, c := range b.Children() {
			size := c.Size()
			if c.IsText() && size > 0 && pos >= from && pos+size <= to {
				nodes = append(nodes, c)
			}
			pos += size
		}
	}
	return nodes
}

// FormatElement sets the alignment of the anchor's nearest element.
func FormatElement(s *tree.State, f tree.ElementFormat) bool {
	el := AnchorElement(s)
	if el == nil {
		return false
	}
	el.SetAlign(f)
	return true
}

// InsertLineBreak replaces the range with a line break. With selectStart the
// caret stays before the break.
func InsertLineBreak(s *tree.State, selectStart bool) bool {
	sp, ok := current(s)
	if !ok {
		return false
	}
	c := sp.collapse(s)
	insertBreak(s, c, selectStart, sp.sel.Format)
	return true
}

func insertBreak(s *tree.State, c caret, selectStart bool, format tree.TextFormat) {
	idx := splitAt(s, c.block, c.pos)
	must(s.InsertAt(c.block, idx, s.NewLineBreak()))
	normalize(s, c.block)
	if !selectStart {
		c.pos++
	}
	place(s, c, format)
}

// InsertParagraph splits the block at the caret. The new block follows the
// current one and keeps its indent and alignment; headings and quotes split
// at their end continue as paragraphs. Code blocks take a line break
// instead and are left for a paragraph after two trailing line breaks. An
// empty list item leaves its list.
func InsertParagraph(s *tree.State) bool {
	sp, ok := current(s)
	if !ok {
		return false
	}
	c := sp.collapse(s)
	format := sp.sel.Format
	block := c.block
	size := tree.BlockSize(block)

	switch block.Kind() {
	case tree.KindCode:
		if !exitCode(s, c, format) {
			insertBreak(s, c, false, format)
		}
		return true
	case tree.KindListItem:
		if size == 0 {
			place(s, caret{block: unwrapListItem(s, block)}, format)
			return true
		}
	}

	kind := block.Kind()
	if (kind == tree.KindHeading || kind == tree.KindQuote) && c.pos == size {
		kind = tree.KindParagraph
	}
	nb := newBlockLike(s, block, kind)
	idx := splitAt(s, block, c.pos)
	tail := block.Children()[idx:]
	must(s.InsertAfter(block, nb))
	for _, ch := range tail {
		must(s.Append(nb, ch))
	}
	normalize(s, block)
	normalize(s, nb)
	place(s, caret{block: nb}, format)
	return true
}

func exitCode(s *tree.State, c caret, format tree.TextFormat) bool {
	children := c.block.Children()
	n := len(children)
	if c.pos != tree.BlockSize(c.block) || n < 2 ||
		children[n-1].Kind() != tree.KindLineBreak || children[n-2].Kind() != tree.KindLineBreak {
		return false
	}
	s.Remove(children[n-1])
	s.Remove(children[n-2])
	p := s.NewParagraph()
	must(s.InsertAfter(c.block, p))
	place(s, caret{block: p}, format)
	return true
}

// MoveCharacter moves the focus one grapheme cluster, crossing block
// boundaries. Without extend the selection collapses, and a range collapses
// to its edge in the direction of travel.
func MoveCharacter(s *tree.State, backward, extend bool) bool {
	sp, ok := current(s)
	if !ok {
		return false
	}
	if !extend && !sp.collapsed() {
		start, end := sp.ordered(s)
		if backward {
			place(s, start, formatAt(s, point(start)))
		} else {
			place(s, end, formatAt(s, point(end)))
		}
		return true
	}

	next, moved := step(s, sp.focus, backward)
	if !moved {
		next = sp.focus
	}
	if extend {
		s.SetSelection(&tree.Selection{Anchor: sp.sel.Anchor, Focus: point(next), Format: sp.sel.Format})
		return true
	}
	p := point(next)
	s.SetSelection(&tree.Selection{Anchor: p, Focus: p, Format: formatAt(s, p)})
	return true
}

func step(s *tree.State, c caret, backward bool) (caret, bool) {
	text := tree.BlockText(c.block)
	if backward {
		if c.pos > 0 {
			return caret{block: c.block, pos: prevGrapheme(text, c.pos)}, true
		}
		if prev := previousBlock(s, c.block); prev != nil {
			return caret{block: prev, pos: tree.BlockSize(prev)}, true
		}
		return c, false
	}
	if c.pos < len(text) {
		return caret{block: c.block, pos: nextGrapheme(text, c.pos)}, true
	}
	if next := nextBlock(s, c.block); next != nil {
		return caret{block: next}, true
	}
	return c, false
}

// ShouldOverrideDefaultCharacterSelection reports whether moving the focus
// one character in the given direction crosses something other than text:
// a line break, or the edge of a block that has a neighbour.
func ShouldOverrideDefaultCharacterSelection(s *tree.State, backward bool) bool {
	sp, ok := current(s)
	if !ok {
		return false
	}
	f := sp.focus
	if backward {
		if f.pos == 0 {
			return previousBlock(s, f.block) != nil
		}
		leaf := leafAt(f.block, f.pos-1)
		return leaf != nil && leaf.Kind() == tree.KindLineBreak
	}
	if f.pos >= tree.BlockSize(f.block) {
		return nextBlock(s, f.block) != nil
	}
	leaf := leafAt(f.block, f.pos)
	return leaf != nil && leaf.Kind() == tree.KindLineBreak
}
