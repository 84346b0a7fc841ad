package selection

import (
	"fmt"

	"github.com/mrdivyansh/lexical/internal/engine/tree"
)

// caret is a position in a block's linear text (see tree.BlockText).
// Structural edits that split or merge text nodes inside a block leave
// carets valid, which is why operations compute with carets and convert
// back to points only when storing the selection.
type caret struct {
	block *tree.Node
	pos   int
}

func must(err error) {
	if err != nil {
		panic(fmt.Errorf("selection: %w", err))
	}
}

// resolve converts a point into a caret.
func resolve(s *tree.State, p tree.Point) (caret, bool) {
	n := s.Node(p.Key)
	if n == nil {
		return caret{}, false
	}
	switch p.Type {
	case tree.PointText:
		block := s.NearestBlock(n)
		if block == nil {
			return caret{}, false
		}
		pos := 0
		for _, c := range block.Children() {
			if c.Key() == n.Key() {
				return caret{block: block, pos: pos + p.Offset}, true
			}
			pos += c.Size()
		}
	case tree.PointElement:
		if n.IsBlock() {
			pos := 0
			for i, c := range n.Children() {
				if i >= p.Offset {
					break
				}
				pos += c.Size()
			}
			return caret{block: n, pos: pos}, true
		}
		if n.IsElement() {
			return resolveContainer(n, p.Offset)
		}
	}
	return caret{}, false
}

// resolveContainer handles element points on the root or a list, which
// sit between blocks rather than inside one.
func resolveContainer(n *tree.Node, offset int) (caret, bool) {
	if b := firstBlock(n.ChildAt(offset)); b != nil {
		return caret{block: b}, true
	}
	if b := lastBlock(n.ChildAt(offset - 1)); b != nil {
		return caret{block: b, pos: tree.BlockSize(b)}, true
	}
	return caret{}, false
}

func firstBlock(n *tree.Node) *tree.Node {
	if n == nil || n.IsBlock() {
		return n
	}
	for _, c := range n.Children() {
		if b := firstBlock(c); b != nil {
			return b
		}
	}
	return nil
}

func lastBlock(n *tree.Node) *tree.Node {
	if n == nil || n.IsBlock() {
		return n
	}
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if b := lastBlock(children[i]); b != nil {
			return b
		}
	}
	return nil
}

// point converts a caret back into a point. A position on a text node
// boundary lands at the end of the preceding text node.
func point(c caret) tree.Point {
	pos := 0
	children := c.block.Children()
	for i, ch := range children {
		switch ch.Kind() {
		case tree.KindText:
			if c.pos <= pos+ch.Size() {
				return tree.TextPoint(ch.Key(), c.pos-pos)
			}
		case tree.KindLineBreak:
			if c.pos <= pos {
				return tree.ElementPoint(c.block.Key(), i)
			}
		}
		pos += ch.Size()
	}
	return tree.ElementPoint(c.block.Key(), len(children))
}

// leafAt returns the inline child covering [pos, pos+1) of block.
func leafAt(block *tree.Node, pos int) *tree.Node {
	start := 0
	for _, ch := range block.Children() {
		size := ch.Size()
		if pos >= start && pos < start+size {
			return ch
		}
		start += size
	}
	return nil
}

// splitAt splits the text node straddling pos and returns the index of the
// first child at or after pos.
func splitAt(s *tree.State, block *tree.Node, pos int) int {
	start := 0
	for i, ch := range block.Children() {
		if pos <= start {
			return i
		}
		size := ch.Size()
		if pos < start+size {
			off := pos - start
			tail := s.NewText(ch.Text()[off:], ch.Format())
			ch.SetText(ch.Text()[:off])
			must(s.InsertAfter(ch, tail))
			return i + 1
		}
		start += size
	}
	return block.ChildCount()
}

// deleteInBlock removes the linear text [from, to) of block.
func deleteInBlock(s *tree.State, block *tree.Node, from, to int) {
	if from >= to {
		return
	}
	i := splitAt(s, block, from)
	j := splitAt(s, block, to)
	children := block.Children()
	for _, c := range children[i:j] {
		s.Remove(c)
	}
}

// normalize merges adjacent text nodes with equal formats and drops empty
// text nodes.
func normalize(s *tree.State, block *tree.Node) {
	var prev *tree.Node
	for _, c := range block.Children() {
		if c.IsText() && c.Text() == "" {
			s.Remove(c)
			continue
		}
		if prev != nil && prev.IsText() && c.IsText() && prev.Format() == c.Format() {
			prev.SetText(prev.Text() + c.Text())
			s.Remove(c)
			continue
		}
		prev = c
	}
}

// blockIndex returns the document-order position of each block.
func blockIndex(s *tree.State) ([]*tree.Node, map[tree.Key]int) {
	blocks := s.Blocks()
	idx := make(map[tree.Key]int, len(blocks))
	for i, b := range blocks {
		idx[b.Key()] = i
	}
	return blocks, idx
}

func previousBlock(s *tree.State, block *tree.Node) *tree.Node {
	blocks, idx := blockIndex(s)
	if i, ok := idx[block.Key()]; ok && i > 0 {
		return blocks[i-1]
	}
	return nil
}

func nextBlock(s *tree.State, block *tree.Node) *tree.Node {
	blocks, idx := blockIndex(s)
	if i, ok := idx[block.Key()]; ok && i+1 < len(blocks) {
		return blocks[i+1]
	}
	return nil
}

// compare orders two carets in document order.
func compare(s *tree.State, a, b caret) int {
	if a.block.Key() == b.block.Key() {
		switch {
		case a.pos < b.pos:
			return -1
		case a.pos > b.pos:
			return 1
		}
		return 0
	}
	_, idx := blockIndex(s)
	if idx[a.block.Key()] < idx[b.block.Key()] {
		return -1
	}
	return 1
}

// removeBlock removes a block and any list left empty by its removal.
func removeBlock(s *tree.State, block *tree.Node) {
	parent := block.Parent()
	s.Remove(block)
	for parent != nil && parent.Kind() == tree.KindList && parent.ChildCount() == 0 {
		next := parent.Parent()
		s.Remove(parent)
		parent = next
	}
}

// mergeBlocks moves the children of from to the end of into and removes from.
func mergeBlocks(s *tree.State, into, from *tree.Node) {
	for _, c := range from.Children() {
		must(s.Append(into, c))
	}
	removeBlock(s, from)
}

// removeRange deletes everything between start and end, which must be
// ordered, and returns the collapsed caret.
func removeRange(s *tree.State, start, end caret) caret {
	if start.block.Key() == end.block.Key() {
		deleteInBlock(s, start.block, start.pos, end.pos)
		normalize(s, start.block)
		return start
	}

	deleteInBlock(s, start.block, start.pos, tree.BlockSize(start.block))
	deleteInBlock(s, end.block, 0, end.pos)

	blocks, idx := blockIndex(s)
	for _, b := range blocks[idx[start.block.Key()]+1 : idx[end.block.Key()]] {
		removeBlock(s, b)
	}
	mergeBlocks(s, start.block, end.block)
	normalize(s, start.block)
	return start
}

// newBlockLike creates a detached block of kind carrying the indent and
// alignment of like.
func newBlockLike(s *tree.State, like *tree.Node, kind tree.Kind) *tree.Node {
	var b *tree.Node
	if kind == tree.KindParagraph {
		b = s.NewParagraph()
	} else {
		var err error
		b, err = s.NewElement(kind)
		must(err)
	}
	b.SetIndent(like.Indent())
	b.SetAlign(like.Align())
	if kind == tree.KindHeading && like.Kind() == tree.KindHeading {
		b.SetTag(like.Tag())
	}
	return b
}

// unwrapListItem turns a list item into a paragraph placed beside its list,
// splitting the list when the item sits in the middle.
func unwrapListItem(s *tree.State, item *tree.Node) *tree.Node {
	list := item.Parent()
	p := newBlockLike(s, item, tree.KindParagraph)
	for _, c := range item.Children() {
		must(s.Append(p, c))
	}

	idx, n := item.Index(), list.ChildCount()
	switch {
	case idx == 0:
		must(s.InsertBefore(list, p))
	case idx == n-1:
		must(s.InsertAfter(list, p))
	default:
		tail, err := s.NewElement(tree.KindList)
		must(err)
		tail.SetListType(list.ListType())
		after := list.Children()[idx+1:]
		must(s.InsertAfter(list, p))
		must(s.InsertAfter(p, tail))
		for _, c := range after {
			must(s.Append(tail, c))
		}
	}
	removeBlock(s, item)
	return p
}
