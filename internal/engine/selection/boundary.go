package selection

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// prevGrapheme returns the start of the grapheme cluster ending at pos.
func prevGrapheme(text string, pos int) int {
	prefix := text[:pos]
	last, offset, state := 0, 0, -1
	for len(prefix) > 0 {
		var cluster string
		cluster, prefix, _, state = uniseg.FirstGraphemeClusterInString(prefix, state)
		last = offset
		offset += len(cluster)
	}
	return last
}

// nextGrapheme returns the end of the grapheme cluster starting at pos.
func nextGrapheme(text string, pos int) int {
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text[pos:], -1)
	return pos + len(cluster)
}

type segment struct {
	start, end int
	space      bool
}

func words(text string) []segment {
	var segs []segment
	offset, state := 0, -1
	for len(text) > 0 {
		var word string
		word, text, state = uniseg.FirstWordInString(text, state)
		segs = append(segs, segment{
			start: offset,
			end:   offset + len(word),
			space: strings.TrimFunc(word, unicode.IsSpace) == "",
		})
		offset += len(word)
	}
	return segs
}

// prevWord skips whitespace backwards from pos, then one word.
func prevWord(text string, pos int) int {
	segs := words(text[:pos])
	i := len(segs) - 1
	for i >= 0 && segs[i].space {
		i--
	}
	if i < 0 {
		return 0
	}
	return segs[i].start
}

// nextWord skips whitespace forwards from pos, then one word.
func nextWord(text string, pos int) int {
	segs := words(text[pos:])
	i := 0
	for i < len(segs) && segs[i].space {
		i++
	}
	if i == len(segs) {
		return len(text)
	}
	return pos + segs[i].end
}

// lineStart returns the start of the soft line holding pos.
func lineStart(text string, pos int) int {
	return strings.LastIndexByte(text[:pos], '\n') + 1
}

// lineEnd returns the end of the soft line holding pos.
func lineEnd(text string, pos int) int {
	if i := strings.IndexByte(text[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(text)
}
