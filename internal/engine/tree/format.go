package tree

import "strings"

// TextFormat is a set of character-level format flags.
type TextFormat uint16

const (
	FormatBold TextFormat = 1 << iota
	FormatItalic
	FormatStrikethrough
	FormatUnderline
	FormatCode
	FormatSubscript
	FormatSuperscript
	FormatHighlight
)

var textFormatNames = []struct {
	flag TextFormat
	name string
}{
	{FormatBold, "bold"},
	{FormatItalic, "italic"},
	{FormatStrikethrough, "strikethrough"},
	{FormatUnderline, "underline"},
	{FormatCode, "code"},
	{FormatSubscript, "subscript"},
	{FormatSuperscript, "superscript"},
	{FormatHighlight, "highlight"},
}

// Has reports whether all flags in f are set.
func (t TextFormat) Has(f TextFormat) bool {
	return t&f == f
}

// Toggle returns t with the flags in f flipped.
// Subscript and superscript are mutually exclusive.
func (t TextFormat) Toggle(f TextFormat) TextFormat {
	t ^= f
	if f&FormatSubscript != 0 && t.Has(FormatSubscript) {
		t &^= FormatSuperscript
	}
	if f&FormatSuperscript != 0 && t.Has(FormatSuperscript) {
		t &^= FormatSubscript
	}
	return t
}

// String returns the flag names joined by "|".
func (t TextFormat) String() string {
	if t == 0 {
		return ""
	}
	var parts []string
	for _, f := range textFormatNames {
		if t.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseTextFormat parses a single flag name such as "bold".
func ParseTextFormat(name string) (TextFormat, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range textFormatNames {
		if f.name == name {
			return f.flag, true
		}
	}
	return 0, false
}

// ElementFormat is the block-level alignment of an element.
type ElementFormat uint8

const (
	AlignNone ElementFormat = iota
	AlignLeft
	AlignStart
	AlignCenter
	AlignRight
	AlignEnd
	AlignJustify
)

var alignNames = [...]string{
	AlignNone:    "",
	AlignLeft:    "left",
	AlignStart:   "start",
	AlignCenter:  "center",
	AlignRight:   "right",
	AlignEnd:     "end",
	AlignJustify: "justify",
}

func (f ElementFormat) String() string {
	if int(f) < len(alignNames) {
		return alignNames[f]
	}
	return ""
}

// ParseElementFormat parses an alignment name. The empty string is AlignNone.
func ParseElementFormat(name string) (ElementFormat, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range alignNames {
		if n == name {
			return ElementFormat(i), true
		}
	}
	return AlignNone, false
}

// ListType distinguishes bullet, numbered and check lists.
type ListType uint8

const (
	ListBullet ListType = iota
	ListNumber
	ListCheck
)

var listTypeNames = [...]string{
	ListBullet: "bullet",
	ListNumber: "number",
	ListCheck:  "check",
}

func (l ListType) String() string {
	if int(l) < len(listTypeNames) {
		return listTypeNames[l]
	}
	return "bullet"
}

// ParseListType parses a list type name.
func ParseListType(name string) (ListType, bool) {
	for i, n := range listTypeNames {
		if n == name {
			return ListType(i), true
		}
	}
	return ListBullet, false
}
