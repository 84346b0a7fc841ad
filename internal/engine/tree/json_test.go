package tree

import (
	"errors"
	"fmt"
	"testing"
)

func TestJSONRoundTrip(t *testing.T) {
	s := NewState(newRichRegistry())
	h, _ := s.NewElement(KindHeading)
	h.SetTag("h2")
	h.SetAlign(AlignCenter)
	if err := s.Append(s.Root(), h); err != nil {
		t.Fatal(err)
	}
	bold := s.NewText("Title", FormatBold)
	if err := s.Append(h, bold); err != nil {
		t.Fatal(err)
	}
	code, _ := s.NewElement(KindCode)
	code.SetLanguage("go")
	code.SetIndent(3)
	if err := s.Append(s.Root(), code); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(code, s.NewText("\tx := 1", 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(code, s.NewLineBreak()); err != nil {
		t.Fatal(err)
	}
	s.SetSelection(&Selection{
		Anchor: TextPoint(bold.Key(), 1),
		Focus:  TextPoint(bold.Key(), 4),
		Format: FormatBold,
	})

	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() = %v", err)
	}

	got, err := ParseJSON(data, newRichRegistry())
	if err != nil {
		t.Fatalf("ParseJSON() = %v", err)
	}
	if got.TextContent() != s.TextContent() {
		t.Errorf("text content %q, want %q", got.TextContent(), s.TextContent())
	}

	blocks := got.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Tag() != "h2" || blocks[0].Align() != AlignCenter {
		t.Errorf("heading attrs lost: tag %q align %q", blocks[0].Tag(), blocks[0].Align())
	}
	if blocks[0].FirstChild().Format() != FormatBold {
		t.Errorf("text format lost: %s", blocks[0].FirstChild().Format())
	}
	if blocks[1].Language() != "go" || blocks[1].Indent() != 3 {
		t.Errorf("code attrs lost: lang %q indent %d", blocks[1].Language(), blocks[1].Indent())
	}

	sel := got.Selection()
	if sel == nil {
		t.Fatal("selection lost")
	}
	if sel.Anchor.Offset != 1 || sel.Focus.Offset != 4 || sel.Format != FormatBold {
		t.Errorf("selection = %+v", sel)
	}
	if !got.SelectionValid() {
		t.Error("parsed selection must reference parsed nodes")
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestParseJSONRejectsUnregisteredKinds(t *testing.T) {
	data := []byte(`{"root":{"type":"root","children":[{"type":"quote","children":[]}]}}`)
	_, err := ParseJSON(data, nil)

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if !errors.Is(err, ErrUnregisteredKind) {
		t.Errorf("expected ErrUnregisteredKind in chain, got %v", err)
	}
}

func TestParseJSONRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"root":`},
		{"missing root", `{"doc":{}}`},
		{"unknown type", `{"root":{"type":"root","children":[{"type":"table"}]}}`},
		{"text under root", `{"root":{"type":"root","children":[{"type":"text","text":"x"}]}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseJSON([]byte(tc.data), nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseJSONDropsSelectionInsideRune(t *testing.T) {
	doc := `{"root":{"type":"root","children":[{"type":"paragraph","key":"p","children":[` +
		`{"type":"text","key":"t","text":"é","format":0}]}]},` +
		`"selection":{"anchor":{"key":"t","offset":%d,"type":"text"},"focus":{"key":"t","offset":%d,"type":"text"},"format":0}}`

	tests := []struct {
		offset int
		keep   bool
	}{
		{0, true},
		{1, false},
		{2, true},
	}
	for _, tc := range tests {
		s, err := ParseJSON([]byte(fmt.Sprintf(doc, tc.offset, tc.offset)), nil)
		if err != nil {
			t.Fatalf("offset %d: ParseJSON() = %v", tc.offset, err)
		}
		if got := s.Selection() != nil; got != tc.keep {
			t.Errorf("offset %d: selection kept = %v, want %v", tc.offset, got, tc.keep)
		}
	}
}
