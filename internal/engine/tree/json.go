package tree

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// serializedVersion is written into every node object.
const serializedVersion = 1

// MarshalJSON encodes the attached tree and the selection.
func (s *State) MarshalJSON() ([]byte, error) {
	root, err := s.nodeJSON(s.Root())
	if err != nil {
		return nil, err
	}
	out, err := sjson.SetRawBytes([]byte(`{}`), "root", root)
	if err != nil {
		return nil, err
	}
	if s.selection == nil {
		return out, nil
	}
	for _, ep := range []struct {
		name string
		p    Point
	}{{"anchor", s.selection.Anchor}, {"focus", s.selection.Focus}} {
		prefix := "selection." + ep.name
		if out, err = sjson.SetBytes(out, prefix+".key", string(ep.p.Key)); err != nil {
			return nil, err
		}
		if out, err = sjson.SetBytes(out, prefix+".offset", ep.p.Offset); err != nil {
			return nil, err
		}
		if out, err = sjson.SetBytes(out, prefix+".type", ep.p.Type.String()); err != nil {
			return nil, err
		}
	}
	return sjson.SetBytes(out, "selection.format", int(s.selection.Format))
}

func (s *State) nodeJSON(n *Node) ([]byte, error) {
	b := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err == nil {
			b, err = sjson.SetBytes(b, path, v)
		}
	}

	set("type", n.kind.String())
	set("key", string(n.key))
	set("version", serializedVersion)

	switch {
	case n.kind == KindText:
		set("text", n.text)
		set("format", int(n.format))
	case n.IsElement():
		set("indent", n.indent)
		set("format", n.align.String())
		switch n.kind {
		case KindHeading:
			set("tag", n.tag)
		case KindList:
			set("listType", n.listType.String())
		case KindCode:
			set("language", n.language)
		}
		if err == nil {
			b, err = sjson.SetRawBytes(b, "children", []byte(`[]`))
		}
		for _, c := range n.Children() {
			if err != nil {
				break
			}
			var cb []byte
			if cb, err = s.nodeJSON(c); err == nil {
				b, err = sjson.SetRawBytes(b, "children.-1", cb)
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("encoding node %s: %w", n.key, err)
	}
	return b, nil
}

// ParseJSON decodes a state produced by MarshalJSON. Node kinds are checked
// against reg.
func ParseJSON(data []byte, reg *Registry) (*State, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Message: "invalid JSON"}
	}
	root := gjson.GetBytes(data, "root")
	if root.Get("type").String() != KindRoot.String() {
		return nil, &ParseError{Path: "root", Message: "missing root node"}
	}

	s := NewState(reg)
	if err := s.parseChildren(s.Root(), root.Get("children"), "root"); err != nil {
		return nil, err
	}
	s.Root().indent = clampIndent(int(root.Get("indent").Int()))
	s.Root().align, _ = ParseElementFormat(root.Get("format").String())

	if sel := gjson.GetBytes(data, "selection"); sel.Exists() {
		s.selection = &Selection{
			Anchor: parsePoint(sel.Get("anchor")),
			Focus:  parsePoint(sel.Get("focus")),
			Format: TextFormat(sel.Get("format").Int()),
		}
		if !s.SelectionValid() {
			s.selection = nil
		}
	}
	s.dirty = false
	return s, nil
}

func parsePoint(r gjson.Result) Point {
	p := Point{Key: Key(r.Get("key").String()), Offset: int(r.Get("offset").Int())}
	if r.Get("type").String() == PointElement.String() {
		p.Type = PointElement
	}
	return p
}

func (s *State) parseChildren(parent *Node, children gjson.Result, path string) error {
	if !children.Exists() {
		return nil
	}
	if !children.IsArray() {
		return &ParseError{Path: path + ".children", Message: "expected array"}
	}
	var err error
	i := 0
	children.ForEach(func(_, value gjson.Result) bool {
		childPath := path + ".children." + strconv.Itoa(i)
		i++
		var n *Node
		if n, err = s.parseNode(value, childPath); err != nil {
			return false
		}
		if err = s.Append(parent, n); err != nil {
			err = &ParseError{Path: childPath, Message: err.Error(), Err: err}
			return false
		}
		return true
	})
	return err
}

func (s *State) parseNode(r gjson.Result, path string) (*Node, error) {
	name := r.Get("type").String()
	kind, ok := ParseKind(name)
	if !ok || kind == KindRoot {
		return nil, &ParseError{Path: path, Message: fmt.Sprintf("unknown node type %q", name)}
	}

	var n *Node
	switch kind {
	case KindText:
		n = s.NewText(r.Get("text").String(), TextFormat(r.Get("format").Int()))
	case KindLineBreak:
		n = s.NewLineBreak()
	default:
		var err error
		if n, err = s.NewElement(kind); err != nil {
			return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
		}
		n.indent = clampIndent(int(r.Get("indent").Int()))
		n.align, _ = ParseElementFormat(r.Get("format").String())
		if tag := r.Get("tag"); tag.Exists() {
			n.tag = tag.String()
		}
		n.listType, _ = ParseListType(r.Get("listType").String())
		n.language = r.Get("language").String()
	}
	s.rekey(n, Key(r.Get("key").String()))

	if kind.IsElement() {
		if err := s.parseChildren(n, r.Get("children"), path); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// rekey gives a freshly created, detached node a serialized key when that
// key is free, keeping the key counter ahead of numeric keys.
func (s *State) rekey(n *Node, key Key) {
	if key == "" || key == RootKey || s.nodes[key] != nil {
		return
	}
	delete(s.nodes, n.key)
	n.key = key
	s.nodes[key] = n
	if v, err := strconv.ParseUint(string(key), 10, 64); err == nil && v >= s.nextKey {
		s.nextKey = v + 1
	}
}
