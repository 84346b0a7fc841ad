package lua

import (
	"fmt"
	"sort"
	"strconv"

	lua "github.com/yuin/gopher-lua"

	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/engine/tree"
	"github.com/mrdivyansh/lexical/internal/input/key"
)

// ToLua converts a command payload to a Lua value. Formats become their
// names and key events become event tables.
func ToLua(L *lua.LState, v any) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return v
	case bool:
		return lua.LBool(v)
	case string:
		return lua.LString(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case tree.TextFormat:
		return lua.LString(v.String())
	case tree.ElementFormat:
		return lua.LString(v.String())
	case *key.Event:
		return eventTable(L, v)
	case []any:
		t := L.NewTable()
		for _, e := range v {
			t.Append(ToLua(L, e))
		}
		return t
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t := L.NewTable()
		for _, k := range keys {
			t.RawSetString(k, ToLua(L, v[k]))
		}
		return t
	}
	return lua.LString(fmt.Sprint(v))
}

// eventTable exposes a key event. prevent_default marks the Go event
// consumed.
func eventTable(L *lua.LState, ev *key.Event) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("key", lua.LString(ev.Key.String()))
	if ev.IsRune() {
		t.RawSetString("rune", lua.LString(string(ev.Rune)))
	}
	t.RawSetString("shift", lua.LBool(ev.Modifiers.HasShift()))
	t.RawSetString("ctrl", lua.LBool(ev.Modifiers.HasCtrl()))
	t.RawSetString("alt", lua.LBool(ev.Modifiers.HasAlt()))
	t.RawSetString("meta", lua.LBool(ev.Modifiers.HasMeta()))
	t.RawSetString("prevent_default", L.NewFunction(func(*lua.LState) int {
		ev.PreventDefault()
		return 0
	}))
	return t
}

// ToGo converts a Lua value to a Go value. Integral numbers become int64,
// sequences become []any and other tables map[string]any. Functions and
// cyclic references become nil.
func ToGo(lv lua.LValue) any {
	return toGo(lv, make(map[*lua.LTable]bool))
}

func toGo(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		defer delete(visited, v)
		return tableToGo(v, visited)
	case *lua.LUserData:
		return v.Value
	}
	return nil
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	if n := t.Len(); n > 0 {
		count := 0
		t.ForEach(func(_, _ lua.LValue) { count++ })
		if count == n {
			arr := make([]any, n)
			for i := 1; i <= n; i++ {
				arr[i-1] = toGo(t.RawGetInt(i), visited)
			}
			return arr
		}
	}
	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		var name string
		switch kv := k.(type) {
		case lua.LString:
			name = string(kv)
		case lua.LNumber:
			name = strconv.FormatFloat(float64(kv), 'f', -1, 64)
		default:
			name = k.String()
		}
		m[name] = toGo(v, visited)
	})
	return m
}

// CommandFromLua builds the command a script asked to dispatch. Built-in
// commands take their payload in the textual form accepted by
// command.ParsePayload, or a boolean where they expect one. Custom
// commands take any convertible value.
func CommandFromLua(name string, lv lua.LValue) (command.Command, error) {
	cmd := command.Named(name, nil)
	if cmd.Type == command.Custom {
		cmd.Payload = ToGo(lv)
		return cmd, nil
	}
	switch v := lv.(type) {
	case *lua.LNilType:
		p, err := command.ParsePayload(cmd.Type, "")
		if err != nil {
			return command.Command{}, fmt.Errorf("%w: %s: %v", ErrPayload, name, err)
		}
		cmd.Payload = p
	case lua.LBool:
		if !takesBool(cmd.Type) {
			return command.Command{}, fmt.Errorf("%w: %s does not take a boolean", ErrPayload, name)
		}
		cmd.Payload = bool(v)
	case lua.LString:
		p, err := command.ParsePayload(cmd.Type, string(v))
		if err != nil {
			return command.Command{}, fmt.Errorf("%w: %s: %v", ErrPayload, name, err)
		}
		cmd.Payload = p
	default:
		return command.Command{}, fmt.Errorf("%w: %s does not take a %s", ErrPayload, name, lv.Type())
	}
	return cmd, nil
}

func takesBool(t command.Type) bool {
	switch t {
	case command.DeleteCharacter, command.DeleteWord, command.DeleteLine, command.InsertLineBreak:
		return true
	}
	return false
}
