// Package lua runs command handlers written in Lua.
//
// Each Plugin owns a sandboxed gopher-lua interpreter with only the base,
// table, string and math libraries. Scripts cannot load other code, and
// every entry into the interpreter is bounded by a timeout. The global
// editor table lets a script register handlers on dispatcher channels,
// dispatch commands and edit the document:
//
//	editor.register_command("keyTab", 3, function(ev)
//	    if ev.shift then return false end
//	    editor.insert_text("  ")
//	    ev.prevent_default()
//	    return true
//	end)
//
// Key events arrive as tables with key, rune, shift, ctrl, alt and meta
// fields and a prevent_default function. Text and element formats arrive
// as their names.
package lua
