package keymap

// DefaultName is the name of the built-in keymap.
const DefaultName = "default"

// Default returns the built-in bindings.
func Default() *Keymap {
	km := NewKeymap(DefaultName).WithSource("default")

	// Key commands. The handler reads Shift from the event.
	for _, chord := range []string{"Tab", "Shift+Tab"} {
		km.Add(chord, "keyTab")
	}
	for _, chord := range []string{"Enter", "Shift+Enter"} {
		km.Add(chord, "keyEnter")
	}
	for _, chord := range []string{"Backspace", "Shift+Backspace"} {
		km.Add(chord, "keyBackspace")
	}
	km.Add("Delete", "keyDelete")
	for _, chord := range []string{"Left", "Shift+Left"} {
		km.Add(chord, "keyArrowLeft")
	}
	for _, chord := range []string{"Right", "Shift+Right"} {
		km.Add(chord, "keyArrowRight")
	}

	km.AddBinding(NewBinding("Ctrl+Backspace", "deleteWord backward").WithDescription("Delete the previous word"))
	km.AddBinding(NewBinding("Ctrl+Delete", "deleteWord forward").WithDescription("Delete the next word"))
	km.AddBinding(NewBinding("Alt+Backspace", "deleteWord backward").WithDescription("Delete the previous word"))
	km.AddBinding(NewBinding("Meta+Backspace", "deleteLine backward").WithDescription("Delete to the start of the line"))
	km.AddBinding(NewBinding("Ctrl+b", "formatText bold").WithDescription("Toggle bold"))
	km.AddBinding(NewBinding("Ctrl+i", "formatText italic").WithDescription("Toggle italic"))
	km.AddBinding(NewBinding("Ctrl+u", "formatText underline").WithDescription("Toggle underline"))
	km.AddBinding(NewBinding("Ctrl+a", "selectAll").WithDescription("Select the whole document"))
	km.AddBinding(NewBinding("Ctrl+]", "indentContent").WithDescription("Indent the block"))
	km.AddBinding(NewBinding("Ctrl+[", "outdentContent").WithDescription("Outdent the block"))
	return km
}

// LoadDefaults registers the built-in keymap.
func LoadDefaults(r *Registry) error {
	return r.Register(Default())
}
