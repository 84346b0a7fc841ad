package plugin_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mrdivyansh/lexical/internal/dispatcher"
	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/engine"
	"github.com/mrdivyansh/lexical/internal/input/key"
	"github.com/mrdivyansh/lexical/internal/input/keymap"
	"github.com/mrdivyansh/lexical/internal/plugin"
	"github.com/mrdivyansh/lexical/internal/setup"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newDispatcher(t *testing.T) *dispatcher.Dispatcher {
	t.Helper()
	ed := setup.NewEditor(engine.WithFocus(func() bool { return true }))
	d := dispatcher.NewWithDefaults(ed)
	setup.Register(ed, d)
	if err := setup.InitEditor(ed); err != nil {
		t.Fatal(err)
	}
	return d
}

const smartTabManifest = `{
  "name": "smart-tab",
  "version": "1.2.0",
  "keymapPriority": 5,
  "keybindings": [{"keys": "Ctrl+T", "command": "smartTab"}]
}`

func pluginDir(t *testing.T) string {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.lua"), `editor.register_command("greetA", 1, function() return true end)`)
	write(t, filepath.Join(dir, "off.lua"), `error("must not run")`)
	write(t, filepath.Join(dir, "readme.txt"), "ignored")
	write(t, filepath.Join(dir, "smart-tab", "plugin.json"), smartTabManifest)
	write(t, filepath.Join(dir, "smart-tab", "init.lua"), `
		editor.register_command("smartTab", 1, function()
			return editor.insert_text("  ")
		end)
	`)
	if err := os.Mkdir(filepath.Join(dir, "broken"), 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestDiscover(t *testing.T) {
	dir := pluginDir(t)
	infos, err := plugin.NewLoader(dir, filepath.Join(dir, "missing")).Discover()
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, info := range infos {
		names = append(names, info.Name)
	}
	if want := []string{"a", "broken", "off", "smart-tab"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	if !errors.Is(infos[1].Error, plugin.ErrNoEntryPoint) {
		t.Errorf("broken: error = %v", infos[1].Error)
	}
	if got := infos[3].Manifest.Version; got != "1.2.0" {
		t.Errorf("smart-tab version = %q", got)
	}
}

func TestManagerLoadAll(t *testing.T) {
	dir := pluginDir(t)
	d := newDispatcher(t)
	m := plugin.NewManager(d, plugin.WithPaths(dir), plugin.WithDisabled("off"))
	t.Cleanup(m.UnloadAll)

	err := m.LoadAll()
	if !errors.Is(err, plugin.ErrNoEntryPoint) {
		t.Fatalf("LoadAll = %v, want entry point failure", err)
	}
	if got, want := m.List(), []string{"a", "smart-tab"}; !reflect.DeepEqual(got, want) {
		t.Errorf("List = %v, want %v", got, want)
	}
	if _, ok := m.Errors()["broken"]; !ok {
		t.Errorf("Errors = %v, want broken", m.Errors())
	}

	handled, err := d.Dispatch(command.Named("smartTab", nil))
	if err != nil || !handled {
		t.Fatalf("Dispatch = %v, %v", handled, err)
	}
	if got := d.Editor().State().TextContent(); got != "  " {
		t.Errorf("text = %q", got)
	}

	if _, err := m.Load("off"); !errors.Is(err, plugin.ErrPluginDisabled) {
		t.Errorf("Load(off) = %v", err)
	}
	if _, err := m.Load("a"); !errors.Is(err, plugin.ErrAlreadyLoaded) {
		t.Errorf("Load(a) again = %v", err)
	}
	if _, err := m.Load("nope"); !errors.Is(err, plugin.ErrPluginNotFound) {
		t.Errorf("Load(nope) = %v", err)
	}
}

func TestManagerKeymaps(t *testing.T) {
	d := newDispatcher(t)
	m := plugin.NewManager(d, plugin.WithPaths(pluginDir(t)))
	t.Cleanup(m.UnloadAll)
	if _, err := m.Load("smart-tab"); err != nil {
		t.Fatal(err)
	}

	r := keymap.NewRegistry()
	if err := m.RegisterKeymaps(r); err != nil {
		t.Fatal(err)
	}
	b := r.Lookup(key.NewRuneEvent('t', key.ModCtrl))
	if b == nil {
		t.Fatal("Ctrl+t not bound")
	}
	if got := b.Command().Channel(); got != "smartTab" {
		t.Errorf("command = %q", got)
	}
	if pk := r.Get("plugin:smart-tab"); pk == nil || pk.Priority != 5 {
		t.Errorf("keymap = %+v", pk)
	}
}

func TestManagerUnload(t *testing.T) {
	d := newDispatcher(t)
	m := plugin.NewManager(d, plugin.WithPaths(pluginDir(t)))
	if _, err := m.Load("a"); err != nil {
		t.Fatal(err)
	}
	if !d.Registry().Has("greetA") {
		t.Fatal("greetA not registered")
	}
	if err := m.Unload("a"); err != nil {
		t.Fatal(err)
	}
	if d.Registry().Has("greetA") {
		t.Error("greetA registered after Unload")
	}
	if err := m.Unload("a"); !errors.Is(err, plugin.ErrNotLoaded) {
		t.Errorf("second Unload = %v", err)
	}
	if len(m.List()) != 0 {
		t.Errorf("List = %v", m.List())
	}
}

func TestManagerLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.lua")
	write(t, path, `editor.insert_text("extra")`)
	d := newDispatcher(t)
	m := plugin.NewManager(d)
	p, err := m.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "extra" {
		t.Errorf("Name = %q", p.Name())
	}
	if got := d.Editor().State().TextContent(); got != "extra" {
		t.Errorf("text = %q", got)
	}
}

func TestManifestValidation(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     error
	}{
		{"missing name", `{"version": "1.0.0"}`, plugin.ErrMissingName},
		{"bad name", `{"name": "Bad_Name"}`, plugin.ErrInvalidName},
		{"bad version", `{"name": "ok", "version": "one"}`, plugin.ErrInvalidVersion},
		{"bad main", `{"name": "ok", "main": "init.js"}`, plugin.ErrInvalidMain},
		{"bad binding", `{"name": "ok", "keybindings": [{"keys": "Hyper+x", "command": "selectAll"}]}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), plugin.ManifestFile)
			write(t, path, tt.manifest)
			_, err := plugin.LoadManifest(path)
			if err == nil {
				t.Fatal("no error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
