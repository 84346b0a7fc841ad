package plugin

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/mrdivyansh/lexical/internal/input/keymap"
)

// ManifestFile is the manifest's name inside a plugin directory.
const ManifestFile = "plugin.json"

// Manifest describes a plugin.
type Manifest struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`

	// Main is the entry point relative to the plugin directory.
	Main string `json:"main"`

	// Keybindings are registered as a keymap named after the plugin.
	Keybindings []keymap.Binding `json:"keybindings"`

	// KeymapPriority orders the contributed keymap against others.
	KeymapPriority int `json:"keymapPriority"`

	dir string
}

// Manifest validation errors.
var (
	ErrMissingName    = errors.New("manifest: name is required")
	ErrInvalidName    = errors.New("manifest: name must be lower case alphanumeric with hyphens")
	ErrInvalidVersion = errors.New("manifest: version must be valid semver")
	ErrInvalidMain    = errors.New("manifest: main must be a .lua file")
)

var (
	namePattern   = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$|^[a-z]$`)
	semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)
)

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// newMinimalManifest describes a plugin that has no manifest file.
func newMinimalManifest(name, dir, main string) *Manifest {
	return &Manifest{Name: name, Version: "0.0.0", Main: main, dir: dir}
}

func (m *Manifest) applyDefaults() {
	if m.Main == "" {
		m.Main = "init.lua"
	}
	if m.Version == "" {
		m.Version = "0.0.0"
	}
}

// Validate checks the manifest fields and parses every key binding.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return ErrMissingName
	}
	if !namePattern.MatchString(m.Name) {
		return fmt.Errorf("%w: %s", ErrInvalidName, m.Name)
	}
	if !semverPattern.MatchString(m.Version) {
		return fmt.Errorf("%w: %s", ErrInvalidVersion, m.Version)
	}
	if filepath.Ext(m.Main) != ".lua" {
		return fmt.Errorf("%w: %s", ErrInvalidMain, m.Main)
	}
	if len(m.Keybindings) > 0 {
		if err := m.Keymap().Validate(); err != nil {
			return fmt.Errorf("manifest %s: %w", m.Name, err)
		}
	}
	return nil
}

// Dir returns the plugin directory.
func (m *Manifest) Dir() string { return m.dir }

// MainPath returns the entry point's path.
func (m *Manifest) MainPath() string {
	return filepath.Join(m.dir, m.Main)
}

// Keymap returns the contributed bindings as a keymap, or nil when the
// plugin contributes none.
func (m *Manifest) Keymap() *keymap.Keymap {
	if len(m.Keybindings) == 0 {
		return nil
	}
	km := keymap.NewKeymap("plugin:" + m.Name).
		WithPriority(m.KeymapPriority).
		WithSource(m.MainPath())
	for _, b := range m.Keybindings {
		km.AddBinding(b)
	}
	return km
}
