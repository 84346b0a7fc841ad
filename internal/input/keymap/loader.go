package keymap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for a keymap file with an unrecognized
// extension.
var ErrUnknownFormat = errors.New("keymap: unknown file format")

// Format is a keymap file encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Loader loads keymaps from files.
type Loader struct {
	searchPaths []string
}

// NewLoader creates a new keymap loader.
func NewLoader() *Loader {
	return &Loader{}
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile loads a keymap file. The format follows the extension and the
// keymap is named after the file when it does not name itself.
func (l *Loader) LoadFile(path string) (*Keymap, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	km, err := l.LoadReader(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if km.Name == "" {
		km.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if km.Source == "" {
		km.Source = path
	}
	return km, nil
}

// LoadReader decodes a keymap in the given format.
func (l *Loader) LoadReader(r io.Reader, format Format) (*Keymap, error) {
	var km Keymap
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&km)
	case FormatTOML:
		err = toml.NewDecoder(r).Decode(&km)
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&km)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}
	return &km, nil
}

// LoadAll loads every keymap file in the search paths, in lexical order
// per directory. Missing directories are skipped.
func (l *Loader) LoadAll() ([]*Keymap, error) {
	var keymaps []*Keymap
	for _, dir := range l.searchPaths {
		entries, err := os.ReadDir(dir)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading keymap directory: %w", err)
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, err := FormatFromPath(e.Name()); err == nil {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			km, err := l.LoadFile(filepath.Join(dir, name))
			if err != nil {
				return nil, err
			}
			keymaps = append(keymaps, km)
		}
	}
	return keymaps, nil
}

// LoadAndRegister loads every keymap in the search paths into registry.
func (l *Loader) LoadAndRegister(registry *Registry) error {
	keymaps, err := l.LoadAll()
	if err != nil {
		return err
	}
	for _, km := range keymaps {
		if err := registry.Register(km); err != nil {
			return err
		}
	}
	return nil
}
