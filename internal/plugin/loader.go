package plugin

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader finds plugins in a list of directories.
type Loader struct {
	paths      []string
	discovered map[string]*Info
}

// Info describes a discovered plugin.
type Info struct {
	Name     string
	Manifest *Manifest
	Error    error
}

// NewLoader creates a loader searching paths in order.
func NewLoader(paths ...string) *Loader {
	return &Loader{
		paths:      paths,
		discovered: make(map[string]*Info),
	}
}

// Paths returns the search paths.
func (l *Loader) Paths() []string {
	return l.paths
}

// AddPath appends a search path.
func (l *Loader) AddPath(path string) {
	l.paths = append(l.paths, path)
}

// Discover lists the plugins in every search path, sorted by name. When
// two paths hold a plugin of the same name the earlier path wins. Missing
// directories are skipped; plugins that fail inspection are returned with
// Error set.
func (l *Loader) Discover() ([]*Info, error) {
	l.discovered = make(map[string]*Info)
	for _, dir := range l.paths {
		if err := l.discoverIn(dir); err != nil {
			return nil, err
		}
	}

	infos := make([]*Info, 0, len(l.discovered))
	for _, info := range l.discovered {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos, nil
}

func (l *Loader) discoverIn(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("plugin: read %s: %w", dir, err)
	}

	for _, entry := range entries {
		var info *Info
		if entry.IsDir() {
			info = inspect(entry.Name(), filepath.Join(dir, entry.Name()))
		} else if filepath.Ext(entry.Name()) == ".lua" {
			info = fileInfo(filepath.Join(dir, entry.Name()))
		} else {
			continue
		}
		if _, exists := l.discovered[info.Name]; !exists {
			l.discovered[info.Name] = info
		}
	}
	return nil
}

// FindPlugin looks a plugin up by name.
func (l *Loader) FindPlugin(name string) (*Info, error) {
	if info, ok := l.discovered[name]; ok {
		return info, nil
	}
	for _, dir := range l.paths {
		if st, err := os.Stat(filepath.Join(dir, name)); err == nil && st.IsDir() {
			info := inspect(name, filepath.Join(dir, name))
			if info.Error == nil {
				l.discovered[name] = info
				return info, nil
			}
		}
		path := filepath.Join(dir, name+".lua")
		if _, err := os.Stat(path); err == nil {
			info := fileInfo(path)
			l.discovered[name] = info
			return info, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPluginNotFound, name)
}

// fileInfo describes a single-file plugin named after the file.
func fileInfo(path string) *Info {
	name := strings.TrimSuffix(filepath.Base(path), ".lua")
	return &Info{
		Name:     name,
		Manifest: newMinimalManifest(name, filepath.Dir(path), filepath.Base(path)),
	}
}

// inspect examines a plugin directory: a manifest if present, else
// init.lua, else plugin.lua.
func inspect(name, dir string) *Info {
	info := &Info{Name: name}

	manifestPath := filepath.Join(dir, ManifestFile)
	if _, err := os.Stat(manifestPath); err == nil {
		m, err := LoadManifest(manifestPath)
		if err != nil {
			info.Error = err
			return info
		}
		info.Name = m.Name
		info.Manifest = m
		return info
	}

	for _, main := range []string{"init.lua", "plugin.lua"} {
		if _, err := os.Stat(filepath.Join(dir, main)); err == nil {
			info.Manifest = newMinimalManifest(name, dir, main)
			return info
		}
	}
	info.Error = ErrNoEntryPoint
	return info
}
