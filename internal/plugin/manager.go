package plugin

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mrdivyansh/lexical/internal/dispatcher"
	"github.com/mrdivyansh/lexical/internal/input/keymap"
	"github.com/mrdivyansh/lexical/internal/logging"
	plua "github.com/mrdivyansh/lexical/internal/plugin/lua"
)

// Manager loads plugins into a dispatcher and unloads them again.
type Manager struct {
	mu sync.RWMutex

	d        *dispatcher.Dispatcher
	loader   *Loader
	disabled map[string]bool
	timeout  time.Duration
	logger   *logging.Logger

	plugins   map[string]*loaded
	loadOrder []string
	errs      map[string]error
}

type loaded struct {
	plugin   *plua.Plugin
	manifest *Manifest
}

// Option configures a Manager.
type Option func(*Manager)

// WithPaths sets the directories searched for plugins.
func WithPaths(paths ...string) Option {
	return func(m *Manager) {
		for _, p := range paths {
			m.loader.AddPath(p)
		}
	}
}

// WithDisabled names plugins that must not load.
func WithDisabled(names ...string) Option {
	return func(m *Manager) {
		for _, n := range names {
			m.disabled[n] = true
		}
	}
}

// WithTimeout bounds every entry into a plugin's interpreter.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.timeout = d
	}
}

// WithLogger sets the logger handed to every plugin.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a manager for plugins driving d.
func NewManager(d *dispatcher.Dispatcher, opts ...Option) *Manager {
	m := &Manager{
		d:        d,
		loader:   NewLoader(),
		disabled: make(map[string]bool),
		timeout:  plua.DefaultTimeout,
		logger:   logging.Null,
		plugins:  make(map[string]*loaded),
		errs:     make(map[string]error),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Loader returns the manager's loader.
func (m *Manager) Loader() *Loader { return m.loader }

// Load finds the named plugin and runs its entry point.
func (m *Manager) Load(name string) (*plua.Plugin, error) {
	info, err := m.loader.FindPlugin(name)
	if err != nil {
		return nil, err
	}
	return m.load(info)
}

// LoadFile runs a script outside the search paths as a plugin named after
// the file.
func (m *Manager) LoadFile(path string) (*plua.Plugin, error) {
	return m.load(fileInfo(path))
}

// LoadAll loads every discovered plugin that is not disabled. It keeps
// going after a failure and returns all failures joined.
func (m *Manager) LoadAll() error {
	infos, err := m.loader.Discover()
	if err != nil {
		return err
	}
	var errs []error
	for _, info := range infos {
		if m.disabled[info.Name] {
			m.logger.Debug("plugin disabled", "plugin", info.Name)
			continue
		}
		if _, err := m.load(info); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to load %d plugins: %w", len(errs), errors.Join(errs...))
	}
	return nil
}

func (m *Manager) load(info *Info) (*plua.Plugin, error) {
	if m.disabled[info.Name] {
		return nil, fmt.Errorf("%w: %s", ErrPluginDisabled, info.Name)
	}
	if info.Error != nil {
		m.recordError(info.Name, info.Error)
		return nil, fmt.Errorf("plugin %s: %w", info.Name, info.Error)
	}

	m.mu.Lock()
	if _, exists := m.plugins[info.Name]; exists {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrAlreadyLoaded, info.Name)
	}
	m.mu.Unlock()

	p := plua.New(info.Name, m.d,
		plua.WithLogger(m.logger),
		plua.WithStateOptions(plua.WithTimeout(m.timeout)))
	if err := p.LoadFile(info.Manifest.MainPath()); err != nil {
		p.Close()
		m.recordError(info.Name, err)
		return nil, err
	}

	m.mu.Lock()
	m.plugins[info.Name] = &loaded{plugin: p, manifest: info.Manifest}
	m.loadOrder = append(m.loadOrder, info.Name)
	delete(m.errs, info.Name)
	m.mu.Unlock()

	m.logger.Info("plugin loaded", "plugin", info.Name,
		"path", filepath.Clean(info.Manifest.MainPath()),
		"commands", strings.Join(p.Commands(), ","))
	return p, nil
}

func (m *Manager) recordError(name string, err error) {
	m.mu.Lock()
	m.errs[name] = err
	m.mu.Unlock()
	m.logger.Warn("plugin failed", "plugin", name, "error", err)
}

// Unload closes a plugin, removing its handlers.
func (m *Manager) Unload(name string) error {
	m.mu.Lock()
	l, ok := m.plugins[name]
	if ok {
		delete(m.plugins, name)
		for i, n := range m.loadOrder {
			if n == name {
				m.loadOrder = append(m.loadOrder[:i], m.loadOrder[i+1:]...)
				break
			}
		}
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotLoaded, name)
	}
	l.plugin.Close()
	m.logger.Info("plugin unloaded", "plugin", name)
	return nil
}

// UnloadAll closes every plugin in reverse load order.
func (m *Manager) UnloadAll() {
	names := m.List()
	for i := len(names) - 1; i >= 0; i-- {
		_ = m.Unload(names[i])
	}
}

// Get returns a loaded plugin.
func (m *Manager) Get(name string) (*plua.Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.plugins[name]
	if !ok {
		return nil, false
	}
	return l.plugin, true
}

// List returns the loaded plugin names in load order.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.loadOrder...)
}

// Errors returns the last load failure of every plugin that failed.
func (m *Manager) Errors() map[string]error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]error, len(m.errs))
	for k, v := range m.errs {
		out[k] = v
	}
	return out
}

// Keymaps returns the keymaps contributed by loaded plugins, in load
// order.
func (m *Manager) Keymaps() []*keymap.Keymap {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var kms []*keymap.Keymap
	for _, name := range m.loadOrder {
		if km := m.plugins[name].manifest.Keymap(); km != nil {
			kms = append(kms, km)
		}
	}
	return kms
}

// RegisterKeymaps adds the contributed keymaps to r.
func (m *Manager) RegisterKeymaps(r *keymap.Registry) error {
	for _, km := range m.Keymaps() {
		if err := r.Register(km); err != nil {
			return err
		}
	}
	return nil
}
