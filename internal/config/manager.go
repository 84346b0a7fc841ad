package config

import (
	"fmt"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/mrdivyansh/lexical/internal/config/loader"
	"github.com/mrdivyansh/lexical/internal/config/watcher"
	"github.com/mrdivyansh/lexical/internal/logging"
)

// ChangeFunc is called after a reload with the previous and new values.
type ChangeFunc func(old, new *Config)

// Option configures a Manager.
type Option func(*Manager)

// WithFiles adds configuration files, applied in order.
func WithFiles(paths ...string) Option {
	return func(m *Manager) {
		m.files = append(m.files, paths...)
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables the environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(m *Manager) {
		m.envPrefix = prefix
	}
}

// WithEnviron reads environment variables from env instead of the
// process environment.
func WithEnviron(env []string) Option {
	return func(m *Manager) {
		m.environ = env
	}
}

// WithFS reads configuration files through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(m *Manager) {
		m.fs = fsys
	}
}

// WithLogger sets the manager's logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l.WithComponent("config")
		}
	}
}

// Manager loads the configuration and keeps it current.
type Manager struct {
	mu        sync.RWMutex
	files     []string
	envPrefix string
	environ   []string
	fs        loader.FileSystem
	logger    *logging.Logger

	current     *Config
	subscribers map[int]ChangeFunc
	nextSub     int
	watcher     *watcher.Watcher
}

// NewManager creates a manager holding the default configuration. Call
// Load to read the configured sources.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		envPrefix:   loader.DefaultEnvPrefix,
		fs:          loader.DefaultFS(),
		logger:      logging.Null,
		current:     Default(),
		subscribers: make(map[int]ChangeFunc),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetLogger replaces the logger. Call it before Watch.
func (m *Manager) SetLogger(l *logging.Logger) {
	if l == nil {
		l = logging.Null
	}
	m.logger = l.WithComponent("config")
}

// Files returns the configuration files in the order they are applied.
func (m *Manager) Files() []string {
	return append([]string(nil), m.files...)
}

// Current returns the active configuration. Callers must not modify it.
func (m *Manager) Current() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Load reads every source, validates the result and makes it current.
// On error the current configuration is unchanged.
func (m *Manager) Load() (*Config, error) {
	cfg, err := m.build()
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.current = cfg
	m.mu.Unlock()
	m.logger.Debug("configuration loaded", "files", len(m.files))
	return cfg, nil
}

// Reload is Load followed by subscriber notification.
func (m *Manager) Reload() error {
	old := m.Current()
	cfg, err := m.Load()
	if err != nil {
		m.logger.Warn("reload failed, keeping previous configuration", "error", err)
		return err
	}

	m.mu.RLock()
	subs := make([]ChangeFunc, 0, len(m.subscribers))
	for i := 0; i < m.nextSub; i++ {
		if fn, ok := m.subscribers[i]; ok {
			subs = append(subs, fn)
		}
	}
	m.mu.RUnlock()

	for _, fn := range subs {
		fn(old, cfg)
	}
	return nil
}

// Subscribe registers fn for reload notifications and returns a function
// that removes it.
func (m *Manager) Subscribe(fn ChangeFunc) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subscribers[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

// Watch reloads the configuration whenever one of its files changes.
// Close stops watching.
func (m *Manager) Watch(opts ...watcher.Option) error {
	w, err := watcher.New(opts...)
	if err != nil {
		return fmt.Errorf("config: starting watcher: %w", err)
	}
	for _, f := range m.files {
		if err := w.Watch(f); err != nil {
			w.Close()
			return fmt.Errorf("config: watching %s: %w", f, err)
		}
	}
	w.OnChange(func(ev watcher.Event) {
		m.logger.Info("configuration file changed", "path", ev.Path, "op", ev.Op.String())
		_ = m.Reload()
	})

	m.mu.Lock()
	old := m.watcher
	m.watcher = w
	m.mu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// Close stops watching.
func (m *Manager) Close() error {
	m.mu.Lock()
	w := m.watcher
	m.watcher = nil
	m.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.Close()
}

func (m *Manager) build() (*Config, error) {
	merged, err := toMap(Default())
	if err != nil {
		return nil, err
	}

	for _, path := range m.files {
		l, err := loader.ForPathWithFS(m.fs, path)
		if err != nil {
			return nil, err
		}
		layer, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = deepMerge(merged, layer)
	}

	if m.envPrefix != "" {
		env := loader.NewEnvLoader(m.envPrefix)
		if m.environ != nil {
			env = loader.NewEnvLoaderWithEnviron(m.envPrefix, m.environ)
		}
		layer, err := env.Load()
		if err != nil {
			return nil, err
		}
		merged = deepMerge(merged, layer)
	}

	cfg, err := fromMap(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// toMap and fromMap round-trip through TOML so that struct tags define the
// key space for every source.
func toMap(cfg *Config) (map[string]any, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: encoding: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("config: encoding: %w", err)
	}
	return m, nil
}

func fromMap(m map[string]any) (*Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	return cfg, nil
}
