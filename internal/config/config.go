package config

// Config is the complete application configuration.
type Config struct {
	Editor     EditorConfig     `toml:"editor" yaml:"editor"`
	Dispatcher DispatcherConfig `toml:"dispatcher" yaml:"dispatcher"`
	Log        LogConfig        `toml:"log" yaml:"log"`
	Keymaps    KeymapConfig     `toml:"keymaps" yaml:"keymaps"`
	Plugins    PluginsConfig    `toml:"plugins" yaml:"plugins"`
}

// EditorConfig configures the document editor.
type EditorConfig struct {
	// ReadOnly rejects every command that would change the document.
	ReadOnly bool `toml:"read_only" yaml:"read_only"`

	// Document is a JSON document loaded at startup.
	Document string `toml:"document" yaml:"document"`
}

// DispatcherConfig configures command dispatch.
type DispatcherConfig struct {
	MaxDepth         int  `toml:"max_depth" yaml:"max_depth"`
	EnableMetrics    bool `toml:"enable_metrics" yaml:"enable_metrics"`
	RecoverFromPanic bool `toml:"recover_from_panic" yaml:"recover_from_panic"`
	Audit            bool `toml:"audit" yaml:"audit"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`

	// Format is text or json.
	Format string `toml:"format" yaml:"format"`

	// File receives log output instead of stderr.
	File string `toml:"file" yaml:"file"`
}

// KeymapConfig locates user keymaps.
type KeymapConfig struct {
	Dirs []string `toml:"dirs" yaml:"dirs"`
}

// PluginsConfig configures Lua plugins.
type PluginsConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`

	// Dirs are searched for *.lua files.
	Dirs []string `toml:"dirs" yaml:"dirs"`

	// Scripts are loaded in addition to those found in Dirs.
	Scripts []string `toml:"scripts" yaml:"scripts"`

	// Disabled lists plugin names to skip.
	Disabled []string `toml:"disabled" yaml:"disabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Dispatcher: DispatcherConfig{
			MaxDepth: 8,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Plugins: PluginsConfig{
			Enabled: true,
		},
	}
}

// PluginEnabled reports whether the named plugin may load.
func (c *Config) PluginEnabled(name string) bool {
	if !c.Plugins.Enabled {
		return false
	}
	for _, d := range c.Plugins.Disabled {
		if d == name {
			return false
		}
	}
	return true
}

// Validate checks every setting and returns all problems found.
func (c *Config) Validate() error {
	var errs ValidationErrors
	if c.Dispatcher.MaxDepth < 1 {
		errs = append(errs, &ValidationError{Path: "dispatcher.max_depth", Message: "must be at least 1"})
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{Path: "log.level", Message: "must be debug, info, warn or error"})
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, &ValidationError{Path: "log.format", Message: "must be text or json"})
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
