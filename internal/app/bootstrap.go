package app

import (
	"fmt"
	"io"
	"os"

	"github.com/mrdivyansh/lexical/internal/config"
	"github.com/mrdivyansh/lexical/internal/dispatcher"
	"github.com/mrdivyansh/lexical/internal/dispatcher/hook"
	"github.com/mrdivyansh/lexical/internal/engine"
	"github.com/mrdivyansh/lexical/internal/engine/tree"
	"github.com/mrdivyansh/lexical/internal/input"
	"github.com/mrdivyansh/lexical/internal/input/keymap"
	"github.com/mrdivyansh/lexical/internal/input/macro"
	"github.com/mrdivyansh/lexical/internal/logging"
	"github.com/mrdivyansh/lexical/internal/plugin"
	"github.com/mrdivyansh/lexical/internal/setup"
)

// bootstrapper starts components in dependency order and closes the ones
// already started when a later one fails.
type bootstrapper struct {
	app *Application
	cfg *config.Config
}

func newBootstrapper(a *Application) *bootstrapper {
	return &bootstrapper{app: a}
}

func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		component string
		run       func() error
	}{
		{"config", b.initConfig},
		{"logging", b.initLogging},
		{"editor", b.initEditor},
		{"dispatcher", b.initDispatcher},
		{"keymaps", b.initKeymaps},
		{"input", b.initInput},
		{"plugins", b.initPlugins},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			_ = b.app.Close()
			return &InitError{Component: step.component, Err: err}
		}
	}
	b.app.logger.Debug("application started")
	return nil
}

func (b *bootstrapper) initConfig() error {
	a := b.app
	opts := []config.Option{config.WithFiles(a.opts.ConfigFiles...)}
	if a.opts.Environ != nil {
		opts = append(opts, config.WithEnviron(a.opts.Environ))
	}
	a.config = config.NewManager(opts...)
	cfg, err := a.config.Load()
	if err != nil {
		return err
	}
	b.cfg = cfg
	a.readOnly.Store(a.opts.ReadOnly || cfg.Editor.ReadOnly)
	return nil
}

func (b *bootstrapper) initLogging() error {
	a := b.app
	level := b.cfg.Log.Level
	if a.opts.LogLevel != "" {
		level = a.opts.LogLevel
	}

	var out io.Writer = os.Stderr
	switch {
	case a.opts.LogOutput != nil:
		out = a.opts.LogOutput
	case b.cfg.Log.File != "":
		f, err := os.OpenFile(b.cfg.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		a.logFile = f
		out = f
	}

	a.logger = logging.New(logging.Config{
		Level:  logging.ParseLevel(level),
		Output: out,
		Format: b.cfg.Log.Format,
		Prefix: "richtext",
	})
	a.config.SetLogger(a.logger)
	a.cleanups = append(a.cleanups, a.config.Subscribe(a.onConfigChange))
	if a.opts.Watch {
		if err := a.config.Watch(); err != nil {
			return err
		}
	}
	return nil
}

func (b *bootstrapper) initEditor() error {
	a := b.app
	a.editor = setup.NewEditor(engine.WithLogger(a.logger))
	a.editor.SetFocused(true)

	path := b.cfg.Editor.Document
	if a.opts.Document != "" {
		path = a.opts.Document
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}
		st, err := tree.ParseJSON(data, a.editor.Registry())
		if err != nil {
			return fmt.Errorf("document %s: %w", path, err)
		}
		if err := a.editor.SetState(st); err != nil {
			return err
		}
		a.logger.Info("document loaded", "path", path, "blocks", len(st.Blocks()))
	}
	return setup.InitEditor(a.editor)
}

func (b *bootstrapper) initDispatcher() error {
	a := b.app
	dc := b.cfg.Dispatcher
	a.dispatcher = dispatcher.New(a.editor, dispatcher.Config{
		MaxDepth:         dc.MaxDepth,
		EnableMetrics:    dc.EnableMetrics,
		RecoverFromPanic: dc.RecoverFromPanic,
		Audit:            dc.Audit,
	})
	a.dispatcher.SetLogger(a.logger)
	a.dispatcher.Hooks().Register(hook.NewReadOnlyHook(a.readOnly.Load))
	a.cleanups = append(a.cleanups, setup.Register(a.editor, a.dispatcher))
	return nil
}

func (b *bootstrapper) initKeymaps() error {
	a := b.app
	a.keymaps = keymap.NewRegistry()
	if err := keymap.LoadDefaults(a.keymaps); err != nil {
		return err
	}
	return a.loadUserKeymaps(b.cfg.Keymaps.Dirs)
}

// loadUserKeymaps replaces the keymaps loaded from directories.
func (a *Application) loadUserKeymaps(dirs []string) error {
	l := keymap.NewLoader()
	for _, d := range dirs {
		l.AddSearchPath(d)
	}
	kms, err := l.LoadAll()
	if err != nil {
		return err
	}
	for _, name := range a.userKeymaps {
		a.keymaps.Unregister(name)
	}
	a.userKeymaps = a.userKeymaps[:0]
	for _, km := range kms {
		if err := a.keymaps.Register(km); err != nil {
			return err
		}
		a.userKeymaps = append(a.userKeymaps, km.Name)
	}
	if len(kms) > 0 {
		a.logger.Info("keymaps loaded", "count", len(kms))
	}
	return nil
}

func (b *bootstrapper) initInput() error {
	a := b.app
	a.input = input.NewHandler(a.dispatcher, input.WithKeymaps(a.keymaps), input.WithLogger(a.logger))
	a.recorder = macro.NewRecorder()
	a.player = macro.NewPlayer(a.recorder)
	a.input.AddHook(a.recorder)
	if a.opts.MacroFile != "" {
		return macro.LoadOrCreate(a.recorder, a.opts.MacroFile)
	}
	return nil
}

// initPlugins loads the configured plugins. A configured plugin that fails
// is logged and skipped; a script named in Options must load.
func (b *bootstrapper) initPlugins() error {
	a := b.app
	pc := b.cfg.Plugins
	if !pc.Enabled && len(a.opts.Scripts) == 0 {
		return nil
	}
	a.plugins = plugin.NewManager(a.dispatcher,
		plugin.WithPaths(pc.Dirs...),
		plugin.WithDisabled(pc.Disabled...),
		plugin.WithLogger(a.logger))

	if pc.Enabled {
		if err := a.plugins.LoadAll(); err != nil {
			a.logger.Warn("some plugins failed to load", "error", err)
		}
		for _, s := range pc.Scripts {
			if _, err := a.plugins.LoadFile(s); err != nil {
				a.logger.Warn("plugin script failed", "path", s, "error", err)
			}
		}
	}
	for _, s := range a.opts.Scripts {
		if _, err := a.plugins.LoadFile(s); err != nil {
			return err
		}
	}
	return a.plugins.RegisterKeymaps(a.keymaps)
}
