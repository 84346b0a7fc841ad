// Package app wires the editor, dispatcher, input pipeline, configuration
// and plugins into one application, driven by a batch script or an
// interactive terminal.
package app

import (
	"io"
	"os"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/mrdivyansh/lexical/internal/config"
	"github.com/mrdivyansh/lexical/internal/dispatcher"
	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/engine"
	"github.com/mrdivyansh/lexical/internal/input"
	"github.com/mrdivyansh/lexical/internal/input/key"
	"github.com/mrdivyansh/lexical/internal/input/keymap"
	"github.com/mrdivyansh/lexical/internal/input/macro"
	"github.com/mrdivyansh/lexical/internal/logging"
	"github.com/mrdivyansh/lexical/internal/plugin"
)

// Options configures the application. Non-zero fields override the
// configuration files.
type Options struct {
	// ConfigFiles are applied in order over the defaults.
	ConfigFiles []string

	// Environ replaces os.Environ as the source of RICHTEXT_ variables.
	Environ []string

	// Document is a JSON document to open.
	Document string

	// Scripts are plugin scripts loaded after the configured plugins.
	Scripts []string

	// LogLevel overrides log.level.
	LogLevel string

	// LogOutput receives log records instead of log.file or stderr.
	LogOutput io.Writer

	// ReadOnly rejects document changes regardless of configuration.
	ReadOnly bool

	// Watch reloads the configuration when its files change.
	Watch bool

	// MacroFile persists macro registers across runs.
	MacroFile string
}

// Application is the central coordinator.
type Application struct {
	mu sync.Mutex

	opts     Options
	config   *config.Manager
	logger   *logging.Logger
	logFile  *os.File
	readOnly atomic.Bool

	editor      *engine.Editor
	dispatcher  *dispatcher.Dispatcher
	keymaps     *keymap.Registry
	userKeymaps []string
	input       *input.Handler
	recorder    *macro.Recorder
	player      *macro.Player
	plugins     *plugin.Manager

	cleanups []func()
	closed   bool
}

// New starts every component. On failure the components already started
// are closed and an *InitError is returned.
func New(opts Options) (*Application, error) {
	a := &Application{opts: opts, logger: logging.Null}
	if err := newBootstrapper(a).bootstrap(); err != nil {
		return nil, err
	}
	return a, nil
}

// Editor returns the document editor.
func (a *Application) Editor() *engine.Editor { return a.editor }

// Dispatcher returns the command dispatcher.
func (a *Application) Dispatcher() *dispatcher.Dispatcher { return a.dispatcher }

// Input returns the key handler.
func (a *Application) Input() *input.Handler { return a.input }

// Keymaps returns the keymap registry.
func (a *Application) Keymaps() *keymap.Registry { return a.keymaps }

// Recorder returns the macro recorder.
func (a *Application) Recorder() *macro.Recorder { return a.recorder }

// Plugins returns the plugin manager, or nil when plugins are disabled.
func (a *Application) Plugins() *plugin.Manager { return a.plugins }

// Config returns the active configuration.
func (a *Application) Config() *config.Config { return a.config.Current() }

// Logger returns the application logger.
func (a *Application) Logger() *logging.Logger { return a.logger }

// ReadOnly reports whether document changes are rejected.
func (a *Application) ReadOnly() bool { return a.readOnly.Load() }

// Text returns the document text.
func (a *Application) Text() string {
	return a.editor.State().TextContent()
}

// JSON returns the serialized document.
func (a *Application) JSON() ([]byte, error) {
	return a.editor.State().MarshalJSON()
}

// HandleKey runs a key event through the input pipeline.
func (a *Application) HandleKey(ev *key.Event) (bool, error) {
	if a.isClosed() {
		return false, ErrClosed
	}
	return a.input.HandleKey(ev)
}

// Dispatch runs a command.
func (a *Application) Dispatch(cmd command.Command) (bool, error) {
	if a.isClosed() {
		return false, ErrClosed
	}
	return a.dispatcher.Dispatch(cmd)
}

// PlayMacro replays a macro register through the input pipeline.
func (a *Application) PlayMacro(register string, count int) error {
	if a.isClosed() {
		return ErrClosed
	}
	return a.player.Play(register, count, a.input)
}

func (a *Application) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

// onConfigChange applies the settings that can change while running.
func (a *Application) onConfigChange(old, cfg *config.Config) {
	if a.opts.LogLevel == "" && old.Log.Level != cfg.Log.Level {
		a.logger.SetLevel(logging.ParseLevel(cfg.Log.Level))
	}
	a.readOnly.Store(a.opts.ReadOnly || cfg.Editor.ReadOnly)

	if !slices.Equal(old.Keymaps.Dirs, cfg.Keymaps.Dirs) {
		if err := a.loadUserKeymaps(cfg.Keymaps.Dirs); err != nil {
			a.logger.Warn("keymap reload failed", "error", err)
		}
	}
	a.logger.Info("configuration reloaded", "read_only", a.readOnly.Load())
}

// Close saves macros, unloads plugins and stops every component. It is
// safe to call more than once.
func (a *Application) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	var err error
	if a.opts.MacroFile != "" && a.recorder != nil {
		if serr := macro.Save(a.recorder, a.opts.MacroFile); serr != nil {
			a.logger.Error("saving macros", "path", a.opts.MacroFile, "error", serr)
			err = serr
		}
	}
	if a.plugins != nil {
		a.plugins.UnloadAll()
	}
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
	if a.config != nil {
		if cerr := a.config.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if a.logFile != nil {
		if cerr := a.logFile.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
