package dispatcher

import (
	"fmt"
	"runtime"
	"time"

	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/dispatcher/execctx"
	"github.com/mrdivyansh/lexical/internal/dispatcher/handler"
	"github.com/mrdivyansh/lexical/internal/dispatcher/hook"
	"github.com/mrdivyansh/lexical/internal/engine"
	"github.com/mrdivyansh/lexical/internal/logging"
)

// Dispatcher routes commands to the handlers registered for their channel.
type Dispatcher struct {
	editor   *engine.Editor
	registry *Registry
	hooks    *hook.Manager
	config   Config
	metrics  *Metrics
	logger   *logging.Logger
}

// New creates a dispatcher for editor.
func New(editor *engine.Editor, config Config) *Dispatcher {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultConfig().MaxDepth
	}
	d := &Dispatcher{
		editor:   editor,
		registry: NewRegistry(),
		hooks:    hook.NewManager(),
		config:   config,
		logger:   logging.Null,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	if config.Audit {
		d.hooks.Register(hook.NewAuditHook(d.logger))
	}
	return d
}

// NewWithDefaults creates a dispatcher with the default configuration.
func NewWithDefaults(editor *engine.Editor) *Dispatcher {
	return New(editor, DefaultConfig())
}

// SetLogger sets the logger used for dispatch diagnostics and by the
// audit hook.
func (d *Dispatcher) SetLogger(l *logging.Logger) {
	if l == nil {
		l = logging.Null
	}
	d.logger = l.WithComponent("dispatcher")
	if d.config.Audit {
		d.hooks.Register(hook.NewAuditHook(d.logger))
	}
}

// Register adds a handler for a built-in command type.
func (d *Dispatcher) Register(t command.Type, p Priority, h handler.Handler) func() {
	return d.RegisterChannel(t.String(), p, h)
}

// RegisterChannel adds a handler for a channel by name, which is how
// handlers for custom commands are installed.
func (d *Dispatcher) RegisterChannel(channel string, p Priority, h handler.Handler) func() {
	if h == nil {
		panic(ErrNilHandler)
	}
	return d.registry.Register(channel, p, h)
}

// Dispatch runs cmd through its handler chain inside one editor update and
// reports whether a handler claimed it. A handler error aborts the update
// and is returned.
func (d *Dispatcher) Dispatch(cmd command.Command, opts ...engine.UpdateOption) (bool, error) {
	channel := cmd.Channel()
	if !d.registry.Has(channel) {
		d.logger.Debug("no handlers", "command", channel)
		return false, nil
	}

	var handled bool
	opts = append([]engine.UpdateOption{engine.WithTag(channel)}, opts...)
	err := d.editor.Update(func(tx *engine.Tx) error {
		var err error
		handled, err = d.run(tx, cmd, 0)
		return err
	}, opts...)
	if err != nil {
		return false, fmt.Errorf("dispatcher: %s: %w", channel, err)
	}
	return handled, nil
}

// DispatchIn runs cmd inside a transaction the caller already holds, for
// code that runs within its own Editor.Update.
func (d *Dispatcher) DispatchIn(tx *engine.Tx, cmd command.Command) (bool, error) {
	handled, err := d.run(tx, cmd, 0)
	if err != nil {
		return false, fmt.Errorf("dispatcher: %s: %w", cmd.Channel(), err)
	}
	return handled, nil
}

func (d *Dispatcher) run(tx *engine.Tx, cmd command.Command, depth int) (bool, error) {
	if depth > d.config.MaxDepth {
		return false, fmt.Errorf("%w: %s at depth %d", ErrMaxDepth, cmd.Channel(), depth)
	}
	start := time.Now()

	ctx := execctx.New(tx, depth, func(next command.Command) (bool, error) {
		return d.run(tx, next, depth+1)
	}).WithLogger(d.logger)

	if !d.hooks.RunPreDispatch(&cmd, ctx) {
		return false, nil
	}

	result := handler.Unhandled()
	for _, h := range d.registry.Handlers(cmd.Channel()) {
		if d.config.RecoverFromPanic {
			result = d.executeWithRecovery(h, cmd, ctx)
		} else {
			result = h.Handle(cmd, ctx)
		}
		if result.Status != handler.StatusUnhandled {
			break
		}
	}

	d.hooks.RunPostDispatch(&cmd, ctx, &result)

	if d.metrics != nil {
		d.metrics.RecordDispatch(cmd.Channel(), time.Since(start), result.Status)
	}

	if result.IsError() {
		return false, result.Error
	}
	return result.IsHandled(), nil
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, cmd command.Command, ctx *execctx.Context) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			d.logger.Error("handler panic", "command", cmd.Channel(), "panic", r, "stack", string(stack[:n]))

			result = handler.Error(fmt.Errorf("%w: %v", ErrPanic, r))
			if d.metrics != nil {
				d.metrics.RecordPanic(cmd.Channel())
			}
		}
	}()

	return h.Handle(cmd, ctx)
}

// Editor returns the editor the dispatcher updates.
func (d *Dispatcher) Editor() *engine.Editor {
	return d.editor
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Hooks returns the hook manager.
func (d *Dispatcher) Hooks() *hook.Manager {
	return d.hooks
}

// Metrics returns the metrics collector (nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
