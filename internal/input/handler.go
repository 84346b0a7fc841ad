package input

import (
	"sync"

	"github.com/mrdivyansh/lexical/internal/dispatcher"
	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/input/key"
	"github.com/mrdivyansh/lexical/internal/input/keymap"
	"github.com/mrdivyansh/lexical/internal/logging"
)

// Hook intercepts key handling.
type Hook interface {
	// PreKeyEvent runs before the event is resolved. Returning true
	// swallows the event: it is not dispatched and reported unconsumed.
	PreKeyEvent(ev *key.Event) bool

	// PostKeyEvent runs after dispatch. cmd is nil when the event
	// resolved to no command.
	PostKeyEvent(ev *key.Event, cmd *command.Command, handled bool)
}

// Option configures a Handler.
type Option func(*Handler)

// WithKeymaps replaces the built-in keymap registry.
func WithKeymaps(r *keymap.Registry) Option {
	return func(h *Handler) {
		if r != nil {
			h.keymaps = r
		}
	}
}

// WithLogger sets the handler's logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l.WithComponent("input")
		}
	}
}

// Handler routes key events to a dispatcher.
type Handler struct {
	mu         sync.RWMutex
	dispatcher *dispatcher.Dispatcher
	keymaps    *keymap.Registry
	hooks      []Hook
	logger     *logging.Logger
}

// NewHandler creates a handler dispatching on d. Without WithKeymaps it
// resolves events with the built-in keymap.
func NewHandler(d *dispatcher.Dispatcher, opts ...Option) *Handler {
	h := &Handler{dispatcher: d, logger: logging.Null}
	for _, opt := range opts {
		opt(h)
	}
	if h.keymaps == nil {
		h.keymaps = keymap.NewRegistry()
		_ = keymap.LoadDefaults(h.keymaps)
	}
	return h
}

// Keymaps returns the registry events are resolved against.
func (h *Handler) Keymaps() *keymap.Registry {
	return h.keymaps
}

// AddHook appends a hook.
func (h *Handler) AddHook(hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// RemoveHook removes a hook added with AddHook.
func (h *Handler) RemoveHook(hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, x := range h.hooks {
		if x == hook {
			h.hooks = append(h.hooks[:i], h.hooks[i+1:]...)
			return
		}
	}
}

// Resolve returns the command ev maps to.
func (h *Handler) Resolve(ev *key.Event) (command.Command, bool) {
	return resolve(h.keymaps, ev)
}

// HandleKey resolves and dispatches ev. It reports whether the event was
// consumed, in which case the front end must not apply its own default.
// Dispatch errors are returned after post-hooks ran.
func (h *Handler) HandleKey(ev *key.Event) (bool, error) {
	if ev == nil {
		return false, nil
	}
	h.mu.RLock()
	hooks := append([]Hook(nil), h.hooks...)
	h.mu.RUnlock()

	for _, hook := range hooks {
		if hook.PreKeyEvent(ev) {
			h.logger.Debug("key swallowed by hook", "key", ev.String())
			return false, nil
		}
	}

	cmd, ok := h.Resolve(ev)
	if !ok {
		for _, hook := range hooks {
			hook.PostKeyEvent(ev, nil, false)
		}
		return false, nil
	}

	handled, err := h.dispatcher.Dispatch(cmd)
	if handled && !cmd.Type.IsKey() {
		ev.PreventDefault()
	}
	h.logger.Debug("key handled", "key", ev.String(), "command", cmd.Channel(), "handled", handled)
	for _, hook := range hooks {
		hook.PostKeyEvent(ev, &cmd, handled)
	}
	return ev.DefaultPrevented(), err
}
