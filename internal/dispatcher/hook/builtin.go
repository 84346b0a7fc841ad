package hook

import (
	"time"

	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/dispatcher/execctx"
	"github.com/mrdivyansh/lexical/internal/dispatcher/handler"
)

// Standard hook priorities.
const (
	PriorityAudit      = 1000 // Runs first (pre) / last (post)
	PriorityValidation = 800  // Validate before processing
	PriorityTiming     = 100
)

// Logger is the interface for logging hooks.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// AuditHook logs every dispatched command and its outcome.
type AuditHook struct {
	logger Logger
}

// NewAuditHook creates an audit hook with the given logger.
func NewAuditHook(logger Logger) *AuditHook {
	return &AuditHook{logger: logger}
}

// Name implements Hook.
func (h *AuditHook) Name() string { return "audit" }

// Priority implements Hook.
func (h *AuditHook) Priority() int { return PriorityAudit }

// PreDispatch logs the command being dispatched.
func (h *AuditHook) PreDispatch(cmd *command.Command, ctx *execctx.Context) bool {
	if h.logger != nil {
		h.logger.Debug("dispatch start",
			"command", cmd.Channel(),
			"depth", ctx.Depth,
			"selection", ctx.HasSelection(),
		)
	}
	return true
}

// PostDispatch logs the dispatch result.
func (h *AuditHook) PostDispatch(cmd *command.Command, ctx *execctx.Context, result *handler.Result) {
	if h.logger == nil {
		return
	}
	if result.IsError() {
		h.logger.Error("dispatch failed",
			"command", cmd.Channel(),
			"depth", ctx.Depth,
			"error", result.Error,
		)
		return
	}
	h.logger.Debug("dispatch complete",
		"command", cmd.Channel(),
		"depth", ctx.Depth,
		"status", result.Status.String(),
	)
}

// ValidationHook cancels commands that fail a validation function.
type ValidationHook struct {
	name     string
	priority int
	validate func(*command.Command, *execctx.Context) error
	logger   Logger
}

// NewValidationHook creates a validation hook. Rejections are logged to
// logger when it is not nil.
func NewValidationHook(name string, priority int, validate func(*command.Command, *execctx.Context) error, logger Logger) *ValidationHook {
	return &ValidationHook{name: name, priority: priority, validate: validate, logger: logger}
}

// Name implements Hook.
func (h *ValidationHook) Name() string { return h.name }

// Priority implements Hook.
func (h *ValidationHook) Priority() int { return h.priority }

// PreDispatch validates the command and cancels it if invalid.
func (h *ValidationHook) PreDispatch(cmd *command.Command, ctx *execctx.Context) bool {
	if h.validate == nil {
		return true
	}
	if err := h.validate(cmd, ctx); err != nil {
		if h.logger != nil {
			h.logger.Info("command rejected", "command", cmd.Channel(), "reason", err)
		}
		return false
	}
	return true
}

// ReadOnlyHook cancels commands that would change document content while
// the editor is read-only. Selection commands still pass.
type ReadOnlyHook struct {
	readOnly func() bool
}

// NewReadOnlyHook creates a read-only enforcement hook. readOnly is
// queried on every dispatch.
func NewReadOnlyHook(readOnly func() bool) *ReadOnlyHook {
	return &ReadOnlyHook{readOnly: readOnly}
}

// Name implements Hook.
func (h *ReadOnlyHook) Name() string { return "read-only" }

// Priority implements Hook.
func (h *ReadOnlyHook) Priority() int { return PriorityValidation }

// PreDispatch cancels mutating commands on a read-only editor.
func (h *ReadOnlyHook) PreDispatch(cmd *command.Command, _ *execctx.Context) bool {
	if h.readOnly == nil || !h.readOnly() {
		return true
	}
	return !cmd.Type.Mutates()
}

// TimingHook measures how long each command takes.
// Start times are stored on the Context so nested dispatches do not
// overwrite each other.
type TimingHook struct {
	callback func(channel string, duration time.Duration)
}

const timingStartKey = "_timing_start"

// NewTimingHook creates a timing hook.
func NewTimingHook(callback func(channel string, duration time.Duration)) *TimingHook {
	return &TimingHook{callback: callback}
}

// Name implements Hook.
func (h *TimingHook) Name() string { return "timing" }

// Priority implements Hook.
func (h *TimingHook) Priority() int { return PriorityTiming }

// PreDispatch records the start time on the context.
func (h *TimingHook) PreDispatch(_ *command.Command, ctx *execctx.Context) bool {
	ctx.SetData(timingStartKey, time.Now())
	return true
}

// PostDispatch reports the duration.
func (h *TimingHook) PostDispatch(cmd *command.Command, ctx *execctx.Context, _ *handler.Result) {
	v, ok := ctx.GetData(timingStartKey)
	if !ok || h.callback == nil {
		return
	}
	if start, ok := v.(time.Time); ok {
		h.callback(cmd.Channel(), time.Since(start))
	}
}
