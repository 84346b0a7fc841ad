package dispatcher

// Config holds dispatcher configuration options.
type Config struct {
	// MaxDepth caps nested dispatches from handlers. A top-level dispatch
	// has depth 0.
	MaxDepth int

	// EnableMetrics enables dispatch timing and statistics collection.
	EnableMetrics bool

	// RecoverFromPanic turns a handler panic into an ErrPanic error that
	// aborts the transaction. Without it the panic propagates to the
	// caller of Dispatch.
	RecoverFromPanic bool

	// Audit installs the audit hook, logging every dispatch at debug level.
	Audit bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxDepth:         8,
		EnableMetrics:    false,
		RecoverFromPanic: false,
		Audit:            false,
	}
}

// WithMaxDepth returns a copy of the config with the depth cap set.
func (c Config) WithMaxDepth(depth int) Config {
	c.MaxDepth = depth
	return c
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithAudit returns a copy of the config with the audit hook enabled.
func (c Config) WithAudit() Config {
	c.Audit = true
	return c
}
