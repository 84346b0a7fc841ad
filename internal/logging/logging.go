// Package logging provides the leveled, field-carrying logger shared by the
// engine, dispatcher, plugins and command line driver.
//
// Messages take alternating key/value pairs, the same calling convention as
// log/slog, and are written through a slog handler so output can be text or
// JSON.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Level represents the severity level of a log message.
type Level int

const (
	// LevelDebug is for detailed debugging information.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name. Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config configures a Logger.
type Config struct {
	// Level is the minimum level written.
	Level Level
	// Output defaults to os.Stderr.
	Output io.Writer
	// Format is "text" or "json".
	Format string
	// Prefix is attached to every record as the "app" attribute.
	Prefix string
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Output: os.Stderr,
		Format: "text",
		Prefix: "richtext",
	}
}

// Logger is a leveled structured logger. Loggers derived with WithField
// share their parent's level and output.
type Logger struct {
	level    *slog.LevelVar
	base     *slog.Logger
	disabled bool
}

// New creates a logger from cfg.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	lv := new(slog.LevelVar)
	lv.Set(cfg.Level.slog())

	opts := &slog.HandlerOptions{Level: lv}
	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(&syncWriter{w: cfg.Output}, opts)
	} else {
		h = slog.NewTextHandler(&syncWriter{w: cfg.Output}, opts)
	}
	base := slog.New(h)
	if cfg.Prefix != "" {
		base = base.With("app", cfg.Prefix)
	}
	return &Logger{level: lv, base: base}
}

// syncWriter serializes writes from loggers sharing one output.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Null is a logger that discards all output.
var Null = &Logger{disabled: true}

// WithField returns a logger that adds key=value to every record.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.With(key, value)
}

// With returns a logger that adds the key/value pairs to every record.
func (l *Logger) With(keysAndValues ...any) *Logger {
	if l == nil || l.disabled {
		return l
	}
	return &Logger{level: l.level, base: l.base.With(keysAndValues...)}
}

// WithComponent returns a logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.With("component", component)
}

// SetLevel changes the minimum level for this logger and every logger
// derived from the same root.
func (l *Logger) SetLevel(level Level) {
	if l == nil || l.disabled {
		return
	}
	l.level.Set(level.slog())
}

// Enabled reports whether records at level are written.
func (l *Logger) Enabled(level Level) bool {
	if l == nil || l.disabled {
		return false
	}
	return l.base.Enabled(context.Background(), level.slog())
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.log(LevelDebug, msg, keysAndValues)
}

// Info logs an info message.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.log(LevelInfo, msg, keysAndValues)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.log(LevelWarn, msg, keysAndValues)
}

// Error logs an error message.
func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.log(LevelError, msg, keysAndValues)
}

func (l *Logger) log(level Level, msg string, kv []any) {
	if l == nil || l.disabled {
		return
	}
	l.base.Log(context.Background(), level.slog(), msg, kv...)
}
