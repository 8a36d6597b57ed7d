package logging

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger is the minimal logging interface consumed by memmesh components.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config controls handler construction for NewLogger.
type Config struct {
	Level  slog.Level
	Format string // "json" (default) or "text"
	Output io.Writer
}

// NewLogger builds a Logger backed by slog with the given configuration.
func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		cfg = &Config{}
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	return &SlogAdapter{Logger: slog.New(handler)}
}

// SlogAdapter wraps *slog.Logger to implement Logger.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewDefaultSlogLogger creates a Logger from slog.Default().
func NewDefaultSlogLogger() Logger {
	return &SlogAdapter{Logger: slog.Default()}
}

// LogProviderCall records latency and outcome of an external embedding or
// completion call.
func LogProviderCall(l Logger, provider, op string, dur time.Duration, err error) {
	if err != nil {
		l.Error("provider call failed", "provider", provider, "op", op, "duration_ms", dur.Milliseconds(), "error", err.Error())
		return
	}
	l.Debug("provider call completed", "provider", provider, "op", op, "duration_ms", dur.Milliseconds())
}

// LogRetrieval records the shape of a retrieval pass: candidate count, the
// tier that was selected and the best score in it.
func LogRetrieval(l Logger, candidates int, tier string, topScore float64) {
	l.Debug("retrieval completed", "candidates", candidates, "tier", tier, "top_score", topScore)
}

// NoOpLogger discards all log messages.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}
