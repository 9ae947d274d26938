package parser

import (
	"context"
	"log/slog"
)

// Logger receives the diagnostics of parsing and generation. Attributes
// are alternating key-value pairs:
//
//	logger.Debug("component added", "name", "SessionUser", "kind", "object")
//
// Every swagg package defaults to NopLogger. NewSlogAdapter wraps a
// *slog.Logger; the swagg command uses a zerolog adapter.
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)
	// With returns a Logger that adds attrs to every record.
	With(attrs ...any) Logger
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
func (n NopLogger) With(...any) Logger { return n }

// SlogAdapter is a Logger writing to a *slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter returns an adapter for logger, or for slog.Default() when
// logger is nil.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

func (s *SlogAdapter) Debug(msg string, attrs ...any) { s.log(slog.LevelDebug, msg, attrs) }
func (s *SlogAdapter) Info(msg string, attrs ...any)  { s.log(slog.LevelInfo, msg, attrs) }
func (s *SlogAdapter) Warn(msg string, attrs ...any)  { s.log(slog.LevelWarn, msg, attrs) }
func (s *SlogAdapter) Error(msg string, attrs ...any) { s.log(slog.LevelError, msg, attrs) }

// With returns an adapter for s's logger extended with attrs.
func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(attrs...)}
}

func (s *SlogAdapter) log(level slog.Level, msg string, attrs []any) {
	s.logger.Log(context.Background(), level, msg, attrs...)
}

var (
	_ Logger = NopLogger{}
	_ Logger = (*SlogAdapter)(nil)
)
