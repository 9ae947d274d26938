package parser

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debug("ignored", "key", "value")
	l.Info("ignored")
	l.Warn("ignored")
	l.Error("ignored")
	_, ok := l.With("key", "value").(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	t.Run("NewSlogAdapter with nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		assert.NotNil(t, adapter.logger)
	})

	levels := []struct {
		name  string
		log   func(Logger)
		level string
		attr  string
	}{
		{"debug", func(l Logger) { l.Debug("msg", "foo", "bar") }, "DEBUG", "foo=bar"},
		{"info", func(l Logger) { l.Info("msg", "count", 42) }, "INFO", "count=42"},
		{"warn", func(l Logger) { l.Warn("msg", "problem", "x") }, "WARN", "problem=x"},
		{"error", func(l Logger) { l.Error("msg", "err", "failed") }, "ERROR", "err=failed"},
	}
	for _, tt := range levels {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
			tt.log(adapter)
			assert.Contains(t, buf.String(), "level="+tt.level)
			assert.Contains(t, buf.String(), tt.attr)
		})
	}

	t.Run("With adds attributes", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
		adapter.With("component", "highway").Debug("built", "count", 3)
		assert.Contains(t, buf.String(), "component=highway")
		assert.Contains(t, buf.String(), "count=3")
	})
}

func TestParseWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	_, err := ParseWithOptions(
		WithBytes([]byte("openapi: 3.0.3\ninfo: {title: T, version: '1'}\npaths: {}\n")),
		WithLogger(logger),
	)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "parsed document")
	assert.Contains(t, buf.String(), "source=ParseBytes")
}
