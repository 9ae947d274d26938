package cliutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swagg-dev/swagg/internal/issues"
	"github.com/swagg-dev/swagg/internal/severity"
)

func TestWritef(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{"no args", "Generated 3 file(s)", nil, "Generated 3 file(s)"},
		{"mixed args", "%s: %d component(s), strict=%v", []any{"petstore", 2, true}, "petstore: 2 component(s), strict=true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Writef(&buf, tt.format, tt.args...)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestWritefIgnoresWriteErrors(t *testing.T) {
	assert.NotPanics(t, func() { Writef(failingWriter{}, "lost") })
}

func TestWriteIssues(t *testing.T) {
	list := []*issues.Issue{
		issues.Info("paths./a.get", "", "header parameter ignored"),
		nil,
		issues.Warning("components.schemas.Shape", "Shape", "unsupported schema, component skipped"),
	}

	var buf bytes.Buffer
	assert.Equal(t, 1, WriteIssues(&buf, list, severity.SeverityWarning))
	assert.Equal(t, "⚠ components.schemas.Shape: unsupported schema, component skipped\n", buf.String())

	buf.Reset()
	assert.Equal(t, 2, WriteIssues(&buf, list, severity.SeverityInfo))
	assert.Equal(t, "ℹ paths./a.get: header parameter ignored\n"+
		"⚠ components.schemas.Shape: unsupported schema, component skipped\n", buf.String())
}
