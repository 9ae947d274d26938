package commands

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swagg-dev/swagg/internal/testutil"
	"github.com/swagg-dev/swagg/parser"
)

const watchTimeout = 5 * time.Second

func TestSpecWatcherDebouncesChanges(t *testing.T) {
	spec := testutil.WriteSpec(t, "session.yaml", testutil.SessionYAML)
	changes := make(chan struct{}, 8)

	sw, err := newSpecWatcher(spec, 50*time.Millisecond, parser.NopLogger{}, func() {
		changes <- struct{}{}
	})
	require.NoError(t, err)
	defer func() { _ = sw.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sw.Start(ctx) }()

	// A sibling file is ignored.
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(spec), "other.yaml"), []byte("x"), 0o600))
	select {
	case <-changes:
		t.Fatal("change of an unrelated file triggered the watcher")
	case <-time.After(200 * time.Millisecond):
	}

	// A burst of writes fires once.
	for range 3 {
		require.NoError(t, os.WriteFile(spec, []byte(testutil.SessionYAML), 0o600))
	}
	select {
	case <-changes:
	case <-time.After(watchTimeout):
		t.Fatal("no change reported")
	}
	select {
	case <-changes:
		t.Fatal("burst reported more than once")
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(watchTimeout):
		t.Fatal("watcher did not stop")
	}
}

func TestNewSpecWatcherMissingDirectory(t *testing.T) {
	_, err := newSpecWatcher(filepath.Join(t.TempDir(), "missing", "spec.yaml"), time.Millisecond, parser.NopLogger{}, func() {})
	assert.Error(t, err)
}

func TestWatchAndGenerate(t *testing.T) {
	spec := testutil.WriteSpec(t, "session.yaml", testutil.SessionYAML)
	cfg := &GenerateConfig{Input: spec, Out: t.TempDir(), Debounce: 20 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan struct{}, 8)
	saved := generateRunner
	generateRunner = func(context.Context, *GenerateConfig, parser.Logger, io.Writer) error {
		runs <- struct{}{}
		return nil
	}
	t.Cleanup(func() { generateRunner = saved })

	done := make(chan error, 1)
	go func() { done <- watchAndGenerate(ctx, cfg, parser.NopLogger{}, io.Discard) }()

	select {
	case <-runs:
	case <-time.After(watchTimeout):
		t.Fatal("initial generation did not run")
	}

	require.NoError(t, os.WriteFile(spec, []byte(testutil.SessionYAML), 0o600))
	select {
	case <-runs:
	case <-time.After(watchTimeout):
		t.Fatal("change did not regenerate")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(watchTimeout):
		t.Fatal("watch did not stop")
	}
}
