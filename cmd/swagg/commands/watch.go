package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/swagg-dev/swagg/internal/cliutil"
	"github.com/swagg-dev/swagg/parser"
)

// specWatcher calls onChange once per burst of changes to a single file.
type specWatcher struct {
	watcher  *fsnotify.Watcher
	target   string
	debounce time.Duration
	onChange func()
	logger   parser.Logger
}

// newSpecWatcher watches the directory holding path, so that editors which
// replace the file on save are still seen.
func newSpecWatcher(path string, debounce time.Duration, logger parser.Logger, onChange func()) (*specWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", filepath.Dir(abs), err)
	}
	return &specWatcher{
		watcher:  watcher,
		target:   abs,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}, nil
}

// Start blocks until ctx is done or the watcher fails.
func (sw *specWatcher) Start(ctx context.Context) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if !sw.relevant(event) {
				continue
			}
			sw.logger.Debug("spec changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(sw.debounce)
			} else {
				timer.Reset(sw.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			sw.onChange()
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if err != nil {
				sw.logger.Warn("watcher error", "error", err)
			}
		}
	}
}

func (sw *specWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != sw.target {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}

// Close stops the watcher.
func (sw *specWatcher) Close() error {
	return sw.watcher.Close()
}

// watchAndGenerate generates once and again after every change of the
// spec file. Generation errors are reported and watching continues.
func watchAndGenerate(ctx context.Context, cfg *GenerateConfig, logger parser.Logger, w io.Writer) error {
	regenerate := func() {
		if err := generateRunner(ctx, cfg, logger, w); err != nil {
			cliutil.Writef(w, "Error: %v\n", err)
		}
	}

	sw, err := newSpecWatcher(cfg.Input, cfg.Debounce, logger, regenerate)
	if err != nil {
		return err
	}
	defer func() { _ = sw.Close() }()

	regenerate()
	logger.Info("watching for changes", "path", cfg.Input)

	if err := sw.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
