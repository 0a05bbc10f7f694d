package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"deskcalc/internal/transient"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultReloadDelay batches the burst of events an editor save produces.
const DefaultReloadDelay = 100 * time.Millisecond

// Watcher reloads the config file whenever it changes on disk and hands the
// result to a callback. It watches the parent directory so that editors
// which replace the file on save are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func(*Config)
	reload   *transient.Debouncer
	logger   *zap.Logger
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string, onChange func(*Config), logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		watcher:  w,
		path:     abs,
		onChange: onChange,
		reload:   transient.NewDebouncer(DefaultReloadDelay),
		logger:   logger,
	}, nil
}

// Run processes events until ctx is cancelled. The underlying watcher is
// closed before Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		w.reload.Cancel()
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn("close watcher", zap.Error(err))
		}
	}()

	w.logger.Info("watching config", zap.String("path", w.path))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	w.logger.Debug("config changed", zap.String("op", event.Op.String()))
	w.reload.Debounce(w.load)
}

func (w *Watcher) load() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("reload failed, keeping current settings", zap.Error(err))
		return
	}
	w.onChange(cfg)
}
