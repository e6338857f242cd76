package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"scrollscene/internal/logx"
)

// settle is how long the file must stay quiet before it is re-read. Editors
// often write a file in several steps.
const settle = 100 * time.Millisecond

// Watcher re-reads a config file whenever it changes and publishes every
// valid result. Invalid edits are logged and skipped.
type Watcher struct {
	path    string
	log     *slog.Logger
	fs      *fsnotify.Watcher
	updates chan Config
}

// NewWatcher watches path. The parent directory is watched rather than the
// file so that atomic replace-by-rename saves are seen.
func NewWatcher(path string, log *slog.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("config: watch: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("config: watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:    abs,
		log:     logx.OrDiscard(log),
		fs:      fs,
		updates: make(chan Config, 1),
	}, nil
}

// Updates delivers reloaded configs. Only the newest pending one is kept.
func (w *Watcher) Updates() <-chan Config { return w.updates }

// Run processes file events until ctx is done. It closes the underlying
// watcher before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(settle)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("config watch error", "err", err)

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path, true)
	if err != nil {
		w.log.Warn("config reload rejected", "path", w.path, "err", err)
		return
	}
	// Replace any update the frame loop has not picked up yet.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.log.Info("config reloaded", "path", w.path)
}
