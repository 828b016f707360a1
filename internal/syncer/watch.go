package syncer

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/wunjo/internal/apperr"
)

// SyncCallback is called after every watcher-driven pipeline run.
type SyncCallback func(res *Result)

const watchDebounce = 500 * time.Millisecond

// Watch starts an fsnotify watcher on the vault root and re-runs the
// pipeline after bursts of file changes settle, until ctx is cancelled.
// A checksum snapshot of the vault gates each run: editors that rewrite
// files without changing content do not trigger a sync.
//
// New directories created at runtime are added to the watch list.
func (p *Pipeline) Watch(ctx context.Context, cb SyncCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, p.vault.Root()); err != nil {
		return err
	}

	p.logger.Info("watcher started", slog.String("root", p.vault.Root()))

	lastState, err := p.vault.State()
	if err != nil {
		p.logger.Warn("initial vault snapshot failed", slog.String("error", err.Error()))
	}

	var debounce *time.Timer
	var debounceCh <-chan time.Time

	scheduleSync := func() {
		if debounce == nil {
			debounce = time.NewTimer(watchDebounce)
			debounceCh = debounce.C
		} else {
			debounce.Reset(watchDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			p.logger.Info("watcher stopped")
			return nil

		case <-debounceCh:
			state, err := p.vault.State()
			if err != nil {
				p.logger.Warn("vault snapshot failed", slog.String("error", err.Error()))
				state = nil
			}
			if state != nil && lastState != nil && maps.Equal(state, lastState) {
				p.logger.Debug("vault unchanged, skipping sync")
				continue
			}
			lastState = state

			res, err := p.Run(ctx)
			if err != nil {
				if errors.Is(err, apperr.ErrSyncLocked) {
					// Another process holds the lock; retry after the
					// debounce interval instead of dropping the change.
					p.logger.Warn("sync in progress elsewhere, retrying")
					lastState = nil
					scheduleSync()
					continue
				}
				p.logger.Error("watcher sync failed", slog.String("error", err.Error()))
				continue
			}
			if cb != nil {
				cb(res)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						p.logger.Warn("watching new dir failed",
							slog.String("path", ev.Name), slog.String("error", addErr.Error()))
					}
				}
			}
			if ev.Op&fsnotify.Chmod != 0 && ev.Op&^fsnotify.Chmod == 0 {
				continue
			}
			scheduleSync()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			p.logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
