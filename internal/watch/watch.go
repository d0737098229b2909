// Package watch rebuilds the site when its source directories change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last change.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls OnChange once a burst of file events has settled.
type Watcher struct {
	Roots    []string
	Debounce time.Duration
	OnChange func()
	Logger   *slog.Logger

	fsw *fsnotify.Watcher
}

// Start adds every directory under Roots to the watch list. Missing roots
// are skipped.
func (w *Watcher) Start() error {
	if w.Logger == nil {
		w.Logger = slog.Default()
	}
	if w.Debounce <= 0 {
		w.Debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	w.fsw = fsw

	for _, root := range w.Roots {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			w.Logger.Info("directory not found, not watching", "dir", root)
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				w.Logger.Warn("walk failed", "path", path, "error", err)
				return nil
			}
			if d.IsDir() {
				if err := fsw.Add(path); err != nil {
					w.Logger.Warn("watch failed", "path", path, "error", err)
				}
			}
			return nil
		})
		if err != nil {
			fsw.Close()
			return fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return nil
}

// Run dispatches events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			w.Logger.Info("change detected", "path", event.Name, "op", event.Op.String())

			// New subdirectories are not watched automatically.
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := w.fsw.Add(event.Name); err != nil {
					w.Logger.Warn("watch failed", "path", event.Name, "error", err)
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.Debounce, w.OnChange)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.Logger.Error("watcher error", "error", err)
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
