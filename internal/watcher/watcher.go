// Package watcher triggers index rebuilds when the catalog file changes.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the coalescing window for bursts of write events.
// Bulk catalog exports produce many writes in quick succession; one
// rebuild at the end is enough.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a single catalog file and emits one signal per
// settled change. The parent directory is watched rather than the file
// itself: editors and exporters typically replace the file via rename,
// which would silently drop a file-level watch.
type Watcher struct {
	path     string
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	changes chan struct{}
	stopped bool
}

// New creates a watcher for the catalog file at path. A non-positive
// debounce falls back to DefaultDebounce.
func New(path string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     path,
		debounce: debounce,
		changes:  make(chan struct{}, 1),
	}
}

// Changes returns the channel signaled after each settled change.
// The channel is closed when Run returns.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run watches until ctx is cancelled. The catalog file must exist when
// watching starts so a typo'd path fails loudly instead of waiting
// forever.
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := os.Stat(w.path); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	defer w.stop()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return err
	}
	slog.Info("watching catalog", "path", w.path, "debounce", w.debounce)

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("catalog event", "op", event.Op.String())
			w.schedule()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		}
	}
}

// schedule arms (or re-arms) the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

// fire emits one change signal. The buffered channel coalesces signals
// a slow consumer has not drained yet.
func (w *Watcher) fire() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.changes)
}
