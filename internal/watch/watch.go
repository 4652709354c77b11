// Package watch rebuilds the documentation whenever the input tree changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWindow is the debounce quiet window between the last filesystem
// event and the rebuild it triggers.
const DefaultWindow = 300 * time.Millisecond

// Rebuild runs one full build. It is never invoked concurrently with itself.
type Rebuild func(ctx context.Context) error

// Watcher observes the input directory recursively and schedules rebuilds.
type Watcher struct {
	inputDir string
	// exclude lists absolute directory prefixes that never trigger a
	// rebuild, typically the output directory when nested in the input.
	exclude []string
	window  time.Duration
	rebuild Rebuild
}

func New(inputDir string, exclude []string, window time.Duration, rebuild Rebuild) *Watcher {
	if window <= 0 {
		window = DefaultWindow
	}
	abs := make([]string, 0, len(exclude))
	for _, dir := range exclude {
		if a, err := filepath.Abs(dir); err == nil {
			abs = append(abs, a)
		}
	}
	return &Watcher{inputDir: inputDir, exclude: abs, window: window, rebuild: rebuild}
}

// Run blocks until ctx is cancelled, rebuilding after every settled burst of
// changes. A failing rebuild is logged and the watch continues.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addTree(fsw, w.inputDir); err != nil {
		return err
	}

	pending := make(chan struct{}, 1)
	debouncer := NewDebouncer(w.window, func() {
		select {
		case pending <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	slog.Info("Watching for changes", "dir", w.inputDir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.excluded(event.Name) {
				continue
			}
			// New directories need their own watch before their
			// contents can be seen.
			if event.Op.Has(fsnotify.Create) {
				if err := w.addTree(fsw, event.Name); err != nil {
					slog.Debug("Cannot watch new path", "path", event.Name, "error", err)
				}
			}
			slog.Debug("Change detected", "path", event.Name, "op", event.Op.String())
			debouncer.Trigger()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)

		case <-pending:
			start := time.Now()
			if err := w.rebuild(ctx); err != nil {
				slog.Error("Rebuild failed", "error", err)
				continue
			}
			slog.Info("Rebuilt", "duration", time.Since(start))
		}
	}
}

func (w *Watcher) addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.excluded(path) || (path != root && strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

func (w *Watcher) excluded(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range w.exclude {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
