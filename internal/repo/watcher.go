package repo

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a repository's git metadata and reports when the
// checked-out branch or tag set may have changed. It watches the ref files
// rather than the working tree, so ordinary edits stay silent.
type Watcher struct {
	workDir string
	logger  *slog.Logger
	Ready   chan struct{}

	newWatcher func() (*fsnotify.Watcher, error)
}

// NewWatcher creates a Watcher for the repository rooted at workDir.
func NewWatcher(workDir string, logger *slog.Logger) *Watcher {
	return &Watcher{
		workDir:    workDir,
		logger:     logger.With("component", "watcher"),
		Ready:      make(chan struct{}),
		newWatcher: fsnotify.NewWatcher,
	}
}

// Watch starts monitoring and calls the callback, debounced, whenever the
// repository's HEAD or refs change. It blocks until the context is
// cancelled.
func (w *Watcher) Watch(ctx context.Context, callback func()) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	gitDir := filepath.Join(w.workDir, ".git")
	if err := watcher.Add(gitDir); err != nil {
		return err
	}
	// Tag and branch ref directories may not exist yet in a fresh
	// repository; missing ones are skipped and picked up via the packed
	// refs file updates instead.
	for _, sub := range []string{
		filepath.Join(gitDir, "refs", "tags"),
		filepath.Join(gitDir, "refs", "heads"),
	} {
		if _, statErr := os.Stat(sub); statErr == nil {
			if addErr := watcher.Add(sub); addErr != nil {
				w.logger.Error("failed to watch refs", "path", sub, "error", addErr)
			}
		}
	}

	w.logger.Info("watching repository", "dir", w.workDir)
	if w.Ready != nil {
		close(w.Ready)
	}

	var timer *time.Timer
	const debounceDuration = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-watcher.Errors:
			w.logger.Error("watcher error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDuration, callback)
		}
	}
}

// relevant filters events down to ref updates: HEAD rewrites, packed-refs
// rewrites, and anything under refs/.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
		return false
	}
	base := filepath.Base(event.Name)
	if base == "HEAD" || base == "packed-refs" {
		return true
	}
	dir := filepath.Base(filepath.Dir(event.Name))
	return dir == "tags" || dir == "heads"
}
