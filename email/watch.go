package email

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// pollInterval is the fallback reload cadence when fsnotify is unavailable.
const pollInterval = time.Second

// Watch reloads the corpus whenever its file changes, until the context is
// canceled. Uses fsnotify with a mtime-polling fallback. Returns
// immediately for stores not backed by a file.
//
// Reload failures keep the previous corpus; a half-written file should not
// empty the index mid-workshop.
func (s *Store) Watch(ctx context.Context) {
	if s.path == "" {
		return
	}

	go func() {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			s.watchPolling(ctx)
			return
		}
		defer watcher.Close()

		// Watch the directory; editors replace files rather than write
		// them in place.
		if err := watcher.Add(filepath.Dir(s.path)); err != nil {
			watcher.Close()
			s.watchPolling(ctx)
			return
		}

		baseName := filepath.Base(s.path)
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != baseName {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := s.reload(); err != nil {
					s.logger.Warn("corpus reload failed", "path", s.path, "err", err)
					continue
				}
				s.logger.Info("corpus reloaded", "path", s.path, "emails", s.Len())

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

// watchPolling reloads on mtime changes.
func (s *Store) watchPolling(ctx context.Context) {
	var lastMod time.Time
	if info, err := os.Stat(s.path); err == nil {
		lastMod = info.ModTime()
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			info, err := os.Stat(s.path)
			if err != nil {
				continue
			}
			if !info.ModTime().After(lastMod) {
				continue
			}
			lastMod = info.ModTime()
			if err := s.reload(); err != nil {
				s.logger.Warn("corpus reload failed", "path", s.path, "err", err)
			}
		}
	}
}
