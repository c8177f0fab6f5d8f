package fs

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/quill/pkg/core"
)

// Watch emits an event whenever a slot file matching pattern changes.
// Patterns use doublestar syntax over slot keys ("myData", "note*").
// The channel is closed once ctx is cancelled or the watcher fails.
func (s *Storage) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern: %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch vault: %w", err)
	}

	known := make(map[string]bool)
	if keys, err := s.Keys(); err == nil {
		for _, k := range keys {
			known[k] = true
		}
	}

	w := &watchLoop{
		storage: s,
		pattern: pattern,
		watcher: watcher,
		known:   known,
		events:  make(chan core.Event),
	}
	s.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		s.reportError(fmt.Errorf("watcher stopped: %w", err))
	}))
	return w.events, nil
}

type watchLoop struct {
	storage *Storage
	pattern string
	watcher *fsnotify.Watcher
	known   map[string]bool
	events  chan core.Event
}

func (w *watchLoop) run(ctx context.Context) (err error) {
	logger := w.storage.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer close(w.events)
	defer w.storage.setWatcherActive(false)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			logger.Debug("event received", "name", event.Name, "op", event.Op.String())

			e, ok := w.translate(event)
			if !ok {
				continue
			}
			select {
			case w.events <- e:
			case <-ctx.Done():
				return nil
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.storage.reportError(wErr)
		}
	}
}

// translate maps a filesystem notification to a slot event. Atomic writes
// surface as a create of the target, so a create of a known slot is a modify.
func (w *watchLoop) translate(event fsnotify.Event) (core.Event, bool) {
	key, ok := keyOf(event.Name)
	if !ok {
		return core.Event{}, false
	}
	if match, _ := doublestar.Match(w.pattern, key); !match {
		return core.Event{}, false
	}

	var t core.EventType
	switch {
	case event.Has(fsnotify.Create):
		t = core.EventCreate
		if w.known[key] {
			t = core.EventModify
		}
		w.known[key] = true
	case event.Has(fsnotify.Write):
		t = core.EventModify
		w.known[key] = true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		t = core.EventDelete
		delete(w.known, key)
	default:
		return core.Event{}, false
	}

	return core.Event{Type: t, Key: key, Timestamp: time.Now().Unix()}, true
}

func (s *Storage) reportError(err error) {
	s.config.Logger.Error("fsnotify error", "error", err)
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}
