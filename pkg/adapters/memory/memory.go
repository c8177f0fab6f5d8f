// Package memory keeps slots in process memory. Nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/quill/pkg/core"
)

// Storage implements core.Storage and core.Watchable over a map.
type Storage struct {
	mu       sync.RWMutex
	slots    map[string][]byte
	readOnly bool
	writes   int

	watchers map[*watcher]struct{}
}

type watcher struct {
	pattern string
	events  chan core.Event
}

// Option configures a memory storage.
type Option func(*Storage)

// WithReadOnly rejects writes with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return func(s *Storage) {
		s.readOnly = enabled
	}
}

// WithSlot seeds a slot value.
func WithSlot(key string, value []byte) Option {
	return func(s *Storage) {
		s.slots[key] = append([]byte{}, value...)
	}
}

// New creates an empty storage.
func New(opts ...Option) *Storage {
	s := &Storage{
		slots:    make(map[string][]byte),
		watchers: make(map[*watcher]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize is a no-op.
func (s *Storage) Initialize(ctx context.Context) error { return nil }

// Get returns a copy of the slot value, or core.ErrNotFound.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.slots[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return append([]byte{}, v...), nil
}

// Set replaces the slot value and notifies matching watchers.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return core.ErrReadOnly
	}
	t := core.EventModify
	if _, ok := s.slots[key]; !ok {
		t = core.EventCreate
	}
	s.slots[key] = append([]byte{}, value...)
	s.writes++

	s.notify(core.Event{Type: t, Key: key, Timestamp: time.Now().Unix()})
	return nil
}

// notify delivers without blocking; a watcher that is not keeping up misses events.
func (s *Storage) notify(e core.Event) {
	for w := range s.watchers {
		if ok, _ := doublestar.Match(w.pattern, e.Key); !ok {
			continue
		}
		select {
		case w.events <- e:
		default:
		}
	}
}

// Watch emits events for slots matching pattern until ctx is cancelled.
func (s *Storage) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern: %q", pattern)
	}

	w := &watcher{pattern: pattern, events: make(chan core.Event, 16)}
	s.mu.Lock()
	s.watchers[w] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, w)
		close(w.events)
		s.mu.Unlock()
	}()
	return w.events, nil
}

// StorageState exposes internal state for observability.
type StorageState struct {
	Slots    int  `json:"slots"`
	Watchers int  `json:"watchers"`
	ReadOnly bool `json:"read_only"`
	Writes   int  `json:"writes"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StorageState{
		Slots:    len(s.slots),
		Watchers: len(s.watchers),
		ReadOnly: s.readOnly,
		Writes:   s.writes,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "memory"
}

var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)
var _ core.Watchable = (*Storage)(nil)
