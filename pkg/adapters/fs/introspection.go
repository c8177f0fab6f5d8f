package fs

import (
	"github.com/aretw0/introspection"
)

// StorageState exposes internal state for observability.
type StorageState struct {
	Path          string `json:"path"`
	ReadOnly      bool   `json:"read_only"`
	WatcherActive bool   `json:"watcher_active"`
	Writes        int    `json:"writes"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StorageState{
		Path:          s.Path,
		ReadOnly:      s.readOnly,
		WatcherActive: s.watcherActive,
		Writes:        s.writes,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)

func (s *Storage) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
