package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Slot        string `json:"slot"`
	StorageType string `json:"storage_type"`
	ReadOnly    bool   `json:"read_only"`
	Appended    int    `json:"appended"`
}

// State implements introspection.Introspectable.
func (s *NoteStore) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	storageType := "unknown"
	if s.storage != nil {
		storageType = "storage"
		if comp, ok := s.storage.(introspection.Component); ok {
			storageType = comp.ComponentType()
		}
	}

	return StoreState{
		Slot:        s.key,
		StorageType: storageType,
		ReadOnly:    s.readOnly,
		Appended:    s.appended,
	}
}

// ComponentType implements introspection.Component.
func (s *NoteStore) ComponentType() string {
	return "note-store"
}

var _ introspection.Introspectable = (*NoteStore)(nil)
var _ introspection.Component = (*NoteStore)(nil)
