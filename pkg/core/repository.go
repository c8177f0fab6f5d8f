package core

import "context"

// Storage defines the contract of the durable key-value store holding slots.
// Adhering to this interface keeps the note store independent of the
// underlying mechanism (files, SQLite, bbolt, memory).
type Storage interface {
	// Initialize ensures the underlying storage is ready (e.g. create directories, schema, buckets).
	Initialize(ctx context.Context) error

	// Get returns the raw value of a slot, or ErrNotFound if it was never written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the whole value of a slot.
	Set(ctx context.Context, key string, value []byte) error
}

// Watchable defines storages that can report slot changes made by other processes.
type Watchable interface {
	// Watch emits events for slots whose key matches pattern.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Closer is implemented by storages holding open handles (database files).
type Closer interface {
	Close() error
}
