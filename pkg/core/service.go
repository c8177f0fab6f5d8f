package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// DefaultSlot is the storage key holding the note collection.
const DefaultSlot = "myData"

// maxIDAttempts bounds regeneration when a fresh ID collides with a stored one.
const maxIDAttempts = 8

// NoteStore handles the business logic for the note collection.
// It is the only component that touches the storage slot.
//
// Appends are serialised within the process. Other processes writing the same
// slot are not coordinated: the whole slot is replaced on every append, so the
// last writer wins.
type NoteStore struct {
	storage  Storage
	key      string
	newID    func() string
	logger   *slog.Logger
	readOnly bool

	mu       sync.RWMutex
	appended int
}

// StoreOption configures a NoteStore.
type StoreOption func(*NoteStore)

// WithSlot sets the storage key of the collection.
func WithSlot(key string) StoreOption {
	return func(s *NoteStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithIDGenerator replaces the UUID generator (useful for deterministic tests).
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *NoteStore) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithStoreLogger sets the logger used for submissions and storage faults.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *NoteStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithReadOnlyStore rejects every append with ErrReadOnly.
func WithReadOnlyStore(enabled bool) StoreOption {
	return func(s *NoteStore) {
		s.readOnly = enabled
	}
}

// NewNoteStore creates a new NoteStore on top of storage.
func NewNoteStore(storage Storage, opts ...StoreOption) *NoteStore {
	s := &NoteStore{
		storage: storage,
		key:     DefaultSlot,
		newID:   uuid.NewString,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Slot returns the storage key of the collection.
func (s *NoteStore) Slot() string { return s.key }

// Storage returns the underlying storage adapter.
func (s *NoteStore) Storage() Storage { return s.storage }

// Load reads the persisted collection.
// A slot that was never written (or holds an empty value) is an empty collection.
// A slot holding anything else than a note array fails with ErrCorruptSlot.
func (s *NoteStore) Load(ctx context.Context) (Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(ctx)
}

func (s *NoteStore) load(ctx context.Context) (Collection, error) {
	data, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %q: %w", s.key, err)
	}

	c, err := UnmarshalCollection(data)
	if err != nil {
		s.logger.Error("slot holds malformed data", "slot", s.key, "error", err)
		return nil, fmt.Errorf("slot %q: %w", s.key, err)
	}
	return c, nil
}

// Append adds n at the end of the collection and replaces the slot wholesale.
// On failure the slot is left as it was.
func (s *NoteStore) Append(ctx context.Context, n Note) error {
	if n.ID == "" {
		return errors.New("note ID cannot be empty")
	}
	if s.readOnly {
		return ErrReadOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	if err != nil {
		return err
	}
	if c.Has(n.ID) {
		return fmt.Errorf("note %q already exists", n.ID)
	}
	return s.write(ctx, append(c, n))
}

// Submit builds a note with a fresh ID around content and appends it.
// Content is stored as given, including the empty string.
func (s *NoteStore) Submit(ctx context.Context, content string) (Note, error) {
	if s.readOnly {
		return Note{}, ErrReadOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	if err != nil {
		return Note{}, err
	}

	id, err := s.freshID(c)
	if err != nil {
		return Note{}, err
	}

	n := Note{ID: id, Content: content}
	if err := s.write(ctx, append(c, n)); err != nil {
		return Note{}, err
	}

	s.logger.Info("note appended", "id", n.ID, "slot", s.key, "bytes", len(n.Content), "total", len(c)+1)
	return n, nil
}

func (s *NoteStore) freshID(c Collection) (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		if id != "" && !c.Has(id) {
			return id, nil
		}
		s.logger.Warn("generated note ID collides, regenerating", "id", id)
	}
	return "", errors.New("failed to generate a unique note ID")
}

func (s *NoteStore) write(ctx context.Context, c Collection) error {
	data, err := c.MarshalSlot()
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		s.logger.Error("failed to write slot", "slot", s.key, "error", err)
		if errors.Is(err, ErrStorageWrite) || errors.Is(err, ErrReadOnly) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	s.appended++
	return nil
}

// Get retrieves a note by its ID.
func (s *NoteStore) Get(ctx context.Context, id string) (Note, error) {
	if id == "" {
		return Note{}, errors.New("note ID cannot be empty")
	}
	c, err := s.Load(ctx)
	if err != nil {
		return Note{}, err
	}
	n, ok := c.Find(id)
	if !ok {
		return Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return n, nil
}

// Watch observes changes of the collection slot made by other processes, if supported.
func (s *NoteStore) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.storage.(Watchable)
	if !ok {
		return nil, errors.New("storage does not support watching")
	}
	return w.Watch(ctx, s.key)
}

// Close releases the storage handle when the adapter holds one.
func (s *NoteStore) Close() error {
	if c, ok := s.storage.(Closer); ok {
		return c.Close()
	}
	return nil
}
