// Package bolt stores slots in a bbolt database file.
package bolt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	"go.etcd.io/bbolt"

	"github.com/aretw0/quill/pkg/core"
)

// DBFile is the database file name inside the vault directory.
const DBFile = "quill.bolt"

var slotsBucket = []byte("slots")

// Config holds the configuration for the bbolt storage.
type Config struct {
	Path      string // vault directory holding DBFile
	MustExist bool
	ReadOnly  bool
	Timeout   time.Duration // wait for the file lock; defaults to one second
	Logger    *slog.Logger
}

// Storage implements core.Storage with one bbolt bucket.
type Storage struct {
	config Config

	mu     sync.RWMutex
	db     *bbolt.DB
	writes int
}

// NewStorage creates a storage; the database is opened by Initialize.
func NewStorage(config Config) *Storage {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Second
	}
	return &Storage{config: config}
}

// File returns the database file path.
func (s *Storage) File() string {
	return filepath.Join(s.config.Path, DBFile)
}

// Initialize opens the database file and creates the slots bucket.
// Calling it again on an open storage is a no-op.
func (s *Storage) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return nil
	}

	if s.config.MustExist || s.config.ReadOnly {
		if _, err := os.Stat(s.File()); err != nil {
			return fmt.Errorf("database does not exist: %s", s.File())
		}
	} else if err := os.MkdirAll(s.config.Path, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	db, err := bbolt.Open(s.File(), 0600, &bbolt.Options{
		Timeout:  s.config.Timeout,
		ReadOnly: s.config.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	if !s.config.ReadOnly {
		err = db.Update(func(tx *bbolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(slotsBucket)
			return err
		})
		if err != nil {
			db.Close()
			return fmt.Errorf("creating bucket: %w", err)
		}
	}

	s.db = db
	s.config.Logger.Debug("bolt storage opened", "file", s.File())
	return nil
}

// Close releases the database file.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Get returns a copy of the slot value, or core.ErrNotFound.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errors.New("bolt storage is not initialized")
	}

	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(slotsBucket)
		if b == nil {
			return core.ErrNotFound
		}
		k, v := b.Cursor().Seek([]byte(key))
		if k == nil || !bytes.Equal(k, []byte(key)) {
			return core.ErrNotFound
		}
		// Values are only valid inside the transaction.
		value = append([]byte{}, v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set replaces the slot value.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return errors.New("bolt storage is not initialized")
	}
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(slotsBucket).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrStorageWrite, err)
	}
	s.writes++
	return nil
}

// StorageState exposes internal state for observability.
type StorageState struct {
	File     string `json:"file"`
	Open     bool   `json:"open"`
	ReadOnly bool   `json:"read_only"`
	Writes   int    `json:"writes"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StorageState{
		File:     s.File(),
		Open:     s.db != nil,
		ReadOnly: s.config.ReadOnly,
		Writes:   s.writes,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "bolt"
}

var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)
