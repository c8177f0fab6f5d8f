// Package fs stores slots as JSON files in a vault directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/quill/pkg/core"
)

// SlotExt is the file extension of a slot file.
const SlotExt = ".json"

// Storage implements core.Storage on top of the filesystem.
// Each slot key maps to <Path>/<key>.json.
type Storage struct {
	Path   string
	config Config

	mu            sync.RWMutex
	readOnly      bool
	watcherActive bool
	writes        int
}

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path         string
	AutoInit     bool
	MustExist    bool
	ReadOnly     bool
	Logger       *slog.Logger
	ErrorHandler func(error) // Called on watcher faults; falls back to the logger.
}

// NewStorage creates a new filesystem-backed storage.
func NewStorage(config Config) *Storage {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Storage{
		Path:     config.Path,
		config:   config,
		readOnly: config.ReadOnly,
	}
}

// Initialize prepares the vault directory.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.readOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat vault: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", s.Path)
		}
		return nil
	}

	if !s.config.AutoInit {
		if _, err := os.Stat(s.Path); os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist (enable auto-init to create it): %s", s.Path)
		}
	}
	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create vault directory: %w", err)
	}
	return nil
}

// Get returns the content of the slot file, or core.ErrNotFound when absent.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.slotPath(key)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot file: %w", err)
	}
	return data, nil
}

// Set replaces the slot file atomically.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.slotPath(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return core.ErrReadOnly
	}
	if err := writeFileAtomic(path, value, 0644); err != nil {
		return fmt.Errorf("%w: %w", core.ErrStorageWrite, err)
	}
	s.writes++
	s.config.Logger.Debug("slot written", "key", key, "path", path, "bytes", len(value))
	return nil
}

// slotPath maps a key to its file. Keys are flat names: separators and
// parent references are rejected so a slot cannot escape the vault.
func (s *Storage) slotPath(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.Path, key+SlotExt), nil
}

// ValidateKey reports whether key can name a slot file.
func ValidateKey(key string) error {
	switch {
	case key == "":
		return errors.New("slot key cannot be empty")
	case key == "." || key == "..":
		return fmt.Errorf("invalid slot key %q", key)
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("slot key %q cannot contain path separators", key)
	case strings.HasPrefix(key, TempFilePrefix):
		return fmt.Errorf("slot key %q uses a reserved prefix", key)
	}
	return nil
}

// keyOf maps a file name back to its slot key.
func keyOf(name string) (string, bool) {
	base := filepath.Base(name)
	if strings.HasPrefix(base, TempFilePrefix) || filepath.Ext(base) != SlotExt {
		return "", false
	}
	key := strings.TrimSuffix(base, SlotExt)
	return key, key != ""
}

// Keys lists the slots present in the vault.
func (s *Storage) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to list vault: %w", err)
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if key, ok := keyOf(e.Name()); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
