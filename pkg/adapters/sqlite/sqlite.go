// Package sqlite stores slots as rows of a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/introspection"
	_ "modernc.org/sqlite"

	"github.com/aretw0/quill/pkg/core"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DBFile is the database file name inside the vault directory.
const DBFile = "quill.db"

// Config holds the configuration for the SQLite storage.
type Config struct {
	// Path is the vault directory holding DBFile, or MemoryPath.
	Path      string
	MustExist bool
	ReadOnly  bool
	Logger    *slog.Logger
}

// Storage implements core.Storage with a single SQLite table.
type Storage struct {
	config Config

	mu     sync.RWMutex
	db     *sql.DB
	writes int
}

// NewStorage creates a storage; the database is opened by Initialize.
func NewStorage(config Config) *Storage {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Storage{config: config}
}

// Initialize opens (or creates) the database and runs pending migrations.
// A read-only storage only opens an existing database.
// Calling it again on an open storage is a no-op.
func (s *Storage) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return nil
	}

	dsn, err := s.dsn()
	if err != nil {
		return err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("pinging database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and avoids "database is locked".
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return fmt.Errorf("setting busy timeout: %w", err)
	}

	if !s.config.ReadOnly {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return fmt.Errorf("setting journal mode: %w", err)
		}
		if err := migrate(ctx, db); err != nil {
			db.Close()
			return fmt.Errorf("running migrations: %w", err)
		}
	}

	s.db = db
	s.config.Logger.Debug("sqlite storage opened", "dsn", dsn)
	return nil
}

// dsn resolves the data source name. A read-only storage opens an existing
// database file in "ro" mode and never creates anything.
func (s *Storage) dsn() (string, error) {
	if s.config.Path == MemoryPath {
		return MemoryPath, nil
	}
	file := filepath.Join(s.config.Path, DBFile)
	if s.config.ReadOnly {
		if _, err := os.Stat(file); err != nil {
			return "", fmt.Errorf("database does not exist: %s", file)
		}
		return "file:" + filepath.ToSlash(file) + "?mode=ro", nil
	}
	if s.config.MustExist {
		info, err := os.Stat(s.config.Path)
		if err != nil {
			return "", fmt.Errorf("vault path does not exist: %s", s.config.Path)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("vault path is not a directory: %s", s.config.Path)
		}
	} else if err := os.MkdirAll(s.config.Path, 0o755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	return file, nil
}

// Close closes the underlying database connection.
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

func (s *Storage) handle() (*sql.DB, error) {
	if s.db == nil {
		return nil, errors.New("sqlite storage is not initialized")
	}
	return s.db, nil
}

// Get returns the value of a slot, or core.ErrNotFound.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	var value []byte
	err = db.QueryRowContext(ctx, "SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		// A read-only database that was never migrated has no slots table.
		if s.config.ReadOnly && strings.Contains(err.Error(), "no such table") {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("reading slot %q: %w", key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

// Set replaces the value of a slot.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.handle()
	if err != nil {
		return err
	}
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if value == nil {
		value = []byte{}
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrStorageWrite, err)
	}
	s.writes++
	return nil
}

// migrate applies the embedded migrations that have not been run yet.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		version, err := parseMigrationVersion(entry.Name())
		if err != nil {
			return err
		}

		var exists int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&exists); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}
	return nil
}

func parseMigrationVersion(filename string) (int, error) {
	var version int
	if _, err := fmt.Sscanf(filename, "%d_", &version); err != nil {
		return 0, fmt.Errorf("parsing migration version from %q: %w", filename, err)
	}
	return version, nil
}

// StorageState exposes internal state for observability.
type StorageState struct {
	Path     string `json:"path"`
	Open     bool   `json:"open"`
	ReadOnly bool   `json:"read_only"`
	Writes   int    `json:"writes"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StorageState{
		Path:     s.config.Path,
		Open:     s.db != nil,
		ReadOnly: s.config.ReadOnly,
		Writes:   s.writes,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "sqlite"
}

var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)
