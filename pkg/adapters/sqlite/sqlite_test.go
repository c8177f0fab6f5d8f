package sqlite_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/pkg/adapters/sqlite"
	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/core/storagetest"
)

func openStorage(t *testing.T, cfg sqlite.Config) *sqlite.Storage {
	t.Helper()
	s := sqlite.NewStorage(cfg)
	require.NoError(t, s.Initialize(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorageContract(t *testing.T) {
	t.Run("Memory", func(t *testing.T) {
		storagetest.Run(t, func(t *testing.T) core.Storage {
			return openStorage(t, sqlite.Config{Path: sqlite.MemoryPath})
		})
	})

	t.Run("File", func(t *testing.T) {
		storagetest.Run(t, func(t *testing.T) core.Storage {
			return openStorage(t, sqlite.Config{Path: t.TempDir()})
		})
	})
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := sqlite.NewStorage(sqlite.Config{Path: dir})
	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.Set(ctx, core.DefaultSlot, []byte(`[]`)))
	require.NoError(t, s.Close())

	_, err := os.Stat(filepath.Join(dir, sqlite.DBFile))
	require.NoError(t, err)

	reopened := openStorage(t, sqlite.Config{Path: dir})
	got, err := reopened.Get(ctx, core.DefaultSlot)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestReadOnly(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	rw := openStorage(t, sqlite.Config{Path: dir})
	require.NoError(t, rw.Set(ctx, core.DefaultSlot, []byte(`["kept"]`)))
	require.NoError(t, rw.Close())

	ro := openStorage(t, sqlite.Config{Path: dir, ReadOnly: true})

	got, err := ro.Get(ctx, core.DefaultSlot)
	require.NoError(t, err)
	assert.Equal(t, `["kept"]`, string(got))

	_, err = ro.Get(ctx, "other")
	assert.True(t, errors.Is(err, core.ErrNotFound), "got %v", err)
	assert.True(t, errors.Is(ro.Set(ctx, core.DefaultSlot, []byte(`[]`)), core.ErrReadOnly))
}

func TestReadOnly_CreatesNothing(t *testing.T) {
	dir := t.TempDir()

	err := sqlite.NewStorage(sqlite.Config{Path: dir, ReadOnly: true}).Initialize(context.Background())
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNotInitialized(t *testing.T) {
	s := sqlite.NewStorage(sqlite.Config{Path: sqlite.MemoryPath})

	_, err := s.Get(context.Background(), core.DefaultSlot)
	assert.Error(t, err)
	assert.Error(t, s.Set(context.Background(), core.DefaultSlot, nil))
	assert.NoError(t, s.Close())
}

func TestMustExist(t *testing.T) {
	s := sqlite.NewStorage(sqlite.Config{Path: filepath.Join(t.TempDir(), "missing"), MustExist: true})

	assert.Error(t, s.Initialize(context.Background()))
}

func TestState(t *testing.T) {
	s := openStorage(t, sqlite.Config{Path: sqlite.MemoryPath})
	require.NoError(t, s.Set(context.Background(), "a", []byte("x")))

	state, ok := s.State().(sqlite.StorageState)
	require.True(t, ok)
	assert.True(t, state.Open)
	assert.Equal(t, 1, state.Writes)
	assert.Equal(t, "sqlite", s.ComponentType())
}
