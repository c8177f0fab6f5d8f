package bolt_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/pkg/adapters/bolt"
	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/core/storagetest"
)

func openStorage(t *testing.T, cfg bolt.Config) *bolt.Storage {
	t.Helper()
	s := bolt.NewStorage(cfg)
	require.NoError(t, s.Initialize(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorageContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) core.Storage {
		return openStorage(t, bolt.Config{Path: t.TempDir()})
	})
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := bolt.NewStorage(bolt.Config{Path: dir})
	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.Set(ctx, core.DefaultSlot, []byte(`[]`)))
	require.NoError(t, s.Close())

	ro := openStorage(t, bolt.Config{Path: dir, ReadOnly: true})
	got, err := ro.Get(ctx, core.DefaultSlot)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
	assert.True(t, errors.Is(ro.Set(ctx, core.DefaultSlot, []byte(`[]`)), core.ErrReadOnly))
}

func TestMissingDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	assert.Error(t, bolt.NewStorage(bolt.Config{Path: dir, MustExist: true}).Initialize(context.Background()))
	assert.Error(t, bolt.NewStorage(bolt.Config{Path: dir, ReadOnly: true}).Initialize(context.Background()))
}

func TestLockTimeout(t *testing.T) {
	dir := t.TempDir()
	openStorage(t, bolt.Config{Path: dir})

	second := bolt.NewStorage(bolt.Config{Path: dir, Timeout: 50 * time.Millisecond})
	assert.Error(t, second.Initialize(context.Background()))
}

func TestState(t *testing.T) {
	dir := t.TempDir()
	s := openStorage(t, bolt.Config{Path: dir})
	require.NoError(t, s.Set(context.Background(), "a", []byte("x")))

	state, ok := s.State().(bolt.StorageState)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, bolt.DBFile), state.File)
	assert.True(t, state.Open)
	assert.Equal(t, 1, state.Writes)
	assert.Equal(t, "bolt", s.ComponentType())
}
