package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/pkg/adapters/memory"
	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/core/storagetest"
)

func TestStorageContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) core.Storage {
		return memory.New()
	})
}

func TestSeededSlot(t *testing.T) {
	s := memory.New(memory.WithSlot(core.DefaultSlot, []byte(`[{"id":"a","content":"x"}]`)))

	c, err := core.NewNoteStore(s).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, "a", c[0].ID)
}

func TestReadOnly(t *testing.T) {
	s := memory.New(memory.WithReadOnly(true))

	err := s.Set(context.Background(), core.DefaultSlot, []byte(`[]`))
	assert.True(t, errors.Is(err, core.ErrReadOnly))
}

func TestWatch(t *testing.T) {
	s := memory.New()
	ctx, cancel := context.WithCancel(context.Background())

	events, err := s.Watch(ctx, "my*")
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "other", []byte("x")))
	require.NoError(t, s.Set(ctx, core.DefaultSlot, []byte("1")))
	require.NoError(t, s.Set(ctx, core.DefaultSlot, []byte("2")))

	e := <-events
	assert.Equal(t, core.EventCreate, e.Type)
	assert.Equal(t, core.DefaultSlot, e.Key)
	e = <-events
	assert.Equal(t, core.EventModify, e.Type)

	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-events
		return !ok
	}, time.Second, 10*time.Millisecond)

	state := s.State().(memory.StorageState)
	assert.Equal(t, 0, state.Watchers)
	assert.Equal(t, 2, state.Slots)
}
