// Package storagetest checks core.Storage implementations against the
// behaviour the note store relies on.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/pkg/core"
)

// Factory returns a fresh, initialized storage for one subtest.
type Factory func(t *testing.T) core.Storage

// Run exercises the storage contract.
func Run(t *testing.T, newStorage Factory) {
	t.Run("Missing Slot Is Not Found", func(t *testing.T) {
		s := newStorage(t)

		_, err := s.Get(context.Background(), core.DefaultSlot)
		assert.True(t, errors.Is(err, core.ErrNotFound), "got %v", err)
	})

	t.Run("Set Then Get", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, core.DefaultSlot, []byte(`[{"id":"1","content":"a"}]`)))

		got, err := s.Get(ctx, core.DefaultSlot)
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1","content":"a"}]`, string(got))
	})

	t.Run("Set Replaces Whole Value", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, core.DefaultSlot, []byte("a much longer first value")))
		require.NoError(t, s.Set(ctx, core.DefaultSlot, []byte("short")))

		got, err := s.Get(ctx, core.DefaultSlot)
		require.NoError(t, err)
		assert.Equal(t, "short", string(got))
	})

	t.Run("Empty Value Is Stored", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, core.DefaultSlot, []byte{}))

		got, err := s.Get(ctx, core.DefaultSlot)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Slots Are Independent", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "a", []byte("1")))
		require.NoError(t, s.Set(ctx, "b", []byte("2")))

		a, err := s.Get(ctx, "a")
		require.NoError(t, err)
		b, err := s.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "1", string(a))
		assert.Equal(t, "2", string(b))
	})

	t.Run("Returned Value Is A Copy", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()
		value := []byte("abc")

		require.NoError(t, s.Set(ctx, core.DefaultSlot, value))
		value[0] = 'x'

		got, err := s.Get(ctx, core.DefaultSlot)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(got))
		got[0] = 'y'

		again, err := s.Get(ctx, core.DefaultSlot)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(again))
	})

	t.Run("Initialize Is Idempotent", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, core.DefaultSlot, []byte("kept")))
		require.NoError(t, s.Initialize(ctx))

		got, err := s.Get(ctx, core.DefaultSlot)
		require.NoError(t, err)
		assert.Equal(t, "kept", string(got))
	})

	t.Run("Note Store Round Trip", func(t *testing.T) {
		store := core.NewNoteStore(newStorage(t))
		ctx := context.Background()

		for i := range 5 {
			_, err := store.Submit(ctx, fmt.Sprintf("<p>%d</p>", i))
			require.NoError(t, err)
		}

		c, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, c, 5)
		for i, n := range c {
			assert.Equal(t, fmt.Sprintf("<p>%d</p>", i), n.Content)
		}
	})

	t.Run("Concurrent Submissions Keep Every Note", func(t *testing.T) {
		store := core.NewNoteStore(newStorage(t))
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.Submit(ctx, fmt.Sprintf("note %d", i))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		c, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, c, 10)
	})
}
