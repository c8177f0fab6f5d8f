package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/pkg/core"
)

func waitEvent(t *testing.T, events <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "events channel closed")
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return core.Event{}
	}
}

func TestWatch(t *testing.T) {
	t.Run("Reports Create Then Modify", func(t *testing.T) {
		s, _ := setupStorage(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		require.NoError(t, s.Initialize(ctx))

		events, err := s.Watch(ctx, core.DefaultSlot)
		require.NoError(t, err)

		require.NoError(t, s.Set(ctx, core.DefaultSlot, []byte(`[]`)))
		e := waitEvent(t, events)
		assert.Equal(t, core.DefaultSlot, e.Key)
		assert.Equal(t, core.EventCreate, e.Type)

		require.NoError(t, s.Set(ctx, core.DefaultSlot, []byte(`[{"id":"1","content":""}]`)))
		e = waitEvent(t, events)
		assert.Equal(t, core.DefaultSlot, e.Key)
		assert.Equal(t, core.EventModify, e.Type)
	})

	t.Run("Filters By Pattern", func(t *testing.T) {
		s, path := setupStorage(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		require.NoError(t, s.Initialize(ctx))

		events, err := s.Watch(ctx, "note*")
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(path, "other.json"), []byte("x"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(path, "notes.txt"), []byte("x"), 0644))
		require.NoError(t, s.Set(ctx, "notebook", []byte("x")))

		e := waitEvent(t, events)
		assert.Equal(t, "notebook", e.Key)
	})

	t.Run("Closes On Cancel", func(t *testing.T) {
		s, _ := setupStorage(t)
		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, s.Initialize(ctx))

		events, err := s.Watch(ctx, "*")
		require.NoError(t, err)
		cancel()

		require.Eventually(t, func() bool {
			select {
			case _, ok := <-events:
				return !ok
			default:
				return false
			}
		}, 3*time.Second, 10*time.Millisecond)
	})

	t.Run("Rejects Invalid Pattern", func(t *testing.T) {
		s, _ := setupStorage(t)
		require.NoError(t, s.Initialize(context.Background()))

		_, err := s.Watch(context.Background(), "[")
		assert.Error(t, err)
	})
}
