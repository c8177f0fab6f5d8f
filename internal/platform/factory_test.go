package platform_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/internal/platform"
	"github.com/aretw0/quill/pkg/adapters/memory"
	"github.com/aretw0/quill/pkg/core"
)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("note-%d", n)
	}
}

func TestNew(t *testing.T) {
	for _, adapter := range platform.Adapters {
		t.Run(adapter, func(t *testing.T) {
			ctx := context.Background()
			store, err := platform.New(t.TempDir(),
				platform.WithAdapter(adapter),
				platform.WithAutoInit(true),
				platform.WithIDGenerator(counterIDs()),
			)
			require.NoError(t, err)
			t.Cleanup(func() { _ = store.Close() })

			n, err := store.Submit(ctx, "<p>Hello</p>")
			require.NoError(t, err)
			assert.Equal(t, "note-1", n.ID)
			assert.Equal(t, core.DefaultSlot, store.Slot())

			c, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, core.Collection{{ID: "note-1", Content: "<p>Hello</p>"}}, c)
		})
	}
}

func TestNew_FSLayout(t *testing.T) {
	dir := t.TempDir()
	store, err := platform.New(dir, platform.WithAutoInit(true), platform.WithSlot("drafts"))
	require.NoError(t, err)

	_, err = store.Submit(context.Background(), "x")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "drafts.json"))
	assert.NoError(t, err)
}

func TestNew_ReadOnly(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	rw, err := platform.New(dir, platform.WithAutoInit(true))
	require.NoError(t, err)
	_, err = rw.Submit(ctx, "kept")
	require.NoError(t, err)

	ro, err := platform.New(dir, platform.WithReadOnly(true))
	require.NoError(t, err)

	_, err = ro.Submit(ctx, "rejected")
	assert.True(t, errors.Is(err, core.ErrReadOnly))

	c, err := ro.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, c, 1)
}

func TestNew_MustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := platform.New(missing, platform.WithMustExist(true))
	assert.Error(t, err)
}

func TestNew_InjectedStorage(t *testing.T) {
	s := memory.New()
	store, err := platform.New("ignored", platform.WithStorage(s), platform.WithAdapter("nope"))
	require.NoError(t, err)
	assert.Same(t, s, store.Storage())
}

func TestInit_UnknownAdapter(t *testing.T) {
	_, err := platform.Init(t.TempDir(), platform.WithAdapter("s3"))
	assert.Error(t, err)
}
