package form_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/pkg/adapters/memory"
	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/editor"
	"github.com/aretw0/quill/pkg/form"
)

// faultyStorage fails every write.
type faultyStorage struct {
	*memory.Storage
}

func (faultyStorage) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("disk full")
}

func setup(t *testing.T, storage core.Storage, opts ...form.Option) (*form.Form, *core.NoteStore) {
	t.Helper()
	store := core.NewNoteStore(storage)
	return form.New(store, editor.New(), opts...), store
}

func TestSubmit(t *testing.T) {
	t.Run("Appends Captured Content And Resets", func(t *testing.T) {
		f, store := setup(t, memory.New())
		ctx := context.Background()
		ed := f.Editor()

		ed.InsertText("Hello")
		ed.SelectAll()
		ed.ToggleBold()
		assert.Equal(t, "<p><strong>Hello</strong></p>", f.Content())

		n, err := f.Submit(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, n.ID)
		assert.Equal(t, "<p><strong>Hello</strong></p>", n.Content)

		assert.Equal(t, "", f.Content())
		assert.Equal(t, "<p></p>", ed.HTML())
		assert.False(t, ed.CanUndo())

		c, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, core.Collection{n}, c)
	})

	t.Run("Submissions Accumulate In Order", func(t *testing.T) {
		f, store := setup(t, memory.New())
		ctx := context.Background()

		for _, text := range []string{"one", "two", "three"} {
			f.Editor().InsertText(text)
			_, err := f.Submit(ctx)
			require.NoError(t, err)
		}

		c, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, c, 3)
		assert.Equal(t, "<p>one</p>", c[0].Content)
		assert.Equal(t, "<p>three</p>", c[2].Content)
	})

	t.Run("Untouched Editor Submits Empty Content", func(t *testing.T) {
		f, _ := setup(t, memory.New())

		n, err := f.Submit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "", n.Content)
	})

	t.Run("Write Failure Keeps Content", func(t *testing.T) {
		f, _ := setup(t, faultyStorage{memory.New()})
		ed := f.Editor()
		ed.InsertText("draft")

		_, err := f.Submit(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrStorageWrite))

		assert.Equal(t, "<p>draft</p>", f.Content())
		assert.Equal(t, "<p>draft</p>", ed.HTML())
		assert.True(t, ed.CanUndo())
	})

	t.Run("Corrupt Slot Keeps Content", func(t *testing.T) {
		f, _ := setup(t, memory.New(memory.WithSlot(core.DefaultSlot, []byte("{"))))
		f.Editor().InsertText("draft")

		_, err := f.Submit(context.Background())
		assert.True(t, errors.Is(err, core.ErrCorruptSlot))
		assert.Equal(t, "<p>draft</p>", f.Content())
	})
}

func TestRequireContent(t *testing.T) {
	f, store := setup(t, memory.New(), form.WithRequireContent(true))
	ctx := context.Background()
	ed := f.Editor()

	_, err := f.Submit(ctx)
	assert.ErrorIs(t, err, core.ErrEmptyContent)

	ed.InsertText("  ")
	assert.True(t, f.Blank())
	_, err = f.Submit(ctx)
	assert.ErrorIs(t, err, core.ErrEmptyContent)

	ed.InsertText("x")
	_, err = f.Submit(ctx)
	require.NoError(t, err)

	c, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, c, 1)
}

func TestOnChangeReplacesHook(t *testing.T) {
	ed := editor.New()
	f := form.New(core.NewNoteStore(memory.New()), ed)

	f.OnChange("<p>manual</p>")
	assert.Equal(t, "<p>manual</p>", f.Content())

	ed.InsertText("typed")
	assert.Equal(t, "<p>typed</p>", f.Content())
}
