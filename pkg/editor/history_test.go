package editor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/pkg/editor"
)

// fakeClock is advanced manually by tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClockedEditor(t *testing.T, opts ...editor.Option) (*editor.Editor, *recorder, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	e, rec := newEditor(t, append([]editor.Option{editor.WithClock(clock.Now)}, opts...)...)
	return e, rec, clock
}

func TestHistory_UndoRedo(t *testing.T) {
	e, rec, clock := newClockedEditor(t)

	e.InsertText("a")
	clock.Advance(time.Second)
	e.InsertText("b")
	require.True(t, e.CanUndo())
	assert.False(t, e.CanRedo())

	require.True(t, e.Undo())
	assert.Equal(t, "<p>a</p>", e.HTML())
	assert.Equal(t, "<p>a</p>", rec.last())

	require.True(t, e.Undo())
	assert.Equal(t, "<p></p>", e.HTML())
	assert.False(t, e.Undo(), "undo at the start of history is a no-op")

	require.True(t, e.Redo())
	assert.Equal(t, "<p>a</p>", e.HTML())
	require.True(t, e.Redo())
	assert.Equal(t, "<p>ab</p>", e.HTML())
	assert.False(t, e.Redo(), "redo at the end of history is a no-op")
}

func TestHistory_GroupsTyping(t *testing.T) {
	e, _, clock := newClockedEditor(t)

	e.InsertText("a")
	clock.Advance(100 * time.Millisecond)
	e.InsertText("b")
	clock.Advance(100 * time.Millisecond)
	e.InsertText("c")

	require.True(t, e.Undo())
	assert.Equal(t, "<p></p>", e.HTML())
	assert.False(t, e.CanUndo())
}

func TestHistory_FormattingIsOwnStep(t *testing.T) {
	e, _, _ := newClockedEditor(t)

	e.InsertText("word")
	e.SelectAll()
	e.ToggleBold()
	assert.Equal(t, "<p><strong>word</strong></p>", e.HTML())

	e.Undo()
	assert.Equal(t, "<p>word</p>", e.HTML())
	e.Redo()
	assert.Equal(t, "<p><strong>word</strong></p>", e.HTML())
}

func TestHistory_NewChangeClearsRedo(t *testing.T) {
	e, _, clock := newClockedEditor(t)

	e.InsertText("a")
	e.Undo()
	require.True(t, e.CanRedo())

	clock.Advance(time.Second)
	e.InsertText("b")
	assert.False(t, e.CanRedo())
}

func TestHistory_Depth(t *testing.T) {
	e, _, clock := newClockedEditor(t, editor.WithHistory(2, 0))

	for _, s := range []string{"a", "b", "c"} {
		e.InsertText(s)
		clock.Advance(time.Second)
	}

	assert.True(t, e.Undo())
	assert.True(t, e.Undo())
	assert.False(t, e.Undo())
	assert.Equal(t, "<p>a</p>", e.HTML())
}

func TestHistory_ResetForgets(t *testing.T) {
	e, _, _ := newClockedEditor(t)

	e.InsertText("a")
	e.Reset()
	assert.Equal(t, "<p></p>", e.HTML())
	assert.False(t, e.CanUndo())
	assert.False(t, e.Undo())
}

func TestHistory_ClearContentIsUndoable(t *testing.T) {
	e, rec, _ := newClockedEditor(t)

	e.InsertText("keep")
	calls := len(rec.calls)
	e.ClearContent()
	assert.Len(t, rec.calls, calls)

	require.True(t, e.Undo())
	assert.Equal(t, "<p>keep</p>", e.HTML())
}

func TestHistory_RequiresExtension(t *testing.T) {
	exts := []editor.Extension{editor.ExtParagraph, editor.ExtBold}
	e, _, _ := newClockedEditor(t, editor.WithExtensions(exts...))

	e.InsertText("a")
	assert.False(t, e.CanUndo())
	assert.False(t, e.Undo())
	assert.Equal(t, "<p>a</p>", e.HTML())
}
