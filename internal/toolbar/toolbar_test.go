package toolbar_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/quill/internal/toolbar"
	"github.com/aretw0/quill/pkg/editor"
)

func TestActive(t *testing.T) {
	tb := toolbar.New()
	ed := editor.New()

	assert.Empty(t, tb.Active(ed))

	ed.ToggleHeading(2)
	ed.ToggleBold()
	assert.Equal(t, []string{"B", "H2"}, tb.Active(ed))

	ed.InsertText("x")
	ed.ToggleBulletList()
	assert.Equal(t, []string{"B", "H2", "•"}, tb.Active(ed))
}

func TestHeadingButtonIsLevelTwo(t *testing.T) {
	tb := toolbar.New()
	ed := editor.New()

	ed.ToggleHeading(3)
	assert.NotContains(t, tb.Active(ed), "H2")
}

func TestUndoRedoNeverActive(t *testing.T) {
	tb := toolbar.New()
	ed := editor.New()

	ed.InsertText("x")
	ed.Undo()
	assert.True(t, ed.CanRedo())
	assert.NotContains(t, tb.Active(ed), "↶")
	assert.NotContains(t, tb.Active(ed), "↷")
}

func TestRender(t *testing.T) {
	tb := toolbar.New()
	out := tb.Render(editor.New())

	for _, b := range toolbar.DefaultButtons() {
		assert.True(t, strings.Contains(out, b.Label), "missing %q", b.Label)
	}
	assert.Contains(t, tb.Help(), ":bold")
}
