// Package toolbar renders the formatting buttons of the compose session.
// A button is highlighted while its format applies at the selection.
package toolbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/quill/pkg/editor"
)

// Button is one toolbar entry. Name and Attrs are passed to Editor.IsActive.
type Button struct {
	Label   string
	Name    string
	Attrs   editor.Attrs
	Command string // compose command that toggles the format
}

// DefaultButtons mirrors the classic note toolbar. The heading button targets
// level 2; undo and redo never show as active.
func DefaultButtons() []Button {
	return []Button{
		{Label: "B", Name: "bold", Command: ":bold"},
		{Label: "I", Name: "italic", Command: ":italic"},
		{Label: "U", Name: "underline", Command: ":underline"},
		{Label: "S", Name: "strike", Command: ":strike"},
		{Label: "<>", Name: "code", Command: ":code"},
		{Label: "H2", Name: "heading", Attrs: editor.Attrs{"level": 2}, Command: ":h2"},
		{Label: "•", Name: "bulletList", Command: ":ul"},
		{Label: "1.", Name: "orderedList", Command: ":ol"},
		{Label: "❝", Name: "blockquote", Command: ":quote"},
		{Label: "↶", Name: "undo", Command: ":undo"},
		{Label: "↷", Name: "redo", Command: ":redo"},
	}
}

// Style controls the toolbar rendering.
type Style struct {
	Active   lipgloss.Style
	Inactive lipgloss.Style
	Bar      lipgloss.Style
}

// DefaultStyle returns the default toolbar style.
func DefaultStyle() Style {
	return Style{
		Active:   lipgloss.NewStyle().Reverse(true).Bold(true).Padding(0, 1),
		Inactive: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		Bar:      lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false),
	}
}

// Toolbar renders a row of buttons for an editor.
type Toolbar struct {
	Buttons []Button
	Style   Style
}

// New returns a toolbar with the default buttons and style.
func New() *Toolbar {
	return &Toolbar{Buttons: DefaultButtons(), Style: DefaultStyle()}
}

// Active returns the labels of the buttons active in ed.
func (t *Toolbar) Active(ed *editor.Editor) []string {
	var labels []string
	for _, b := range t.Buttons {
		if ed.IsActive(b.Name, b.Attrs) {
			labels = append(labels, b.Label)
		}
	}
	return labels
}

// Render draws the toolbar.
func (t *Toolbar) Render(ed *editor.Editor) string {
	cells := make([]string, len(t.Buttons))
	for i, b := range t.Buttons {
		style := t.Style.Inactive
		if ed.IsActive(b.Name, b.Attrs) {
			style = t.Style.Active
		}
		cells[i] = style.Render(b.Label)
	}
	return t.Style.Bar.Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
}

// Help lists the commands bound to the buttons.
func (t *Toolbar) Help() string {
	var sb strings.Builder
	for _, b := range t.Buttons {
		sb.WriteString(b.Command)
		sb.WriteString(" ")
	}
	return strings.TrimSpace(sb.String())
}
