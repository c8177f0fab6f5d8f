// Package form hosts an editor and turns its content into stored notes.
//
// The form keeps the last markup reported by the editor's change hook. A
// submission appends that markup to the note store, then clears both the
// editor and the captured content. When the store fails nothing is cleared,
// so the user can retry.
package form

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/editor"
)

// Form binds one editor to one note store.
type Form struct {
	store  *core.NoteStore
	ed     *editor.Editor
	logger *slog.Logger

	requireContent bool

	mu      sync.Mutex
	content string
}

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the logger used for submissions.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithRequireContent rejects blank documents with core.ErrEmptyContent.
func WithRequireContent(enabled bool) Option {
	return func(f *Form) {
		f.requireContent = enabled
	}
}

// New creates a form and subscribes it to the editor's change hook.
// Any hook previously registered on ed is replaced.
func New(store *core.NoteStore, ed *editor.Editor, opts ...Option) *Form {
	f := &Form{
		store:  store,
		ed:     ed,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	ed.OnChange(f.OnChange)
	return f
}

// Editor returns the hosted editor.
func (f *Form) Editor() *editor.Editor { return f.ed }

// Store returns the note store submissions go to.
func (f *Form) Store() *core.NoteStore { return f.store }

// OnChange captures the serialized document. It is the editor's change hook.
func (f *Form) OnChange(html string) {
	f.mu.Lock()
	f.content = html
	f.mu.Unlock()
}

// Content returns the captured markup; "" until the editor first reports a change.
func (f *Form) Content() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content
}

// Blank reports whether the form holds no visible text.
func (f *Form) Blank() bool {
	if f.Content() == "" {
		return true
	}
	return f.ed.IsReady() && strings.TrimSpace(f.ed.Text()) == ""
}

// Submit appends the captured content as a new note. On success the editor
// and the captured content are reset; on failure both are left untouched.
func (f *Form) Submit(ctx context.Context) (core.Note, error) {
	if f.requireContent && f.Blank() {
		return core.Note{}, core.ErrEmptyContent
	}

	content := f.Content()
	n, err := f.store.Submit(ctx, content)
	if err != nil {
		f.logger.Error("submission failed", "slot", f.store.Slot(), "error", err)
		return core.Note{}, err
	}

	f.logger.Info("form submitted", "id", n.ID, "content", n.Content)
	f.ed.Reset()
	f.mu.Lock()
	f.content = ""
	f.mu.Unlock()
	return n, nil
}
