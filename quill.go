package quill

import (
	"log/slog"

	"github.com/aretw0/quill/internal/platform"
	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/editor"
	"github.com/aretw0/quill/pkg/form"
)

// --- Types ---

// Note is one stored submission.
type Note = core.Note

// NoteStore appends notes to the storage slot.
type NoteStore = core.NoteStore

// Editor is the rich-text editing surface.
type Editor = editor.Editor

// Form binds an Editor to a NoteStore.
type Form = form.Form

// DefaultSlot is the storage key used when none is configured.
const DefaultSlot = core.DefaultSlot

// --- Configuration ---

// Option defines a functional option for configuring quill.
type Option = platform.Option

// WithAutoInit creates the vault when it is missing.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist ensures the vault must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage injects a custom storage adapter.
func WithStorage(s core.Storage) Option {
	return platform.WithStorage(s)
}

// WithAdapter selects the storage adapter by name (fs, sqlite, bolt, memory).
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSlot sets the storage key of the note collection.
func WithSlot(key string) Option {
	return platform.WithSlot(key)
}

// WithIDGenerator replaces the UUID generator of new notes.
func WithIDGenerator(fn func() string) Option {
	return platform.WithIDGenerator(fn)
}

// WithReadOnly opens the vault without ever writing to it.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the temp-dir sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithWatcherErrorHandler registers a callback for watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New opens a vault and returns its note store.
func New(path string, opts ...Option) (*core.NoteStore, error) {
	return platform.New(path, opts...)
}

// Init opens and initializes a storage explicitly.
func Init(path string, opts ...Option) (core.Storage, error) {
	return platform.Init(path, opts...)
}

// NewEditor mounts an editor with the default extensions (StarterKit + Underline).
func NewEditor(opts ...editor.Option) *editor.Editor {
	return editor.New(opts...)
}

// NewForm hosts ed and submits its content to store.
func NewForm(store *core.NoteStore, ed *editor.Editor, opts ...form.Option) *form.Form {
	return form.New(store, ed, opts...)
}

// --- Safety & Utils ---

// ResolveVaultPath determines the actual path for the vault based on safety rules.
func ResolveVaultPath(userPath string, forceTemp bool) string {
	return platform.ResolveVaultPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindVaultRoot looks upwards for a directory holding .quill or quill.yaml.
func FindVaultRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
