// Package quill is the composition root of a rich-text note form.
//
// A form hosts an editor. The editor holds a structured document (paragraphs,
// headings, lists, quotes) with inline marks (bold, italic, underline, strike,
// code), keeps an undo history and reports the document as HTML markup after
// every change. Submitting the form appends the markup as a new note, with a
// fresh UUID, to a collection persisted as a JSON array under one key of a
// key-value store, then clears the editor.
//
// Storage adapters:
//
//   - fs (default): one JSON file per key in the vault directory, atomic writes, fsnotify watch.
//   - sqlite: a single table in <vault>/quill.db.
//   - bolt: one bbolt bucket in <vault>/quill.bolt.
//   - memory: process memory, for tests.
//
// Usage:
//
//	store, err := quill.New("./notes", quill.WithAutoInit(true))
//	if err != nil {
//		return err
//	}
//	f := quill.NewForm(store, quill.NewEditor())
//	f.Editor().InsertText("Hello")
//	note, err := f.Submit(ctx)
package quill
