package quill_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/quill"
)

// Example_basic formats some text and submits it to a vault.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "quill-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	store, err := quill.New(tmpDir, quill.WithAutoInit(true))
	if err != nil {
		log.Fatal(err)
	}

	f := quill.NewForm(store, quill.NewEditor())
	ed := f.Editor()
	ed.InsertText("Hello ")
	ed.ToggleBold()
	ed.InsertText("world")

	note, err := f.Submit(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	notes, err := store.Load(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(note.Content)
	fmt.Println(len(notes), ed.IsEmpty())
	// Output:
	// <p>Hello <strong>world</strong></p>
	// 1 true
}

// ExampleNewEditor shows the active-state queries a toolbar relies on.
func ExampleNewEditor() {
	ed := quill.NewEditor()
	ed.ToggleHeading(2)
	ed.InsertText("Title")

	fmt.Println(ed.IsActive("heading", map[string]any{"level": 2}))
	fmt.Println(ed.IsActive("heading", map[string]any{"level": 1}))
	fmt.Println(ed.IsActive("bold", nil))
	fmt.Println(ed.HTML())
	// Output:
	// true
	// false
	// false
	// <h2>Title</h2>
}
