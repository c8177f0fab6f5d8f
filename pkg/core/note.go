package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Note is the central entity of the domain.
// It pairs an immutable identifier with the serialized rich-text markup
// exported by the editor at submission time.
type Note struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Collection is the ordered list of notes held in a single storage slot.
// Order is insertion order; the newest note is always last.
type Collection []Note

// Find returns the note with the given ID.
func (c Collection) Find(id string) (Note, bool) {
	for _, n := range c {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

// Has reports whether a note with the given ID exists.
func (c Collection) Has(id string) bool {
	_, ok := c.Find(id)
	return ok
}

// MarshalSlot encodes the collection in the slot wire format (a compact JSON array).
// A nil collection is written as an empty array, never as null.
func (c Collection) MarshalSlot() ([]byte, error) {
	if c == nil {
		c = Collection{}
	}
	return json.Marshal(c)
}

// UnmarshalCollection decodes a slot value.
// An empty value decodes to an empty collection. Anything that is not a JSON
// array of note records is reported as ErrCorruptSlot.
func UnmarshalCollection(data []byte) (Collection, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Collection{}, nil
	}
	if trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrCorruptSlot)
	}

	var c Collection
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	if err := decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSlot, err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("%w: trailing data after array", ErrCorruptSlot)
	}
	for i, n := range c {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: record %d has no id", ErrCorruptSlot, i)
		}
	}
	if c == nil {
		c = Collection{}
	}
	return c, nil
}
