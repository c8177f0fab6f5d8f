package platform

import (
	"github.com/aretw0/quill/pkg/core"
)

// New opens the storage described by uri and opts and returns a note store on top of it.
//
//	store, err := quill.New("./notes", quill.WithAutoInit(true))
func New(uri string, opts ...Option) (*core.NoteStore, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	storage, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	storeOpts := []core.StoreOption{
		core.WithSlot(o.slot),
		core.WithReadOnlyStore(o.flag("read_only")),
	}
	if o.logger != nil {
		storeOpts = append(storeOpts, core.WithStoreLogger(o.logger))
	}
	if o.newID != nil {
		storeOpts = append(storeOpts, core.WithIDGenerator(o.newID))
	}

	return core.NewNoteStore(storage, storeOpts...), nil
}
