// Package lifecycle exposes note slot changes as a lifecycle.Source.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/quill/pkg/core"
)

// Loader reads the current collection of a slot. *core.NoteStore satisfies it.
type Loader interface {
	Load(ctx context.Context) (core.Collection, error)
}

// Change is a slot event tagged with what the slot holds after it.
type Change struct {
	core.Event
	Notes  int
	Latest core.Note
	Err    error
}

// String implements lifecycle.Event.
func (c Change) String() string {
	switch {
	case c.Err != nil:
		return fmt.Sprintf("%s: %v", c.Event, c.Err)
	case c.Notes == 0:
		return fmt.Sprintf("%s: empty", c.Event)
	}
	return fmt.Sprintf("%s: %d notes, latest %s", c.Event, c.Notes, c.Latest.ID)
}

func (c Change) sameState(o Change) bool {
	return c.Err == nil && o.Err == nil && c.Notes == o.Notes && c.Latest.ID == o.Latest.ID
}

type slotSource struct {
	loader Loader
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource turns the raw events of a slot into Change events. After each
// event the slot is reloaded; events that leave the slot as it was (a
// rename reported as create then modify) are dropped. The output closes when
// the input closes or the context passed to Start is cancelled.
func NewSource(loader Loader, events <-chan core.Event) lifecycle.Source {
	return &slotSource{
		loader: loader,
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *slotSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *slotSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		var last *Change
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				c := s.tag(ctx, e)
				if last != nil && c.sameState(*last) {
					continue
				}
				last = &c
				select {
				case s.out <- c:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

func (s *slotSource) tag(ctx context.Context, e core.Event) Change {
	c := Change{Event: e}
	if e.Type == core.EventDelete {
		return c
	}
	notes, err := s.loader.Load(ctx)
	if err != nil {
		c.Err = err
		return c
	}
	c.Notes = len(notes)
	if c.Notes > 0 {
		c.Latest = notes[c.Notes-1]
	}
	return c
}
