package editor

import "time"

const (
	actionInsert  = "insert"
	actionDelete  = "delete"
	actionFormat  = "format"
	actionReplace = "replace"
)

type snapshot struct {
	doc document
	sel Selection
}

type history struct {
	undo []snapshot
	redo []snapshot

	depth         int
	newGroupDelay time.Duration

	lastAction string
	lastTime   time.Time
}

// record stores the state preceding a change. Consecutive typing within
// newGroupDelay joins the previous step instead of opening a new one.
func (h *history) record(prev snapshot, action string, now time.Time) {
	grouped := action == actionInsert &&
		h.lastAction == actionInsert &&
		len(h.undo) > 0 &&
		now.Sub(h.lastTime) < h.newGroupDelay

	h.lastAction = action
	h.lastTime = now
	h.redo = nil
	if grouped {
		return
	}

	h.undo = append(h.undo, prev)
	if h.depth > 0 && len(h.undo) > h.depth {
		h.undo = h.undo[len(h.undo)-h.depth:]
	}
}

func (h *history) breakGroup() {
	h.lastAction = ""
}

func (h *history) clear() {
	h.undo = nil
	h.redo = nil
	h.breakGroup()
}

// CanUndo reports whether there is a step to undo.
func (e *Editor) CanUndo() bool {
	return !e.inert() && e.exts[ExtHistory] && len(e.hist.undo) > 0
}

// CanRedo reports whether there is a step to redo.
func (e *Editor) CanRedo() bool {
	return !e.inert() && e.exts[ExtHistory] && len(e.hist.redo) > 0
}

// Undo steps back one history entry. It is a no-op at the start of history.
func (e *Editor) Undo() bool {
	if !e.CanUndo() {
		return false
	}
	e.focused = true

	cur := e.snapshot()
	i := len(e.hist.undo) - 1
	prev := e.hist.undo[i]
	e.hist.undo = e.hist.undo[:i]
	e.hist.redo = append(e.hist.redo, cur)
	e.hist.breakGroup()

	e.restore(prev)
	e.emit()
	return true
}

// Redo re-applies the last undone entry. It is a no-op at the end of history.
func (e *Editor) Redo() bool {
	if !e.CanRedo() {
		return false
	}
	e.focused = true

	cur := e.snapshot()
	i := len(e.hist.redo) - 1
	next := e.hist.redo[i]
	e.hist.redo = e.hist.redo[:i]
	e.hist.undo = append(e.hist.undo, cur)
	if e.hist.depth > 0 && len(e.hist.undo) > e.hist.depth {
		e.hist.undo = e.hist.undo[len(e.hist.undo)-e.hist.depth:]
	}
	e.hist.breakGroup()

	e.restore(next)
	e.emit()
	return true
}
