package editor

import (
	"strings"
	"time"
)

const (
	// DefaultHistoryDepth is the number of undo steps kept.
	DefaultHistoryDepth = 100
	// DefaultNewGroupDelay is the pause after which typing starts a new undo step.
	DefaultNewGroupDelay = 500 * time.Millisecond
)

// Attrs carries node attributes for IsActive (e.g. {"level": 2}).
type Attrs map[string]any

// Option configures an Editor.
type Option func(*config)

type config struct {
	extensions    []Extension
	content       string
	onChange      func(string)
	historyDepth  int
	newGroupDelay time.Duration
	now           func() time.Time
}

// WithExtensions replaces the default extension set (StarterKit + Underline).
func WithExtensions(exts ...Extension) Option {
	return func(c *config) {
		c.extensions = exts
	}
}

// WithContent sets the initial document from HTML markup.
func WithContent(markup string) Option {
	return func(c *config) {
		c.content = markup
	}
}

// WithOnChange registers the change hook. It receives the serialized document
// after every command that modified it.
func WithOnChange(fn func(html string)) Option {
	return func(c *config) {
		c.onChange = fn
	}
}

// WithHistory sets the undo depth and the typing group delay.
// Zero values keep the defaults.
func WithHistory(depth int, newGroupDelay time.Duration) Option {
	return func(c *config) {
		if depth > 0 {
			c.historyDepth = depth
		}
		if newGroupDelay > 0 {
			c.newGroupDelay = newGroupDelay
		}
	}
}

// WithClock overrides the time source used for history grouping.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// Editor holds the document state of one editing surface.
// It is not safe for concurrent use; like any UI surface it is driven from a
// single goroutine.
type Editor struct {
	doc     document
	sel     Selection
	stored  *MarkSet
	focused bool
	ready   bool

	exts     extensionSet
	onChange func(string)
	hist     history
	now      func() time.Time
}

// New mounts an editor.
func New(opts ...Option) *Editor {
	cfg := config{
		extensions:    append(StarterKit(), ExtUnderline),
		historyDepth:  DefaultHistoryDepth,
		newGroupDelay: DefaultNewGroupDelay,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Editor{
		exts:     newExtensionSet(cfg.extensions),
		onChange: cfg.onChange,
		hist:     history{depth: cfg.historyDepth, newGroupDelay: cfg.newGroupDelay},
		now:      cfg.now,
		ready:    true,
	}
	e.doc = newDocument()
	if cfg.content != "" {
		if doc, err := parseHTML(cfg.content, e.exts); err == nil {
			e.doc = doc
		}
	}
	return e
}

func (e *Editor) inert() bool {
	return e == nil || !e.ready
}

// IsReady reports whether the editor is mounted.
func (e *Editor) IsReady() bool { return !e.inert() }

// Destroy unmounts the editor. Every later call is a no-op.
func (e *Editor) Destroy() {
	if e.inert() {
		return
	}
	e.ready = false
	e.focused = false
	e.onChange = nil
}

// OnChange replaces the change hook.
func (e *Editor) OnChange(fn func(html string)) {
	if e.inert() {
		return
	}
	e.onChange = fn
}

// HasExtension reports whether ext is registered.
func (e *Editor) HasExtension(ext Extension) bool {
	if e.inert() {
		return false
	}
	return e.exts[ext]
}

// Focus gives the editor focus, keeping the current selection.
func (e *Editor) Focus() {
	if e.inert() {
		return
	}
	e.focused = true
}

// Blur removes focus.
func (e *Editor) Blur() {
	if e.inert() {
		return
	}
	e.focused = false
}

// IsFocused reports whether the editor has focus.
func (e *Editor) IsFocused() bool {
	return !e.inert() && e.focused
}

// Selection returns the current selection.
func (e *Editor) Selection() Selection {
	if e.inert() {
		return Selection{}
	}
	return e.sel
}

// SetSelection moves the selection. Positions are clamped to the document.
func (e *Editor) SetSelection(anchor, head Pos) {
	if e.inert() {
		return
	}
	e.sel = Selection{Anchor: e.doc.clamp(anchor), Head: e.doc.clamp(head)}
	e.stored = nil
	e.hist.breakGroup()
}

// SetCursor collapses the selection at p.
func (e *Editor) SetCursor(p Pos) {
	e.SetSelection(p, p)
}

// SelectAll selects the whole document.
func (e *Editor) SelectAll() {
	if e.inert() {
		return
	}
	e.SetSelection(Pos{}, e.doc.end())
}

// Blocks returns a copy of the document blocks.
func (e *Editor) Blocks() []Block {
	if e.inert() {
		return nil
	}
	return e.doc.clone()
}

// HTML returns the serialized document.
func (e *Editor) HTML() string {
	if e.inert() {
		return ""
	}
	return serializeHTML(e.doc)
}

// Text returns the plain text of the document, one line per block.
func (e *Editor) Text() string {
	if e.inert() {
		return ""
	}
	lines := make([]string, len(e.doc))
	for i, b := range e.doc {
		lines[i] = b.Text()
	}
	return strings.Join(lines, "\n")
}

// IsEmpty reports whether the document is a single empty paragraph.
func (e *Editor) IsEmpty() bool {
	if e.inert() {
		return true
	}
	return len(e.doc) == 1 && e.doc[0].Type == Paragraph && e.doc[0].Len() == 0
}

// SetContent replaces the document with parsed markup without emitting a change.
// The replacement can be undone.
func (e *Editor) SetContent(markup string) bool {
	if e.inert() {
		return false
	}
	doc, err := parseHTML(markup, e.exts)
	if err != nil {
		return false
	}
	e.replace(doc)
	return true
}

// ClearContent empties the document without emitting a change.
// The replacement can be undone.
func (e *Editor) ClearContent() bool {
	if e.inert() {
		return false
	}
	e.replace(newDocument())
	return true
}

// Reset empties the document and forgets its history.
func (e *Editor) Reset() {
	if e.inert() {
		return
	}
	e.doc = newDocument()
	e.sel = cursor(Pos{})
	e.stored = nil
	e.hist.clear()
}

func (e *Editor) replace(doc document) {
	before := e.snapshot()
	e.doc = doc
	e.sel = cursor(Pos{})
	e.stored = nil
	if !before.doc.equal(e.doc) {
		e.hist.record(before, actionReplace, e.now())
	}
}

// run executes a command as one transaction: the editor is focused, the
// document change (if any) is recorded in history and reported to the change
// hook. fn returns false when the command did not apply.
func (e *Editor) run(action string, fn func() bool) bool {
	if e.inert() {
		return false
	}
	e.focused = true

	before := e.snapshot()
	if !fn() {
		return false
	}
	if before.doc.equal(e.doc) {
		return true
	}
	e.hist.record(before, action, e.now())
	e.emit()
	return true
}

func (e *Editor) emit() {
	if e.onChange != nil {
		e.onChange(serializeHTML(e.doc))
	}
}

func (e *Editor) snapshot() snapshot {
	return snapshot{doc: e.doc.clone(), sel: e.sel}
}

func (e *Editor) restore(s snapshot) {
	e.doc = s.doc.clone()
	e.sel = Selection{Anchor: e.doc.clamp(s.sel.Anchor), Head: e.doc.clamp(s.sel.Head)}
	e.stored = nil
}
