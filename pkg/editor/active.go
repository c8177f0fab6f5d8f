package editor

// IsActive reports whether the named mark or block applies at the selection.
// Mark names: bold, italic, underline, strike, code. Block names: paragraph,
// heading (attrs "level"), bulletList, orderedList, listItem, blockquote.
// Any other name is inactive.
//
// Blocks are active when every selected block matches. Marks are active when
// every selected character carries them, or, for a cursor, when text typed
// there would carry them.
func (e *Editor) IsActive(name string, attrs Attrs) bool {
	if e.inert() {
		return false
	}
	if m, ok := markByName(name); ok {
		return e.markActive(m)
	}

	switch name {
	case "paragraph":
		return e.everyBlock(func(b Block) bool { return b.Type == Paragraph })
	case "heading":
		level, hasLevel := attrLevel(attrs)
		return e.everyBlock(func(b Block) bool {
			return b.Type == Heading && (!hasLevel || b.Level == level)
		})
	case "bulletList":
		return e.everyBlock(func(b Block) bool { return b.List == BulletList })
	case "orderedList":
		return e.everyBlock(func(b Block) bool { return b.List == OrderedList })
	case "listItem":
		return e.everyBlock(func(b Block) bool { return b.List != NoList })
	case "blockquote":
		return e.everyBlock(func(b Block) bool { return b.Quote })
	}
	return false
}

// ActiveMarks returns the marks active at the selection.
func (e *Editor) ActiveMarks() MarkSet {
	var set MarkSet
	if e.inert() {
		return set
	}
	for _, m := range markOrder {
		if e.markActive(m) {
			set |= MarkSet(m)
		}
	}
	return set
}

// markActive ignores text that cannot take m (code excludes the other marks),
// but needs at least one selected character that carries it.
func (e *Editor) markActive(m Mark) bool {
	if e.sel.Empty() {
		return e.cursorMarks().Has(m)
	}

	all, marked, hasText := true, false, false
	e.doc.blockRange(e.sel.From(), e.sel.To(), func(i, start, end int) {
		for _, s := range e.doc[i].slice(start, end) {
			hasText = true
			switch {
			case s.Marks.Has(m):
				marked = true
			case s.Marks.excludes(m):
			default:
				all = false
			}
		}
	})
	if !hasText {
		return e.cursorMarks().Has(m)
	}
	return all && marked
}

func attrLevel(attrs Attrs) (int, bool) {
	v, ok := attrs["level"]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
