package editor

// ToggleBold toggles the bold mark on the selection.
func (e *Editor) ToggleBold() bool { return e.toggleMark(Bold) }

// ToggleItalic toggles the italic mark on the selection.
func (e *Editor) ToggleItalic() bool { return e.toggleMark(Italic) }

// ToggleUnderline toggles the underline mark on the selection.
// It requires the Underline extension.
func (e *Editor) ToggleUnderline() bool { return e.toggleMark(Underline) }

// ToggleStrike toggles the strike mark on the selection.
func (e *Editor) ToggleStrike() bool { return e.toggleMark(Strike) }

// SetCode adds the code mark to the selection. Unlike the toggles it never
// removes the mark: applying it to code text leaves the text unchanged.
func (e *Editor) SetCode() bool {
	if e.inert() || !e.exts.mark(Code) {
		return false
	}
	return e.run(actionFormat, func() bool {
		if e.sel.Empty() {
			stored := e.cursorMarks().Add(Code)
			e.stored = &stored
			return true
		}
		e.mapSelectionMarks(func(s MarkSet) MarkSet { return s.Add(Code) })
		return true
	})
}

func (e *Editor) toggleMark(m Mark) bool {
	if e.inert() || !e.exts.mark(m) {
		return false
	}
	return e.run(actionFormat, func() bool {
		active := e.markActive(m)
		if e.sel.Empty() {
			stored := e.cursorMarks()
			if active {
				stored = stored.Remove(m)
			} else {
				stored = stored.Add(m)
			}
			e.stored = &stored
			return true
		}
		if active {
			e.mapSelectionMarks(func(s MarkSet) MarkSet { return s.Remove(m) })
		} else {
			e.mapSelectionMarks(func(s MarkSet) MarkSet { return s.Add(m) })
		}
		return true
	})
}

func (e *Editor) mapSelectionMarks(fn func(MarkSet) MarkSet) {
	from, to := e.sel.From(), e.sel.To()
	e.doc.blockRange(from, to, func(i, start, end int) {
		e.doc[i].mapMarks(start, end, fn)
	})
}

// cursorMarks returns the marks text typed at the cursor would get.
func (e *Editor) cursorMarks() MarkSet {
	if e.stored != nil {
		return *e.stored
	}
	from := e.sel.From()
	return e.doc[from.Block].marksAround(from.Offset)
}

// ToggleHeading turns the selected blocks into headings of the given level,
// or back into paragraphs when they all already are.
func (e *Editor) ToggleHeading(level int) bool {
	if e.inert() || !e.exts[ExtHeading] || level < 1 || level > 6 {
		return false
	}
	return e.run(actionFormat, func() bool {
		revert := e.everyBlock(func(b Block) bool { return b.Type == Heading && b.Level == level })
		e.eachBlock(func(b *Block) {
			if revert {
				b.Type, b.Level = Paragraph, 0
			} else {
				b.Type, b.Level = Heading, level
			}
		})
		return true
	})
}

// ToggleBulletList wraps the selected blocks in a bullet list, switches an
// ordered list to bullets, or lifts the blocks out when already bulleted.
func (e *Editor) ToggleBulletList() bool { return e.toggleList(BulletList) }

// ToggleOrderedList is ToggleBulletList for ordered lists.
func (e *Editor) ToggleOrderedList() bool { return e.toggleList(OrderedList) }

func (e *Editor) toggleList(t ListType) bool {
	if e.inert() || !e.exts.list(t) || !e.exts[ExtListItem] {
		return false
	}
	return e.run(actionFormat, func() bool {
		lift := e.everyBlock(func(b Block) bool { return b.List == t })
		e.eachBlock(func(b *Block) {
			if lift {
				b.List = NoList
			} else {
				b.List = t
			}
		})
		return true
	})
}

// ToggleBlockquote wraps the selected blocks in a blockquote, or unwraps them.
func (e *Editor) ToggleBlockquote() bool {
	if e.inert() || !e.exts[ExtBlockquote] {
		return false
	}
	return e.run(actionFormat, func() bool {
		unwrap := e.everyBlock(func(b Block) bool { return b.Quote })
		e.eachBlock(func(b *Block) { b.Quote = !unwrap })
		return true
	})
}

func (e *Editor) eachBlock(fn func(b *Block)) {
	for i := e.sel.From().Block; i <= e.sel.To().Block; i++ {
		fn(&e.doc[i])
	}
}

func (e *Editor) everyBlock(pred func(b Block) bool) bool {
	for i := e.sel.From().Block; i <= e.sel.To().Block; i++ {
		if !pred(e.doc[i]) {
			return false
		}
	}
	return true
}
