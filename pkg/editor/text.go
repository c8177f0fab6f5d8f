package editor

import (
	"strings"

	"github.com/rivo/uniseg"
)

// InsertText replaces the selection with text. Newlines split blocks.
// Inserted text takes the stored marks, or the marks around the cursor.
func (e *Editor) InsertText(text string) bool {
	if e.inert() || text == "" {
		return false
	}
	return e.run(actionInsert, func() bool {
		marks := e.insertionMarks()
		e.deleteSelection()

		for i, line := range strings.Split(text, "\n") {
			if i > 0 {
				e.splitBlock()
			}
			e.insertAt(line, marks)
		}
		e.stored = nil
		return true
	})
}

// Enter splits the block at the cursor. In an empty list item it lifts the
// item out of the list instead.
func (e *Editor) Enter() bool {
	if e.inert() {
		return false
	}
	return e.run(actionInsert, func() bool {
		e.deleteSelection()
		b := e.doc[e.sel.Head.Block]
		if b.List != NoList && b.Len() == 0 {
			e.doc[e.sel.Head.Block].List = NoList
			return true
		}
		e.splitBlock()
		return true
	})
}

// DeleteBackward removes the selection, or the grapheme cluster before the
// cursor. At the start of a block it first unwraps list and quote, then joins
// the block with the previous one.
func (e *Editor) DeleteBackward() bool {
	if e.inert() {
		return false
	}
	return e.run(actionDelete, func() bool {
		if !e.sel.Empty() {
			e.deleteSelection()
			return true
		}

		p := e.sel.Head
		b := &e.doc[p.Block]
		if p.Offset > 0 {
			n := lastClusterLen(string([]rune(b.Text())[:p.Offset]))
			e.deleteRange(Pos{Block: p.Block, Offset: p.Offset - n}, p)
			return true
		}

		switch {
		case b.List != NoList:
			b.List = NoList
		case b.Quote:
			b.Quote = false
		case p.Block > 0:
			prev := &e.doc[p.Block-1]
			at := Pos{Block: p.Block - 1, Offset: prev.Len()}
			prev.Spans = normalizeSpans(append(prev.Spans, b.Spans...))
			e.doc = append(e.doc[:p.Block], e.doc[p.Block+1:]...)
			e.sel = cursor(at)
		case b.Type != Paragraph:
			b.Type, b.Level = Paragraph, 0
		default:
			return false
		}
		return true
	})
}

func (e *Editor) insertionMarks() MarkSet {
	if e.stored != nil {
		return *e.stored
	}
	from := e.sel.From()
	b := e.doc[from.Block]
	if !e.sel.Empty() {
		if m, ok := b.marksAt(from.Offset); ok {
			return m
		}
	}
	return b.marksAround(from.Offset)
}

func (e *Editor) insertAt(text string, marks MarkSet) {
	if text == "" {
		return
	}
	p := e.sel.Head
	b := &e.doc[p.Block]
	spans := append(b.slice(0, p.Offset), Span{Text: text, Marks: marks})
	b.Spans = normalizeSpans(append(spans, b.slice(p.Offset, b.Len())...))
	e.sel = cursor(Pos{Block: p.Block, Offset: p.Offset + len([]rune(text))})
}

// splitBlock splits the block at the cursor. The tail keeps list and quote;
// a heading split at its end continues as a paragraph.
func (e *Editor) splitBlock() {
	p := e.sel.Head
	b := e.doc[p.Block]
	n := b.Len()

	head := b.clone()
	head.Spans = normalizeSpans(b.slice(0, p.Offset))
	tail := b.clone()
	tail.Spans = normalizeSpans(b.slice(p.Offset, n))
	if b.Type == Heading && p.Offset == n {
		tail.Type, tail.Level = Paragraph, 0
	}

	doc := make(document, 0, len(e.doc)+1)
	doc = append(doc, e.doc[:p.Block]...)
	doc = append(doc, head, tail)
	e.doc = append(doc, e.doc[p.Block+1:]...)
	e.sel = cursor(Pos{Block: p.Block + 1})
}

func (e *Editor) deleteSelection() {
	if e.sel.Empty() {
		return
	}
	e.deleteRange(e.sel.From(), e.sel.To())
}

// deleteRange removes [from, to). Across blocks, the first block keeps its
// type and absorbs the tail of the last one.
func (e *Editor) deleteRange(from, to Pos) {
	first := e.doc[from.Block]
	last := e.doc[to.Block]

	merged := first.clone()
	spans := first.slice(0, from.Offset)
	merged.Spans = normalizeSpans(append(spans, last.slice(to.Offset, last.Len())...))

	doc := make(document, 0, len(e.doc))
	doc = append(doc, e.doc[:from.Block]...)
	doc = append(doc, merged)
	e.doc = append(doc, e.doc[to.Block+1:]...)
	e.sel = cursor(from)
}

// lastClusterLen returns the rune length of the last grapheme cluster of s.
func lastClusterLen(s string) int {
	n := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		n = len(g.Runes())
	}
	if n == 0 {
		return 1
	}
	return n
}
