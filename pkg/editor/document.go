package editor

import "unicode/utf8"

// BlockType is the kind of a text block.
type BlockType string

const (
	Paragraph BlockType = "paragraph"
	Heading   BlockType = "heading"
)

// ListType is the list a block belongs to, if any.
type ListType string

const (
	NoList      ListType = ""
	BulletList  ListType = "bulletList"
	OrderedList ListType = "orderedList"
)

// Span is a run of text sharing the same marks.
type Span struct {
	Text  string
	Marks MarkSet
}

// Block is one text block of the document.
// Level is only meaningful for headings (1-6).
type Block struct {
	Type  BlockType
	Level int
	List  ListType
	Quote bool
	Spans []Span
}

func paragraph(spans ...Span) Block {
	return Block{Type: Paragraph, Spans: spans}
}

// Len returns the length of the block text in runes.
func (b Block) Len() int {
	n := 0
	for _, s := range b.Spans {
		n += utf8.RuneCountInString(s.Text)
	}
	return n
}

// Text returns the plain text of the block.
func (b Block) Text() string {
	out := make([]byte, 0, 16)
	for _, s := range b.Spans {
		out = append(out, s.Text...)
	}
	return string(out)
}

func (b Block) clone() Block {
	b.Spans = append([]Span(nil), b.Spans...)
	return b
}

// sameShape reports whether two blocks have equal type and wrappers.
func (b Block) sameShape(o Block) bool {
	return b.Type == o.Type && b.Level == o.Level && b.List == o.List && b.Quote == o.Quote
}

func (b Block) equal(o Block) bool {
	if !b.sameShape(o) || len(b.Spans) != len(o.Spans) {
		return false
	}
	for i := range b.Spans {
		if b.Spans[i] != o.Spans[i] {
			return false
		}
	}
	return true
}

// marksAt returns the marks of the rune at offset, and false past the end.
func (b Block) marksAt(offset int) (MarkSet, bool) {
	pos := 0
	for _, s := range b.Spans {
		n := utf8.RuneCountInString(s.Text)
		if offset < pos+n {
			return s.Marks, true
		}
		pos += n
	}
	return 0, false
}

// marksAround returns the marks a cursor at offset inherits: those of the rune
// before it, or of the first rune when the cursor is at the block start.
func (b Block) marksAround(offset int) MarkSet {
	if offset > 0 {
		if m, ok := b.marksAt(offset - 1); ok {
			return m
		}
	}
	m, _ := b.marksAt(0)
	return m
}

// slice returns the spans covering runes [from, to).
func (b Block) slice(from, to int) []Span {
	var out []Span
	pos := 0
	for _, s := range b.Spans {
		runes := []rune(s.Text)
		start, end := pos, pos+len(runes)
		pos = end
		lo, hi := max(start, from), min(end, to)
		if lo >= hi {
			continue
		}
		out = append(out, Span{Text: string(runes[lo-start : hi-start]), Marks: s.Marks})
	}
	return out
}

// mapMarks applies fn to the marks of runes [from, to).
func (b *Block) mapMarks(from, to int, fn func(MarkSet) MarkSet) {
	n := b.Len()
	mid := b.slice(from, to)
	for i := range mid {
		mid[i].Marks = fn(mid[i].Marks)
	}
	spans := append(b.slice(0, from), mid...)
	b.Spans = normalizeSpans(append(spans, b.slice(to, n)...))
}

// normalizeSpans drops empty spans and merges neighbours with equal marks.
func normalizeSpans(spans []Span) []Span {
	out := spans[:0:0]
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if last := len(out) - 1; last >= 0 && out[last].Marks == s.Marks {
			out[last].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}

// Pos addresses a point in the document.
type Pos struct {
	Block  int
	Offset int
}

func comparePos(a, b Pos) int {
	switch {
	case a.Block < b.Block:
		return -1
	case a.Block > b.Block:
		return 1
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	}
	return 0
}

// Selection is an anchor/head pair. Head is where the cursor is.
type Selection struct {
	Anchor Pos
	Head   Pos
}

// Empty reports whether the selection is a cursor.
func (s Selection) Empty() bool { return s.Anchor == s.Head }

// From returns the first position of the selection in document order.
func (s Selection) From() Pos {
	if comparePos(s.Anchor, s.Head) <= 0 {
		return s.Anchor
	}
	return s.Head
}

// To returns the last position of the selection in document order.
func (s Selection) To() Pos {
	if comparePos(s.Anchor, s.Head) <= 0 {
		return s.Head
	}
	return s.Anchor
}

func cursor(p Pos) Selection { return Selection{Anchor: p, Head: p} }

type document []Block

func newDocument() document {
	return document{paragraph()}
}

func (d document) clone() document {
	out := make(document, len(d))
	for i, b := range d {
		out[i] = b.clone()
	}
	return out
}

func (d document) equal(o document) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if !d[i].equal(o[i]) {
			return false
		}
	}
	return true
}

func (d document) clamp(p Pos) Pos {
	p.Block = min(max(p.Block, 0), len(d)-1)
	p.Offset = min(max(p.Offset, 0), d[p.Block].Len())
	return p
}

func (d document) end() Pos {
	last := len(d) - 1
	return Pos{Block: last, Offset: d[last].Len()}
}

// blockRange calls fn with the rune range of every block touched by [from, to].
func (d document) blockRange(from, to Pos, fn func(i int, start, end int)) {
	for i := from.Block; i <= to.Block; i++ {
		start, end := 0, d[i].Len()
		if i == from.Block {
			start = from.Offset
		}
		if i == to.Block {
			end = to.Offset
		}
		fn(i, start, end)
	}
}
