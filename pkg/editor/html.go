package editor

import (
	"strconv"
	"strings"
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// serializeHTML renders the document. Consecutive quoted blocks share one
// blockquote; inside it, consecutive blocks of the same list share one list.
func serializeHTML(doc document) string {
	var sb strings.Builder
	for i := 0; i < len(doc); {
		j := i + 1
		for j < len(doc) && doc[j].Quote == doc[i].Quote {
			j++
		}
		if doc[i].Quote {
			sb.WriteString("<blockquote>")
			writeLists(&sb, doc[i:j])
			sb.WriteString("</blockquote>")
		} else {
			writeLists(&sb, doc[i:j])
		}
		i = j
	}
	return sb.String()
}

func writeLists(sb *strings.Builder, blocks []Block) {
	for i := 0; i < len(blocks); {
		if blocks[i].List == NoList {
			writeBlock(sb, blocks[i])
			i++
			continue
		}

		tag := "ul"
		if blocks[i].List == OrderedList {
			tag = "ol"
		}
		sb.WriteString("<" + tag + ">")
		j := i
		for ; j < len(blocks) && blocks[j].List == blocks[i].List; j++ {
			sb.WriteString("<li>")
			writeBlock(sb, blocks[j])
			sb.WriteString("</li>")
		}
		sb.WriteString("</" + tag + ">")
		i = j
	}
}

func writeBlock(sb *strings.Builder, b Block) {
	tag := "p"
	if b.Type == Heading {
		tag = "h" + strconv.Itoa(b.Level)
	}
	sb.WriteString("<" + tag + ">")
	writeSpans(sb, b.Spans)
	sb.WriteString("</" + tag + ">")
}

// writeSpans keeps mark tags open across neighbouring spans that share them.
func writeSpans(sb *strings.Builder, spans []Span) {
	var open []Mark
	for _, s := range spans {
		want := s.Marks.Marks()
		keep := 0
		for keep < len(open) && keep < len(want) && open[keep] == want[keep] {
			keep++
		}
		for k := len(open) - 1; k >= keep; k-- {
			sb.WriteString("</" + markTags[open[k]] + ">")
		}
		for _, m := range want[keep:] {
			sb.WriteString("<" + markTags[m] + ">")
		}
		open = want
		sb.WriteString(textEscaper.Replace(s.Text))
	}
	for k := len(open) - 1; k >= 0; k-- {
		sb.WriteString("</" + markTags[open[k]] + ">")
	}
}
