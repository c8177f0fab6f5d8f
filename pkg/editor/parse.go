package editor

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parseContext is what a node inherits from its ancestors.
type parseContext struct {
	marks MarkSet
	list  ListType
	quote bool
}

type parser struct {
	exts    extensionSet
	doc     document
	current *Block
}

// parseHTML builds a document from markup. Marks and blocks whose extension
// is not registered are dropped; unknown elements contribute their text.
func parseHTML(markup string, exts extensionSet) (document, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("invalid markup: %w", err)
	}

	p := &parser{exts: exts}
	for _, n := range nodes {
		p.walk(n, parseContext{})
	}
	p.finish()

	if len(p.doc) == 0 {
		return newDocument(), nil
	}
	return p.doc, nil
}

func (p *parser) walk(n *html.Node, ctx parseContext) {
	switch n.Type {
	case html.TextNode:
		p.text(n.Data, ctx)
		return
	case html.ElementNode:
	default:
		p.children(n, ctx)
		return
	}

	switch n.DataAtom {
	case atom.P:
		p.block(n, ctx, Paragraph, 0)
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		if !p.exts[ExtHeading] {
			p.block(n, ctx, Paragraph, 0)
			return
		}
		p.block(n, ctx, Heading, int(n.Data[1]-'0'))
	case atom.Ul, atom.Ol:
		t := BulletList
		if n.DataAtom == atom.Ol {
			t = OrderedList
		}
		p.finish()
		if p.exts.list(t) {
			ctx.list = t
		}
		p.children(n, ctx)
		p.finish()
	case atom.Li, atom.Div:
		p.finish()
		p.children(n, ctx)
		p.finish()
	case atom.Blockquote:
		p.finish()
		if p.exts[ExtBlockquote] {
			ctx.quote = true
		}
		p.children(n, ctx)
		p.finish()
	case atom.Br:
		if p.current != nil {
			p.finish()
			p.open(ctx, Paragraph, 0)
		}
	case atom.Strong, atom.B:
		p.children(n, p.withMark(ctx, Bold))
	case atom.Em, atom.I:
		p.children(n, p.withMark(ctx, Italic))
	case atom.U:
		p.children(n, p.withMark(ctx, Underline))
	case atom.S, atom.Strike, atom.Del:
		p.children(n, p.withMark(ctx, Strike))
	case atom.Code:
		p.children(n, p.withMark(ctx, Code))
	case atom.Script, atom.Style:
	default:
		p.children(n, ctx)
	}
}

func (p *parser) children(n *html.Node, ctx parseContext) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c, ctx)
	}
}

func (p *parser) withMark(ctx parseContext, m Mark) parseContext {
	if p.exts.mark(m) {
		ctx.marks = ctx.marks.Add(m)
	}
	return ctx
}

func (p *parser) block(n *html.Node, ctx parseContext, t BlockType, level int) {
	p.finish()
	p.open(ctx, t, level)
	p.children(n, ctx)
	p.finish()
}

func (p *parser) open(ctx parseContext, t BlockType, level int) {
	p.current = &Block{Type: t, Level: level, List: ctx.list, Quote: ctx.quote}
}

func (p *parser) finish() {
	if p.current == nil {
		return
	}
	p.current.Spans = normalizeSpans(p.current.Spans)
	p.doc = append(p.doc, *p.current)
	p.current = nil
}

// text appends a text node. Whitespace runs collapse to one space, and
// whitespace between blocks is ignored.
func (p *parser) text(data string, ctx parseContext) {
	text := collapseSpace(data)
	if p.current == nil {
		if strings.TrimSpace(text) == "" {
			return
		}
		p.open(ctx, Paragraph, 0)
	}
	p.current.Spans = append(p.current.Spans, Span{Text: text, Marks: ctx.marks})
}

func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				sb.WriteByte(' ')
			}
			space = true
		default:
			sb.WriteRune(r)
			space = false
		}
	}
	return sb.String()
}
