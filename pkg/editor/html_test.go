package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/pkg/editor"
)

func TestMarkup_RoundTrip(t *testing.T) {
	docs := []string{
		"<p></p>",
		"<p>Hello</p>",
		"<h2>Title</h2><p>body</p>",
		"<p><strong>bold</strong> <em>italic</em> <u>under</u> <s>strike</s> <code>code</code></p>",
		"<p><strong>a<em>b</em></strong>c</p>",
		"<ul><li><p>one</p></li><li><p>two</p></li></ul><ol><li><p>three</p></li></ol>",
		"<blockquote><p>quoted</p><ul><li><p>item</p></li></ul></blockquote><p>after</p>",
		"<p>a &lt; b &amp; c</p>",
	}

	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			e := editor.New(editor.WithContent(doc))
			assert.Equal(t, doc, e.HTML())
		})
	}
}

func TestMarkup_ImportAliases(t *testing.T) {
	cases := map[string]string{
		"<p><b>b</b><i>i</i><strike>s</strike><del>d</del></p>": "<p><strong>b</strong><em>i</em><s>sd</s></p>",
		"<li>bare item</li>":                                      "<p>bare item</p>",
		"<ul><li>bare item</li></ul>":                             "<ul><li><p>bare item</p></li></ul>",
		"plain text":                                              "<p>plain text</p>",
		"<div><span>nested</span> text</div>":                     "<p>nested text</p>",
		"<p>line\n   wrapped</p>":                                 "<p>line wrapped</p>",
		"<p>a<br>b</p>":                                           "<p>a</p><p>b</p>",
		"<h1>one</h1><h6>six</h6>":                                "<h1>one</h1><h6>six</h6>",
		"<p><code><strong>x</strong></code></p>":                  "<p><code>x</code></p>",
		"":                                                        "<p></p>",
	}

	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			e := editor.New()
			require.True(t, e.SetContent(in))
			assert.Equal(t, want, e.HTML())
		})
	}
}

func TestMarkup_DisabledExtensionsDegrade(t *testing.T) {
	e := editor.New(editor.WithExtensions(editor.ExtParagraph, editor.ExtBold))
	require.True(t, e.SetContent("<h2>t</h2><ul><li><p><em>x</em></p></li></ul><blockquote><p><strong>q</strong></p></blockquote>"))

	assert.Equal(t, "<p>t</p><p>x</p><p><strong>q</strong></p>", e.HTML())
}

func TestMarkup_Blocks(t *testing.T) {
	e := editor.New(editor.WithContent("<blockquote><ol><li><h3>x</h3></li></ol></blockquote>"))

	blocks := e.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, editor.Heading, blocks[0].Type)
	assert.Equal(t, 3, blocks[0].Level)
	assert.Equal(t, editor.OrderedList, blocks[0].List)
	assert.True(t, blocks[0].Quote)
	assert.Equal(t, "x", blocks[0].Text())
}

func TestMarkSet(t *testing.T) {
	var s editor.MarkSet
	s = s.Add(editor.Bold).Add(editor.Italic)
	assert.Equal(t, "bold,italic", s.String())

	s = s.Add(editor.Code)
	assert.Equal(t, "code", s.String())
	assert.Equal(t, s, s.Add(editor.Strike))

	s = s.Remove(editor.Code)
	assert.Equal(t, "", s.String())
}
