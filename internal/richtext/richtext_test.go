package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_HTML(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Plain text",
			input:    "hello",
			expected: "hello",
		},
		{
			name:     "Bold",
			input:    "a **b** c **d**",
			expected: "a <strong>b</strong> c <strong>d</strong>",
		},
		{
			name:     "Unmatched bold marker stays literal",
			input:    "a ** b",
			expected: "a ** b",
		},
		{
			name:     "Bold does not span lines",
			input:    "**a\nb**",
			expected: "**a<br>b**",
		},
		{
			name:     "Newlines become breaks",
			input:    "a\nb\n\nc",
			expected: "a<br>b<br><br>c",
		},
		{
			name:     "Heading",
			input:    "### Title\nbody",
			expected: "<h3>Title</h3>body",
		},
		{
			name:     "Bold inside heading",
			input:    "### **Big** title",
			expected: "<h3><strong>Big</strong> title</h3>",
		},
		{
			name:     "One blank line after heading is dropped",
			input:    "### Title\n\nbody",
			expected: "<h3>Title</h3>body",
		},
		{
			name:     "Second blank line after heading is kept",
			input:    "### Title\n\n\nbody",
			expected: "<h3>Title</h3><br>body",
		},
		{
			name:     "Blank lines before heading are dropped",
			input:    "intro\n\n### Title",
			expected: "intro<h3>Title</h3>",
		},
		{
			name:     "Consecutive items share one list",
			input:    "* one\n* **two**\n* three",
			expected: "<ul><li>one</li><li><strong>two</strong></li><li>three</li></ul>",
		},
		{
			name:     "Blank lines after list are dropped",
			input:    "* one\n\n\nafter",
			expected: "<ul><li>one</li></ul>after",
		},
		{
			name:     "Text between lists splits them",
			input:    "* a\nmid\n* b",
			expected: "<ul><li>a</li></ul>mid<ul><li>b</li></ul>",
		},
		{
			name:     "List after heading",
			input:    "### Risks\n* market\n* liquidity",
			expected: "<h3>Risks</h3><ul><li>market</li><li>liquidity</li></ul>",
		},
		{
			name:     "Markup in text is escaped",
			input:    "<script>alert(1)</script> & **<b>**",
			expected: "&lt;script&gt;alert(1)&lt;/script&gt; &amp; <strong>&lt;b&gt;</strong>",
		},
		{
			name:     "Heading needs a space",
			input:    "###Title",
			expected: "###Title",
		},
		{
			name:     "Trailing newline",
			input:    "a\n",
			expected: "a<br>",
		},
		{
			name:     "CRLF is normalized",
			input:    "a\r\nb",
			expected: "a<br>b",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Format(tc.input).HTML())
		})
	}
}

func TestFormat_Structure(t *testing.T) {
	doc := Format("### Ringkasan\nPortofolio **seimbang**.\n* BBCA\n* BTC")

	require.Len(t, doc.Blocks, 3)
	assert.Equal(t, BlockHeading, doc.Blocks[0].Kind)
	assert.Equal(t, []Inline{{Kind: InlineText, Text: "Ringkasan"}}, doc.Blocks[0].Inlines)

	assert.Equal(t, BlockText, doc.Blocks[1].Kind)
	require.Len(t, doc.Blocks[1].Lines, 1)
	assert.Equal(t, []Inline{
		{Kind: InlineText, Text: "Portofolio "},
		{Kind: InlineStrong, Text: "seimbang"},
		{Kind: InlineText, Text: "."},
	}, doc.Blocks[1].Lines[0])

	assert.Equal(t, BlockList, doc.Blocks[2].Kind)
	assert.Len(t, doc.Blocks[2].Items, 2)
}

func TestFormat_Empty(t *testing.T) {
	doc := Format("")
	assert.Equal(t, "", doc.HTML())
	assert.NotNil(t, doc.Blocks)
}

func TestPlainText(t *testing.T) {
	doc := Format("### T\n**a** b\n* x\n* y")
	assert.Equal(t, "T\na b\n- x\n- y", doc.PlainText())
}

func TestErrorHTML(t *testing.T) {
	assert.Equal(t, `<p class="error">bad &lt;input&gt;</p>`, ErrorHTML("bad <input>"))
}
