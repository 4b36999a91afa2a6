// Package richtext turns the lightweight markup returned by the AI text
// service into a structured document that can be rendered without
// injecting untrusted markup.
//
// Four rules are recognized:
//
//	**bold**      strong emphasis, within a single line
//	### heading   a heading line
//	* item        a list item; consecutive items share one list
//	other lines   text; consecutive text lines are separated by line breaks
//
// No break is produced next to a heading or a list: blank lines directly
// before either are dropped, one blank line after a heading is dropped, and
// all blank lines after a list are dropped.
package richtext

import (
	"strings"
)

// InlineKind distinguishes plain text from emphasized text.
type InlineKind string

const (
	InlineText   InlineKind = "text"
	InlineStrong InlineKind = "strong"
)

// Inline is a run of text within a line.
type Inline struct {
	Kind InlineKind `json:"kind"`
	Text string     `json:"text"`
}

// BlockKind is the type of a top-level document block.
type BlockKind string

const (
	BlockHeading BlockKind = "heading"
	BlockList    BlockKind = "list"
	BlockText    BlockKind = "text"
)

// Block is a heading, a list or a run of text lines.
type Block struct {
	Kind BlockKind `json:"kind"`
	// Heading content.
	Inlines []Inline `json:"inlines,omitempty"`
	// List items.
	Items [][]Inline `json:"items,omitempty"`
	// Text lines, rendered with a line break between each pair.
	Lines [][]Inline `json:"lines,omitempty"`
}

// Document is formatted AI output.
type Document struct {
	Blocks []Block `json:"blocks"`
}

const (
	headingPrefix = "### "
	itemPrefix    = "* "
)

type after int

const (
	afterNothing after = iota
	afterHeading
	afterList
)

// Format parses text into a Document.
func Format(text string) Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	doc := Document{Blocks: []Block{}}
	state := afterNothing

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, headingPrefix):
			doc.trimTrailingBlank()
			doc.Blocks = append(doc.Blocks, Block{Kind: BlockHeading, Inlines: parseInlines(line[len(headingPrefix):])})
			state = afterHeading

		case strings.HasPrefix(line, itemPrefix):
			doc.trimTrailingBlank()
			item := parseInlines(line[len(itemPrefix):])
			if last := doc.last(); last != nil && last.Kind == BlockList {
				last.Items = append(last.Items, item)
			} else {
				doc.Blocks = append(doc.Blocks, Block{Kind: BlockList, Items: [][]Inline{item}})
			}
			state = afterList

		default:
			blank := strings.TrimSpace(line) == ""
			switch state {
			case afterList:
				if blank {
					continue
				}
				line = strings.TrimLeft(line, " \t\v\f\r")
			case afterHeading:
				state = afterNothing
				if blank {
					continue
				}
			}
			state = afterNothing
			if last := doc.last(); last != nil && last.Kind == BlockText {
				last.Lines = append(last.Lines, parseInlines(line))
			} else {
				doc.Blocks = append(doc.Blocks, Block{Kind: BlockText, Lines: [][]Inline{parseInlines(line)}})
			}
		}
	}
	return doc
}

func (d *Document) last() *Block {
	if len(d.Blocks) == 0 {
		return nil
	}
	return &d.Blocks[len(d.Blocks)-1]
}

// trimTrailingBlank drops blank lines that end the current text block,
// and the block itself if nothing is left.
func (d *Document) trimTrailingBlank() {
	last := d.last()
	if last == nil || last.Kind != BlockText {
		return
	}
	n := len(last.Lines)
	for n > 0 && isBlank(last.Lines[n-1]) {
		n--
	}
	last.Lines = last.Lines[:n]
	if n == 0 {
		d.Blocks = d.Blocks[:len(d.Blocks)-1]
	}
}

func isBlank(line []Inline) bool {
	for _, in := range line {
		if in.Kind == InlineStrong || strings.TrimSpace(in.Text) != "" {
			return false
		}
	}
	return true
}

// parseInlines splits a line on **strong** markers, leftmost-shortest.
// An unmatched marker is kept as text.
func parseInlines(s string) []Inline {
	inlines := []Inline{}
	for {
		open := strings.Index(s, "**")
		if open < 0 {
			break
		}
		closing := strings.Index(s[open+2:], "**")
		if closing < 0 {
			break
		}
		if open > 0 {
			inlines = append(inlines, Inline{Kind: InlineText, Text: s[:open]})
		}
		inlines = append(inlines, Inline{Kind: InlineStrong, Text: s[open+2 : open+2+closing]})
		s = s[open+2+closing+2:]
	}
	if s != "" || len(inlines) == 0 {
		inlines = append(inlines, Inline{Kind: InlineText, Text: s})
	}
	return inlines
}

// PlainText returns the document without any markup, one line per line.
func (d Document) PlainText() string {
	var b strings.Builder
	for i, blk := range d.Blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch blk.Kind {
		case BlockHeading:
			writePlain(&b, blk.Inlines)
		case BlockList:
			for j, item := range blk.Items {
				if j > 0 {
					b.WriteByte('\n')
				}
				b.WriteString("- ")
				writePlain(&b, item)
			}
		case BlockText:
			for j, line := range blk.Lines {
				if j > 0 {
					b.WriteByte('\n')
				}
				writePlain(&b, line)
			}
		}
	}
	return b.String()
}

func writePlain(b *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		b.WriteString(in.Text)
	}
}
