package richtext

import (
	"html"
	"strings"
)

// HTML renders the document. All text is escaped; the only tags produced are
// h3, ul, li, strong and br.
func (d Document) HTML() string {
	var b strings.Builder
	for _, blk := range d.Blocks {
		switch blk.Kind {
		case BlockHeading:
			b.WriteString("<h3>")
			writeInlines(&b, blk.Inlines)
			b.WriteString("</h3>")
		case BlockList:
			b.WriteString("<ul>")
			for _, item := range blk.Items {
				b.WriteString("<li>")
				writeInlines(&b, item)
				b.WriteString("</li>")
			}
			b.WriteString("</ul>")
		case BlockText:
			for i, line := range blk.Lines {
				if i > 0 {
					b.WriteString("<br>")
				}
				writeInlines(&b, line)
			}
		}
	}
	return b.String()
}

func writeInlines(b *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		if in.Kind == InlineStrong {
			b.WriteString("<strong>")
			b.WriteString(html.EscapeString(in.Text))
			b.WriteString("</strong>")
			continue
		}
		b.WriteString(html.EscapeString(in.Text))
	}
}

// ErrorHTML renders an inline error message.
func ErrorHTML(message string) string {
	return `<p class="error">` + html.EscapeString(message) + `</p>`
}
