package body

import (
	"io"
	"strings"
	"unicode"

	md "github.com/nao1215/markdown"

	"github.com/iw2rmb/richtext/document"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "~", `\~`, "`", "\\`", "[", `\[`, "]", `\]`,
)

// WriteMarkdown renders b as CommonMark. Paragraphs are separated by a blank
// line and soft breaks become backslash line breaks.
func WriteMarkdown(w io.Writer, b Body) error {
	doc := md.NewMarkdown(w)
	for i, blk := range b.Content {
		if i > 0 {
			doc.PlainText("")
		}
		switch blk.Type {
		case ParagraphBlock:
			doc.PlainText(markdownLine(blk.Children, "\\\n"))
		case BulletListBlock:
			items := make([]string, 0, len(blk.Items))
			for _, it := range blk.Items {
				items = append(items, markdownLine(it.Children, "\\\n  "))
			}
			doc.BulletList(items...)
		}
	}
	return doc.Build()
}

// Markdown returns b rendered by WriteMarkdown.
func (b Body) Markdown() string {
	var sb strings.Builder
	_ = WriteMarkdown(&sb, b) // strings.Builder never fails
	return sb.String()
}

func markdownLine(ins []Inline, softBreak string) string {
	var sb strings.Builder
	for _, in := range ins {
		if in.Kind == LinkInline {
			sb.WriteString(md.Link(markdownEscaper.Replace(in.Text), in.URL))
			continue
		}
		sb.WriteString(markdownSpan(in.Text, in.Marks))
	}
	return strings.ReplaceAll(sb.String(), "\n", softBreak)
}

// markdownSpan wraps s in the delimiters of marks. Surrounding whitespace
// stays outside the delimiters.
func markdownSpan(s string, marks document.Marks) string {
	core := strings.TrimFunc(s, unicode.IsSpace)
	if core == "" || marks == (document.Marks{}) {
		return markdownEscaper.Replace(s)
	}
	lead := s[:strings.Index(s, core)]
	trail := s[len(lead)+len(core):]

	if marks.Code {
		core = md.Code(core)
	} else {
		core = markdownEscaper.Replace(core)
	}
	if marks.Strikethrough {
		core = md.Strikethrough(core)
	}
	if marks.Italic {
		core = md.Italic(core)
	}
	if marks.Bold {
		core = md.Bold(core)
	}
	return lead + core + trail
}
