// Package body defines the external document format exchanged with hosts and
// converts it to and from the editor tree.
package body

import (
	"strings"

	"github.com/iw2rmb/richtext/document"
)

// BlockType names a top-level block kind.
type BlockType string

const (
	ParagraphBlock  BlockType = "paragraph"
	BulletListBlock BlockType = "bullet-list"
)

// InlineKind distinguishes text runs from links.
type InlineKind int

const (
	TextInline InlineKind = iota
	LinkInline
)

// Body is a composed document.
type Body struct {
	Content []Block
}

// Block is a paragraph (Children) or a bullet list (Items).
type Block struct {
	Type     BlockType
	Children []Inline
	Items    []ListItem
}

// ListItem is one entry of a bullet list.
type ListItem struct {
	Children []Inline
}

// Inline is a text run with marks, or a link with a URL and plain text.
type Inline struct {
	Kind  InlineKind
	Text  string
	Marks document.Marks
	URL   string
}

// Paragraph returns a paragraph block.
func Paragraph(children ...Inline) Block {
	return Block{Type: ParagraphBlock, Children: children}
}

// BulletList returns a bullet list block.
func BulletList(items ...ListItem) Block {
	return Block{Type: BulletListBlock, Items: items}
}

// Item returns a list item.
func Item(children ...Inline) ListItem { return ListItem{Children: children} }

// Text returns a text inline.
func Text(s string, marks ...document.Mark) Inline {
	in := Inline{Kind: TextInline, Text: s}
	for _, m := range marks {
		in.Marks = in.Marks.With(m, true)
	}
	return in
}

// Link returns a link inline.
func Link(url, text string) Inline {
	return Inline{Kind: LinkInline, Text: text, URL: url}
}

// IsEmpty reports whether the body has no visible text.
func (b Body) IsEmpty() bool {
	return strings.TrimSpace(b.PlainText()) == ""
}

// PlainText returns the text of the body, one line per paragraph or item.
func (b Body) PlainText() string {
	var lines []string
	for _, blk := range b.Content {
		switch blk.Type {
		case ParagraphBlock:
			lines = append(lines, inlineText(blk.Children))
		case BulletListBlock:
			for _, it := range blk.Items {
				lines = append(lines, "- "+inlineText(it.Children))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func inlineText(ins []Inline) string {
	var sb strings.Builder
	for _, in := range ins {
		sb.WriteString(in.Text)
	}
	return sb.String()
}
