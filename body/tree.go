package body

import "github.com/iw2rmb/richtext/document"

// ToTree converts b into editor nodes. Unknown block types are dropped. The
// result is not normalized.
func ToTree(b Body) []document.Node {
	nodes := make([]document.Node, 0, len(b.Content))
	for _, blk := range b.Content {
		switch blk.Type {
		case ParagraphBlock:
			nodes = append(nodes, document.NewElement(document.Paragraph, toInlines(blk.Children)...))
		case BulletListBlock:
			items := make([]document.Node, 0, len(blk.Items))
			for _, it := range blk.Items {
				items = append(items, document.NewElement(document.ListItem, toInlines(it.Children)...))
			}
			nodes = append(nodes, document.NewBulletList(items...))
		}
	}
	return nodes
}

func toInlines(ins []Inline) []document.Node {
	out := make([]document.Node, 0, len(ins))
	for _, in := range ins {
		switch in.Kind {
		case TextInline:
			out = append(out, &document.Text{Text: in.Text, Marks: in.Marks})
		case LinkInline:
			out = append(out, document.NewLink(in.URL, in.Text))
		}
	}
	return out
}

// FromTree converts editor nodes into a body. Nodes that have no external
// form are dropped; a link keeps only its URL and plain text.
func FromTree(nodes []document.Node) Body {
	b := Body{Content: make([]Block, 0, len(nodes))}
	for _, n := range nodes {
		el, ok := n.(*document.Element)
		if !ok {
			continue
		}
		switch el.Type {
		case document.Paragraph:
			b.Content = append(b.Content, Paragraph(fromInlines(el.Children)...))
		case document.BulletList:
			items := make([]ListItem, 0, len(el.Children))
			for _, c := range el.Children {
				if document.Is(c, document.ListItem) {
					items = append(items, Item(fromInlines(c.(*document.Element).Children)...))
				}
			}
			b.Content = append(b.Content, BulletList(items...))
		}
	}
	return b
}

func fromInlines(nodes []document.Node) []Inline {
	out := make([]Inline, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *document.Text:
			out = append(out, Inline{Kind: TextInline, Text: n.Text, Marks: n.Marks})
		case *document.Element:
			if n.Type == document.Link {
				out = append(out, Link(n.URL, document.StringOf(n)))
			}
		}
	}
	return out
}
