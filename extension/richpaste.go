package extension

import (
	"strings"

	"github.com/iw2rmb/richtext/body"
	"github.com/iw2rmb/richtext/document"
	"github.com/iw2rmb/richtext/editor"
)

// RichPaste inserts pasted text/html with its marks and links. Every
// paragraph or list item of the clipboard starts a new block at the caret.
// Data without usable HTML falls through to plain text.
func RichPaste(e *editor.Editor, next editor.Handlers) editor.Handlers {
	return editor.Handlers{
		InsertData: func(data editor.DataTransfer) error {
			src := data.GetData("text/html")
			if strings.TrimSpace(src) == "" {
				return next.InsertData(data)
			}
			b, err := body.ParseHTML(strings.NewReader(src))
			if err != nil || b.IsEmpty() {
				return next.InsertData(data)
			}
			return pasteLines(e, pastedLines(b))
		},
	}
}

func pastedLines(b body.Body) [][]document.Node {
	var lines [][]document.Node
	for _, blk := range b.Content {
		switch blk.Type {
		case body.ParagraphBlock:
			lines = append(lines, pastedInlines(blk.Children))
		case body.BulletListBlock:
			for _, it := range blk.Items {
				lines = append(lines, pastedInlines(it.Children))
			}
		}
	}
	return lines
}

func pastedInlines(ins []body.Inline) []document.Node {
	out := make([]document.Node, 0, len(ins))
	for _, in := range ins {
		if in.Kind == body.LinkInline {
			out = append(out, document.NewLink(in.URL, in.Text))
			continue
		}
		out = append(out, &document.Text{Text: in.Text, Marks: in.Marks})
	}
	return out
}

func pasteLines(e *editor.Editor, lines [][]document.Node) error {
	sel, ok := e.Selection()
	if !ok {
		return nil
	}
	if !sel.IsCollapsed() {
		if err := e.Delete(sel); err != nil {
			return err
		}
	}
	for i, line := range lines {
		if i > 0 {
			if sel, ok = e.Selection(); !ok {
				return nil
			}
			if err := e.SplitNodes(sel.Anchor, true); err != nil {
				return err
			}
		}
		for _, n := range line {
			if err := insertInline(e, n); err != nil {
				return err
			}
		}
	}
	return nil
}

// insertInline inserts n at the caret and puts the caret right after it.
func insertInline(e *editor.Editor, n document.Node) error {
	sel, ok := e.Selection()
	if !ok {
		return nil
	}
	if _, isText := n.(*document.Text); isText {
		return e.WithoutNormalizing(func() error {
			p, err := e.InsertNodesAt(sel.Anchor, n)
			if err != nil {
				return err
			}
			end, err := e.End(p)
			if err != nil {
				return err
			}
			return e.Select(document.Collapsed(end))
		})
	}

	var ref *editor.PathRef
	err := e.WithoutNormalizing(func() error {
		p, err := e.InsertNodesAt(sel.Anchor, n)
		if err != nil {
			return err
		}
		ref = e.PathRef(p, document.Forward)
		return nil
	})
	if ref == nil {
		return err
	}
	p, ok := ref.Unref()
	if err != nil || !ok {
		return err
	}
	after, err := e.Start(p.Next())
	if err != nil {
		return err
	}
	return e.Select(document.Collapsed(after))
}
