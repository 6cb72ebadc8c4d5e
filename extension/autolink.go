package extension

import (
	"regexp"
	"unicode/utf8"

	"github.com/iw2rmb/richtext/document"
	"github.com/iw2rmb/richtext/editor"
)

var trailingWord = regexp.MustCompile(`(\S+)$`)

// AutoLink turns URLs into links: when a space is typed after one, and when
// a whole URL is pasted. Links are inline; empty and nested links are
// removed by its normalizer.
func AutoLink(e *editor.Editor, next editor.Handlers) editor.Handlers {
	return editor.Handlers{
		IsInline: func(el *document.Element) bool {
			return el.Type == document.Link || next.IsInline(el)
		},

		InsertText: func(text string) error {
			sel, ok := e.Selection()
			if text != " " || !ok || !sel.IsCollapsed() {
				return next.InsertText(text)
			}
			at := sel.Anchor
			if _, inLink := e.AboveType(at.Path, document.Link); inLink {
				return next.InsertText(text)
			}
			leaf, err := e.Node(at.Path)
			if err != nil {
				return next.InsertText(text)
			}
			before := string([]rune(document.StringOf(leaf))[:at.Offset])
			m := trailingWord.FindStringSubmatch(before)
			if m == nil || !IsURL(m[1]) {
				return next.InsertText(text)
			}

			url := m[1]
			start := document.Point{Path: at.Path.Clone(), Offset: at.Offset - utf8.RuneCountInString(url)}
			ref := e.RangeRef(document.Range{Anchor: start, Focus: at}, true)
			if err := next.InsertText(text); err != nil {
				ref.Unref()
				return err
			}
			r, ok := ref.Unref()
			if !ok {
				return nil
			}
			return e.WrapRange(r, &document.Element{Type: document.Link, URL: url})
		},

		InsertData: func(data editor.DataTransfer) error {
			text := data.GetData("text/plain")
			if !IsURL(text) {
				return next.InsertData(data)
			}
			return wrapLink(e, text)
		},

		NormalizeNode: func(entry editor.Entry) error {
			el, ok := entry.Element()
			if !ok || el.Type != document.Link {
				return next.NormalizeNode(entry)
			}
			if len(el.Children) == 0 || len(el.Children) == 1 && document.StringOf(el.Children[0]) == "" {
				return e.RemoveNodes(entry.Path)
			}
			if parent, err := e.Parent(entry.Path); err == nil && document.Is(parent.Node, document.Link) {
				return e.UnwrapNodes(entry.Path)
			}
			return next.NormalizeNode(entry)
		},
	}
}

// wrapLink links the selected text to url, or inserts url as a new link at
// a collapsed caret. An enclosing link is unwrapped first.
func wrapLink(e *editor.Editor, url string) error {
	sel, ok := e.Selection()
	if !ok {
		return nil
	}
	if link, ok := e.AboveType(sel.Anchor.Path, document.Link); ok {
		if err := e.UnwrapNodes(link.Path); err != nil {
			return err
		}
		if sel, ok = e.Selection(); !ok {
			return nil
		}
	}

	if !sel.IsCollapsed() {
		start, end := sel.Edges()
		sb, ok1 := e.Block(start.Path)
		eb, ok2 := e.Block(end.Path)
		if ok1 && ok2 && sb.Path.Equal(eb.Path) {
			if err := e.WrapRange(sel, &document.Element{Type: document.Link, URL: url}); err != nil {
				return err
			}
			return e.Collapse(document.EdgeEnd)
		}
		if err := e.Delete(sel); err != nil {
			return err
		}
		if sel, ok = e.Selection(); !ok {
			return nil
		}
	}

	return insertInline(e, document.NewLink(url, url))
}
