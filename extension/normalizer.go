package extension

import (
	"github.com/iw2rmb/richtext/document"
	"github.com/iw2rmb/richtext/editor"
)

// Normalizer keeps paragraphs inline-only by unwrapping block children, and
// never lets the root go empty.
func Normalizer(e *editor.Editor, next editor.Handlers) editor.Handlers {
	return editor.Handlers{
		NormalizeNode: func(entry editor.Entry) error {
			if entry.IsRoot() && len(e.Children()) == 0 {
				return e.InsertNodes(document.Path{0}, document.NewParagraph())
			}
			el, ok := entry.Element()
			if !ok || el.Type != document.Paragraph {
				return next.NormalizeNode(entry)
			}
			for i, child := range el.Children {
				if c, ok := child.(*document.Element); ok && !e.IsInline(c) {
					return e.UnwrapNodes(entry.Path.Append(i))
				}
			}
			return next.NormalizeNode(entry)
		},
	}
}
