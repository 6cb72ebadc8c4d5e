package extension

import (
	"github.com/iw2rmb/richtext/document"
	"github.com/iw2rmb/richtext/editor"
)

// BulletList adds list authoring: "- " at the start of a block starts a
// list, Enter splits or leaves it, Backspace in an empty item lifts it out.
// Its normalizer keeps items inside lists and lists made of items.
func BulletList(e *editor.Editor, next editor.Handlers) editor.Handlers {
	return editor.Handlers{
		InsertText: func(text string) error {
			sel, ok := e.Selection()
			if text != " " || !ok || !sel.IsCollapsed() {
				return next.InsertText(text)
			}
			anchor := sel.Anchor
			blk, ok := e.Block(anchor.Path)
			if !ok || document.Is(blk.Node, document.ListItem) {
				return next.InsertText(text)
			}
			start, err := e.Start(blk.Path)
			if err != nil || !anchor.Path.Equal(start.Path) || anchor.Offset != 1 || document.StringOf(blk.Node) != "-" {
				return next.InsertText(text)
			}
			return e.WithoutNormalizing(func() error {
				if err := e.Delete(document.Range{Anchor: start, Focus: anchor}); err != nil {
					return err
				}
				if err := e.SetNodes(blk.Path, document.Props{Type: document.ListItem}); err != nil {
					return err
				}
				return e.WrapNodes(blk.Path, document.NewBulletList())
			})
		},

		InsertBreak: func() error {
			sel, ok := e.Selection()
			if !ok || !sel.IsCollapsed() {
				return next.InsertBreak()
			}
			item, ok := e.AboveType(sel.Anchor.Path, document.ListItem)
			if !ok {
				return next.InsertBreak()
			}
			if document.StringOf(item.Node) != "" {
				return e.SplitNodes(sel.Anchor, true)
			}
			return exitList(e, item)
		},

		DeleteBackward: func(unit editor.Unit) error {
			sel, ok := e.Selection()
			if !ok || !sel.IsCollapsed() {
				return next.DeleteBackward(unit)
			}
			item, ok := e.AboveType(sel.Anchor.Path, document.ListItem)
			if !ok || document.StringOf(item.Node) != "" || !e.IsStart(sel.Anchor, item.Path) {
				return next.DeleteBackward(unit)
			}
			return e.WithoutNormalizing(func() error {
				if err := e.SetNodes(item.Path, document.Props{Type: document.Paragraph}); err != nil {
					return err
				}
				return e.LiftNodes(item.Path)
			})
		},

		NormalizeNode: func(entry editor.Entry) error {
			switch {
			case entry.IsRoot():
				return normalizeRootLists(e, next, entry)
			case document.Is(entry.Node, document.ListItem):
				return normalizeListItem(e, next, entry)
			case document.Is(entry.Node, document.BulletList):
				return normalizeBulletList(e, next, entry)
			}
			return next.NormalizeNode(entry)
		},
	}
}

// exitList handles Enter in an empty item. The only item turns back into a
// paragraph; otherwise the item is dropped and a paragraph is inserted after
// the list when it was last, or at the list's position when it was not.
func exitList(e *editor.Editor, item editor.Entry) error {
	parent, err := e.Parent(item.Path)
	if err != nil {
		return err
	}
	list, ok := parent.Element()
	if !ok {
		return nil
	}
	return e.WithoutNormalizing(func() error {
		if len(list.Children) == 1 {
			if err := e.SetNodes(item.Path, document.Props{Type: document.Paragraph}); err != nil {
				return err
			}
			return e.UnwrapNodes(parent.Path)
		}
		at := parent.Path.Clone()
		if item.Path.Last() == len(list.Children)-1 {
			at = parent.Path.Next()
		}
		if err := e.RemoveNodes(item.Path); err != nil {
			return err
		}
		if err := e.InsertNodes(at, document.NewParagraph()); err != nil {
			return err
		}
		start, err := e.Start(at)
		if err != nil {
			return err
		}
		return e.Select(document.Collapsed(start))
	})
}

func normalizeRootLists(e *editor.Editor, next editor.Handlers, entry editor.Entry) error {
	children := e.Children()
	for i := 1; i < len(children); i++ {
		if document.Is(children[i-1], document.BulletList) && document.Is(children[i], document.BulletList) {
			return e.MergeNodes(document.Path{i})
		}
	}
	return next.NormalizeNode(entry)
}

func normalizeListItem(e *editor.Editor, next editor.Handlers, entry editor.Entry) error {
	parent, err := e.Parent(entry.Path)
	if err != nil {
		return err
	}
	switch {
	case parent.IsRoot():
		return e.WrapNodes(entry.Path, document.NewBulletList())
	case document.Is(parent.Node, document.ListItem):
		return e.LiftNodes(entry.Path)
	case !document.Is(parent.Node, document.BulletList):
		return next.NormalizeNode(entry)
	}

	if document.StringOf(entry.Node) == "" && !holdsCaret(e, entry.Path) {
		if list, ok := parent.Element(); ok && len(list.Children) == 1 {
			return e.RemoveNodes(parent.Path)
		}
		return e.RemoveNodes(entry.Path)
	}
	return next.NormalizeNode(entry)
}

func normalizeBulletList(e *editor.Editor, next editor.Handlers, entry editor.Entry) error {
	list, _ := entry.Element()
	if len(list.Children) == 0 {
		return e.RemoveNodes(entry.Path)
	}
	for i, child := range list.Children {
		if document.Is(child, document.ListItem) {
			continue
		}
		p := entry.Path.Append(i)
		if el, ok := child.(*document.Element); ok && !e.IsInline(el) {
			return e.SetNodes(p, document.Props{Type: document.ListItem})
		}
		return e.WrapNodes(p, document.NewListItem())
	}
	if sib, err := e.Node(entry.Path.Next()); err == nil && document.Is(sib, document.BulletList) {
		return e.MergeNodes(entry.Path.Next())
	}
	return next.NormalizeNode(entry)
}

// holdsCaret reports whether a collapsed selection sits inside the node at p.
func holdsCaret(e *editor.Editor, p document.Path) bool {
	sel, ok := e.Selection()
	return ok && sel.IsCollapsed() && p.IsAncestorOf(sel.Anchor.Path)
}
