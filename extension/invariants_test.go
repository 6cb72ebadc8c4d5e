package extension

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/iw2rmb/richtext/document"
	"github.com/iw2rmb/richtext/editor"
)

// checkTree verifies the structure every command must leave behind.
func checkTree(e *editor.Editor) error {
	root := e.Children()
	if len(root) == 0 {
		return fmt.Errorf("empty root")
	}
	for i, n := range root {
		p := document.Path{i}
		switch {
		case document.Is(n, document.Paragraph):
			if err := checkInlines(e, p, n.(*document.Element), false); err != nil {
				return err
			}
		case document.Is(n, document.BulletList):
			if i > 0 && document.Is(root[i-1], document.BulletList) {
				return fmt.Errorf("%s: adjacent bullet lists", p)
			}
			list := n.(*document.Element)
			if len(list.Children) == 0 {
				return fmt.Errorf("%s: empty bullet list", p)
			}
			for j, item := range list.Children {
				ip := p.Append(j)
				if !document.Is(item, document.ListItem) {
					return fmt.Errorf("%s: %s in bullet list", ip, document.String(item))
				}
				if document.StringOf(item) == "" && !holdsCaret(e, ip) {
					return fmt.Errorf("%s: empty item without caret", ip)
				}
				if err := checkInlines(e, ip, item.(*document.Element), false); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("%s: %s at root", p, document.String(n))
		}
	}
	if sel, ok := e.Selection(); ok {
		for _, pt := range []document.Point{sel.Anchor, sel.Focus} {
			t, err := document.GetText(root, pt.Path)
			if err != nil {
				return fmt.Errorf("selection %s: %w", pt, err)
			}
			if pt.Offset < 0 || pt.Offset > t.Len() {
				return fmt.Errorf("selection %s: offset out of range", pt)
			}
		}
	}
	return nil
}

func checkInlines(e *editor.Editor, p document.Path, el *document.Element, inLink bool) error {
	if len(el.Children) == 0 {
		return fmt.Errorf("%s: no children", p)
	}
	for i, c := range el.Children {
		cp := p.Append(i)
		switch c := c.(type) {
		case *document.Text:
			if prev, ok := prevText(el, i); ok && prev.Marks == c.Marks {
				return fmt.Errorf("%s: unmerged texts", cp)
			}
		case *document.Element:
			if c.Type != document.Link {
				return fmt.Errorf("%s: block %s inside inline holder", cp, c.Type)
			}
			if inLink {
				return fmt.Errorf("%s: nested link", cp)
			}
			if i == 0 || i == len(el.Children)-1 {
				return fmt.Errorf("%s: link not surrounded by texts", cp)
			}
			if document.StringOf(c) == "" {
				return fmt.Errorf("%s: empty link", cp)
			}
			if err := checkInlines(e, cp, c, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func prevText(el *document.Element, i int) (*document.Text, bool) {
	if i == 0 {
		return nil, false
	}
	t, ok := el.Children[i-1].(*document.Text)
	return t, ok
}

func TestSession_TreeStaysNormalized(t *testing.T) {
	e := newEditor(t, allModules)
	typeRunes := func(s string) func() error {
		return func() error {
			for _, r := range s {
				if err := e.InsertText(string(r)); err != nil {
					return err
				}
			}
			return nil
		}
	}
	undo := func() error { e.Undo(); return nil }
	redo := func() error { e.Redo(); return nil }

	steps := []struct {
		name string
		do   func() error
	}{
		{"start list", typeRunes("- first")},
		{"next item", e.InsertBreak},
		{"type markdown and url", typeRunes("second *bold* x.io ")},
		{"empty item", e.InsertBreak},
		{"exit list", e.InsertBreak},
		{"type tail", typeRunes("tail")},
		{"select all", e.SelectAll},
		{"italic everything", func() error { return e.ToggleMark(document.Italic) }},
		{"collapse", func() error { return e.Collapse(document.EdgeEnd) }},
		{"backspace", func() error { return e.DeleteBackward(editor.UnitCharacter) }},
		{"backspace word", func() error { return e.DeleteBackward(editor.UnitWord) }},
		{"paste url", func() error { return e.InsertData(editor.PlainText("https://y.io")) }},
		{"move words back", func() error { return e.Move(2, editor.UnitWord, true) }},
		{"soft break", e.InsertSoftBreak},
		{"undo", undo},
		{"undo again", undo},
		{"redo", redo},
		{"select list", func() error {
			return e.Select(document.Range{Anchor: pt(0, 0, 0, 0), Focus: pt(2, 0, 1, 0)})
		}},
		{"delete across items", func() error { return e.DeleteBackward(editor.UnitCharacter) }},
		{"line start backspace", func() error {
			if err := e.Select(document.Collapsed(pt(0, 1, 0))); err != nil {
				return err
			}
			return e.DeleteBackward(editor.UnitCharacter)
		}},
	}
	for _, st := range steps {
		if err := st.do(); err != nil {
			t.Fatalf("%s: %v", st.name, err)
		}
		if err := checkTree(e); err != nil {
			t.Fatalf("%s: %v\ntree=%s", st.name, err, tree(e))
		}
		ops := e.OperationCount()
		if err := e.NormalizeAll(); err != nil {
			t.Fatalf("%s: normalize: %v", st.name, err)
		}
		if got := e.OperationCount(); got != ops {
			t.Fatalf("%s: normalize applied %d ops\ntree=%s", st.name, got-ops, tree(e))
		}
	}
}

func TestRandomOperations_TreeStaysNormalized(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 42))
	e := newEditor(t, allModules, document.NewParagraph(document.NewText("hello")), list("a", "b"))
	chunks := []string{"a", "b c", "*x*", " ", "-", "x.io"}
	blocks := []func() document.Node{
		func() document.Node { return document.NewParagraph(document.NewText("p")) },
		func() document.Node { return list("i") },
		func() document.Node { return document.NewListItem(document.NewText("li")) },
		func() document.Node { return document.NewLink("https://z.io", "z") },
		func() document.Node { return document.NewParagraph() },
	}

	randomLeaf := func() (document.Path, *document.Text) {
		var paths []document.Path
		var leaves []*document.Text
		for p, tx := range document.Texts(e.Children()) {
			paths = append(paths, p)
			leaves = append(leaves, tx)
		}
		i := rng.IntN(len(paths))
		return paths[i], leaves[i]
	}

	for step := range 300 {
		root := e.Children()
		i := rng.IntN(len(root))
		var name string
		var err error
		switch rng.IntN(7) {
		case 0:
			p, tx := randomLeaf()
			name = "insert text"
			err = e.InsertTextAt(document.Point{Path: p, Offset: rng.IntN(tx.Len() + 1)}, chunks[rng.IntN(len(chunks))])
		case 1:
			p, tx := randomLeaf()
			a, b := rng.IntN(tx.Len()+1), rng.IntN(tx.Len()+1)
			name = "delete text"
			err = e.Delete(document.Range{Anchor: document.Point{Path: p, Offset: a}, Focus: document.Point{Path: p, Offset: b}})
		case 2:
			name = "insert node"
			err = e.InsertNodes(document.Path{rng.IntN(len(root) + 1)}, blocks[rng.IntN(len(blocks))]())
		case 3:
			name = "remove node"
			err = e.RemoveNodes(document.Path{i})
		case 4:
			p, tx := randomLeaf()
			name = "split"
			err = e.SplitNodes(document.Point{Path: p, Offset: rng.IntN(tx.Len() + 1)}, true)
		case 5:
			name = "set type"
			if document.Is(root[i], document.Paragraph) {
				err = e.SetNodes(document.Path{i}, document.Props{Type: document.BulletList})
			} else {
				err = e.SetNodes(document.Path{i}, document.Props{Type: document.Paragraph})
			}
		case 6:
			name = "merge paragraphs"
			if i > 0 && document.Is(root[i-1], document.Paragraph) && document.Is(root[i], document.Paragraph) {
				err = e.MergeNodes(document.Path{i})
			}
		}
		if err != nil {
			t.Fatalf("step %d %s: %v\ntree=%s", step, name, err, tree(e))
		}
		if _, ok := e.Selection(); !ok {
			end, err := e.End(nil)
			if err != nil {
				t.Fatalf("step %d: end: %v", step, err)
			}
			if err := e.Select(document.Collapsed(end)); err != nil {
				t.Fatalf("step %d: select: %v", step, err)
			}
		}
		if err := checkTree(e); err != nil {
			t.Fatalf("step %d %s: %v\ntree=%s", step, name, err, tree(e))
		}
		ops := e.OperationCount()
		if err := e.NormalizeAll(); err != nil {
			t.Fatalf("step %d: normalize: %v", step, err)
		}
		if got := e.OperationCount(); got != ops {
			t.Fatalf("step %d %s: normalize applied %d ops\ntree=%s", step, name, got-ops, tree(e))
		}
	}
}
