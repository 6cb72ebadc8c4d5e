package editor

import (
	"fmt"

	"github.com/iw2rmb/richtext/document"
)

// maxIterationsPerPath bounds the normalization loop: the pass gives up after
// this many handler calls per initially dirty path.
const maxIterationsPerPath = 42

// IsNormalizing reports whether operations currently trigger normalization.
func (e *Editor) IsNormalizing() bool { return e.normalizing }

// WithoutNormalizing runs fn with normalization suppressed, restores the
// previous state even if fn panics, and then normalizes once.
func (e *Editor) WithoutNormalizing(fn func() error) error {
	err := e.suspend(fn)
	if nerr := e.Normalize(); err == nil {
		err = nerr
	}
	return err
}

func (e *Editor) suspend(fn func() error) error {
	prev := e.normalizing
	e.normalizing = false
	defer func() { e.normalizing = prev }()
	return fn()
}

// Normalize repairs every dirty path. It is a no-op while normalization is
// suppressed.
func (e *Editor) Normalize() error {
	if !e.normalizing || len(e.dirty) == 0 {
		return nil
	}
	return e.suspend(func() error {
		limit := len(e.dirty) * maxIterationsPerPath
		for n := 0; len(e.dirty) > 0; n++ {
			if n > limit {
				e.dirty = nil
				return fmt.Errorf("%w after %d iterations", ErrNormalizeLimit, n)
			}
			p := e.dirty[len(e.dirty)-1]
			e.dirty = e.dirty[:len(e.dirty)-1]

			entry := Entry{Path: p}
			if len(p) > 0 {
				node, err := document.Get(e.children, p)
				if err != nil {
					continue
				}
				entry.Node = node
			}
			if err := e.h.NormalizeNode(entry); err != nil {
				e.dirty = nil
				return err
			}
		}
		return nil
	})
}

// NormalizeAll marks every node dirty and normalizes the whole tree.
func (e *Editor) NormalizeAll() error {
	return e.do(func() error {
		e.dirty = e.dirty[:0]
		e.addDirty(document.Path{})
		for p := range document.Descendants(e.children) {
			e.addDirty(p)
		}
		return e.Normalize()
	})
}

func (e *Editor) markDirty(op document.Operation) {
	kept := e.dirty[:0]
	for _, p := range e.dirty {
		if next, ok := document.TransformPath(p, op, document.Forward); ok {
			kept = append(kept, next)
		}
	}
	e.dirty = kept
	for _, p := range document.DirtyPaths(op) {
		e.addDirty(p)
	}
}

func (e *Editor) addDirty(p document.Path) {
	for i, d := range e.dirty {
		if d.Equal(p) {
			e.dirty = append(e.dirty[:i], e.dirty[i+1:]...)
			break
		}
	}
	e.dirty = append(e.dirty, p.Clone())
}

// holdsInlines reports whether the children of the entry must be inline.
// The root and bullet lists hold blocks; every other element holds inlines.
func (e *Editor) holdsInlines(entry Entry) bool {
	el, ok := entry.Element()
	return ok && el.Type != document.BulletList
}

func (e *Editor) isInlineNode(n document.Node) bool {
	switch n := n.(type) {
	case *document.Text:
		return true
	case *document.Element:
		return e.IsInline(n)
	default:
		panic(fmt.Sprintf("editor: unknown node %T", n))
	}
}

// coreNormalizeNode applies at most one structural fix to entry:
//
//   - an element without children gets an empty text;
//   - inline content at the root is wrapped in a paragraph, blocks inside an
//     inline holder are unwrapped;
//   - an inline element is surrounded by texts;
//   - adjacent texts with equal marks merge, an empty text next to a text
//     with other marks is removed.
func (e *Editor) coreNormalizeNode(entry Entry) error {
	var children []document.Node
	if entry.IsRoot() {
		children = e.children
	} else {
		el, ok := entry.Element()
		if !ok {
			return nil
		}
		if len(el.Children) == 0 {
			return e.insertNode(entry.Path.Append(0), document.NewText(""))
		}
		children = el.Children
	}

	inlines := e.holdsInlines(entry)
	for i, child := range children {
		p := entry.Path.Append(i)
		if e.isInlineNode(child) != inlines {
			if inlines {
				return e.unwrapNode(p)
			}
			end := i + 1
			for end < len(children) && e.isInlineNode(children[end]) {
				end++
			}
			return e.wrapSiblings(entry.Path, i, end, document.NewElement(document.Paragraph))
		}
		if !inlines {
			continue
		}

		var prev document.Node
		if i > 0 {
			prev = children[i-1]
		}
		switch c := child.(type) {
		case *document.Element:
			if _, ok := prev.(*document.Text); !ok {
				return e.insertNode(p, document.NewText(""))
			}
			if i == len(children)-1 {
				return e.insertNode(p.Next(), document.NewText(""))
			}
		case *document.Text:
			pt, ok := prev.(*document.Text)
			if !ok {
				continue
			}
			switch {
			case pt.Marks == c.Marks:
				return e.apply(document.Operation{Type: document.OpMergeNode, Path: p, Position: pt.Len()})
			case pt.Text == "":
				return e.removeNode(p.Previous())
			case c.Text == "":
				return e.removeNode(p)
			}
		}
	}
	return nil
}
