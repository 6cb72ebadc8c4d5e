package editor

import (
	"fmt"

	"github.com/iw2rmb/richtext/document"
)

// InsertNodes inserts copies of nodes starting at p.
func (e *Editor) InsertNodes(p document.Path, nodes ...document.Node) error {
	if len(p) == 0 {
		return fmt.Errorf("insert %s: %w", p, document.ErrInvalidLocation)
	}
	return e.transform(func() error {
		for i, n := range nodes {
			at := p.Clone()
			at[len(at)-1] += i
			if err := e.insertNode(at, n); err != nil {
				return err
			}
		}
		return nil
	})
}

// InsertNodesAt inserts copies of nodes at pt, splitting the text (for
// inline nodes) or the block (for block nodes) under pt. It returns the path
// of the last inserted node.
func (e *Editor) InsertNodesAt(pt document.Point, nodes ...document.Node) (document.Path, error) {
	var out document.Path
	err := e.transform(func() error {
		p, err := e.insertNodesAt(pt, nodes...)
		out = p
		return err
	})
	return out, err
}

// RemoveNodes removes the node at p.
func (e *Editor) RemoveNodes(p document.Path) error {
	return e.transform(func() error { return e.removeNode(p) })
}

// SetNodes patches the non-children fields of the node at p.
func (e *Editor) SetNodes(p document.Path, props document.Props) error {
	return e.transform(func() error { return e.setNode(p, props) })
}

// MergeNodes merges the node at p into its previous sibling. An empty
// previous sibling is removed instead.
func (e *Editor) MergeNodes(p document.Path) error {
	return e.transform(func() error { return e.mergeNode(p) })
}

// SplitNodes splits the lowest block at pt. Without always, nothing is split
// at a level where pt sits on the node's edge.
func (e *Editor) SplitNodes(pt document.Point, always bool) error {
	return e.transform(func() error { return e.splitBlock(pt, always) })
}

// WrapNodes wraps the node at p in a copy of wrapper; wrapper's children are
// ignored.
func (e *Editor) WrapNodes(p document.Path, wrapper *document.Element) error {
	if len(p) == 0 {
		return fmt.Errorf("wrap %s: %w", p, document.ErrInvalidLocation)
	}
	return e.transform(func() error {
		return e.wrapSiblings(p.Parent(), p.Last(), p.Last()+1, wrapper)
	})
}

// WrapRange splits the texts at the edges of r and wraps the covered
// siblings of their common parent in a copy of wrapper.
func (e *Editor) WrapRange(r document.Range, wrapper *document.Element) error {
	return e.transform(func() error {
		ref := e.RangeRef(r, true)
		start, end := r.Edges()
		if err := e.splitTextAt(end); err != nil {
			ref.Unref()
			return err
		}
		if err := e.splitTextAt(start); err != nil {
			ref.Unref()
			return err
		}
		cur, ok := ref.Unref()
		if !ok {
			return fmt.Errorf("wrap range: %w", document.ErrInvalidLocation)
		}
		start, end = cur.Edges()
		parent := start.Path.Common(end.Path)
		if len(parent) == len(start.Path) {
			parent = parent.Parent()
		}
		if len(start.Path) <= len(parent) || len(end.Path) <= len(parent) {
			return fmt.Errorf("wrap range: %w", document.ErrInvalidLocation)
		}
		return e.wrapSiblings(parent, start.Path[len(parent)], end.Path[len(parent)]+1, wrapper)
	})
}

// UnwrapNodes replaces the element at p with its children.
func (e *Editor) UnwrapNodes(p document.Path) error {
	return e.transform(func() error { return e.unwrapNode(p) })
}

// LiftNodes moves the node at p up one level, splitting its parent when p
// is a middle child and removing the parent when p was its only child.
func (e *Editor) LiftNodes(p document.Path) error {
	return e.transform(func() error { return e.liftNode(p) })
}

// MoveNodes moves the node at from so that it ends up at to.
func (e *Editor) MoveNodes(from, to document.Path) error {
	return e.transform(func() error { return e.moveNode(from, to) })
}

func (e *Editor) insertNode(p document.Path, n document.Node) error {
	return e.apply(document.Operation{Type: document.OpInsertNode, Path: p.Clone(), Node: document.Clone(n)})
}

func (e *Editor) removeNode(p document.Path) error {
	n, err := e.Node(p)
	if err != nil {
		return err
	}
	return e.apply(document.Operation{Type: document.OpRemoveNode, Path: p.Clone(), Node: n})
}

func (e *Editor) setNode(p document.Path, props document.Props) error {
	n, err := e.Node(p)
	if err != nil {
		return err
	}
	return e.apply(document.Operation{Type: document.OpSetNode, Path: p.Clone(), Props: props, OldProps: document.PropsOf(n)})
}

func (e *Editor) moveNode(from, to document.Path) error {
	if _, err := e.Node(from); err != nil {
		return err
	}
	return e.apply(document.Operation{Type: document.OpMoveNode, Path: from.Clone(), NewPath: to.Clone()})
}

func (e *Editor) splitNode(p document.Path, position int) error {
	n, err := e.Node(p)
	if err != nil {
		return err
	}
	return e.apply(document.Operation{Type: document.OpSplitNode, Path: p.Clone(), Position: position, Props: document.PropsOf(n)})
}

// splitTextAt splits the leaf under pt unless pt is on one of its edges.
func (e *Editor) splitTextAt(pt document.Point) error {
	t, err := e.leaf(pt)
	if err != nil {
		return err
	}
	if pt.Offset <= 0 || pt.Offset >= t.Len() {
		return nil
	}
	return e.splitNode(pt.Path, pt.Offset)
}

// splitTo splits every level from the leaf under at up to and including the
// node at top.
func (e *Editor) splitTo(at document.Point, top document.Path, always bool) error {
	if len(top) == 0 || !top.IsAncestorOf(at.Path) && !top.Equal(at.Path) {
		return fmt.Errorf("split %s: %w", top, document.ErrInvalidLocation)
	}
	before := e.PointRef(at, document.Backward)
	defer before.Unref()

	position := at.Offset
	for depth := len(at.Path); depth >= len(top); depth-- {
		p := at.Path[:depth].Clone()
		pt, ok := before.Current()
		if !ok {
			return fmt.Errorf("split %s: %w", p, document.ErrInvalidLocation)
		}
		isEnd := e.IsEnd(pt, p)
		split := false
		if always || !(isEnd || e.IsStart(pt, p)) {
			if err := e.splitNode(p, position); err != nil {
				return err
			}
			split = true
		}
		position = p.Last()
		if split || isEnd {
			position++
		}
	}
	return nil
}

func (e *Editor) splitBlock(at document.Point, always bool) error {
	blk, ok := e.Block(at.Path)
	if !ok {
		return fmt.Errorf("split %s: %w", at, ErrNotBlock)
	}
	return e.splitTo(at, blk.Path, always)
}

func (e *Editor) wrapSiblings(parent document.Path, from, to int, wrapper *document.Element) error {
	w := &document.Element{Type: wrapper.Type, URL: wrapper.URL}
	if err := e.insertNode(parent.Append(from), w); err != nil {
		return err
	}
	for i := 0; i < to-from; i++ {
		if err := e.moveNode(parent.Append(from+1), parent.Append(from, i)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Editor) unwrapNode(p document.Path) error {
	n, err := e.Node(p)
	if err != nil {
		return err
	}
	el, ok := n.(*document.Element)
	if !ok {
		return fmt.Errorf("unwrap %s: %w", p, document.ErrNodeKind)
	}
	for i := len(el.Children) - 1; i >= 0; i-- {
		if err := e.moveNode(p.Append(i), p.Next()); err != nil {
			return err
		}
	}
	return e.removeNode(p)
}

func (e *Editor) liftNode(p document.Path) error {
	if len(p) < 2 {
		return fmt.Errorf("lift %s: %w", p, document.ErrInvalidLocation)
	}
	parentPath := p.Parent()
	parent, err := document.GetElement(e.children, parentPath)
	if err != nil {
		return err
	}
	idx, n := p.Last(), len(parent.Children)
	switch {
	case n == 1:
		if err := e.moveNode(p, parentPath.Next()); err != nil {
			return err
		}
		return e.removeNode(parentPath)
	case idx == 0:
		return e.moveNode(p, parentPath)
	case idx == n-1:
		return e.moveNode(p, parentPath.Next())
	default:
		if err := e.splitNode(parentPath, idx+1); err != nil {
			return err
		}
		return e.moveNode(p, parentPath.Next())
	}
}

// isEmptyElement reports whether n has no content beyond one empty text.
func isEmptyElement(n document.Node) bool {
	el, ok := n.(*document.Element)
	if !ok {
		return false
	}
	if len(el.Children) == 0 {
		return true
	}
	t, ok := el.Children[0].(*document.Text)
	return len(el.Children) == 1 && ok && t.Text == ""
}

func (e *Editor) mergeNode(p document.Path) error {
	if !p.HasPrevious() {
		return nil
	}
	node, err := e.Node(p)
	if err != nil {
		return err
	}
	prevPath := p.Previous()
	prev, err := e.Node(prevPath)
	if err != nil {
		return err
	}
	if pt, ok := prev.(*document.Text); isEmptyElement(prev) || ok && pt.Text == "" && prevPath.Last() != 0 {
		return e.removeNode(prevPath)
	}
	return e.apply(document.Operation{Type: document.OpMergeNode, Path: p.Clone(), Position: mergePosition(prev), Props: document.PropsOf(node)})
}

func mergePosition(prev document.Node) int {
	switch n := prev.(type) {
	case *document.Text:
		return n.Len()
	case *document.Element:
		return len(n.Children)
	default:
		panic(fmt.Sprintf("editor: unknown node %T", n))
	}
}

// mergeBlock merges the text block at p into the previous text block,
// moving it next to that block first when they are not siblings. An
// ancestor left empty by the move is removed.
func (e *Editor) mergeBlock(p document.Path) error {
	prevPath, ok := e.previousTextBlock(p)
	if !ok {
		return nil
	}
	common := p.Common(prevPath)

	var emptyRef *PathRef
	for k := len(common) + 1; k < len(p); k++ {
		if e.singleChildChain(p[:k], p) {
			emptyRef = e.PathRef(p[:k], document.Forward)
			break
		}
	}
	if emptyRef != nil {
		defer emptyRef.Unref()
	}

	if !p.IsSibling(prevPath) {
		to := prevPath.Next()
		if err := e.moveNode(p, to); err != nil {
			return err
		}
		p = to
	}
	if err := e.mergeNode(p); err != nil {
		return err
	}
	if emptyRef == nil {
		return nil
	}
	if ep, ok := emptyRef.Current(); ok {
		if n, err := e.Node(ep); err == nil {
			if el, ok := n.(*document.Element); ok && len(el.Children) == 0 {
				return e.removeNode(ep)
			}
		}
	}
	return nil
}

// singleChildChain reports whether every element from a down to p's parent
// has exactly one child.
func (e *Editor) singleChildChain(a, p document.Path) bool {
	for k := len(a); k < len(p); k++ {
		el, err := document.GetElement(e.children, p[:k])
		if err != nil || len(el.Children) != 1 {
			return false
		}
	}
	return true
}

func (e *Editor) isInlineContent(nodes []document.Node) bool {
	for _, n := range nodes {
		if !e.isInlineNode(n) {
			return false
		}
	}
	return true
}

func (e *Editor) insertNodesAt(pt document.Point, nodes ...document.Node) (document.Path, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	var at document.Path
	if e.isInlineContent(nodes) {
		t, err := e.leaf(pt)
		if err != nil {
			return nil, err
		}
		switch {
		case pt.Offset <= 0:
			at = pt.Path.Clone()
		case pt.Offset >= t.Len():
			at = pt.Path.Next()
		default:
			if err := e.splitNode(pt.Path, pt.Offset); err != nil {
				return nil, err
			}
			at = pt.Path.Next()
		}
	} else {
		blk, ok := e.Block(pt.Path)
		if !ok {
			return nil, fmt.Errorf("insert at %s: %w", pt, ErrNotBlock)
		}
		switch {
		case e.IsStart(pt, blk.Path):
			at = blk.Path.Clone()
		case e.IsEnd(pt, blk.Path):
			at = blk.Path.Next()
		default:
			if err := e.splitTo(pt, blk.Path, false); err != nil {
				return nil, err
			}
			at = blk.Path.Next()
		}
	}
	last := at
	for i, n := range nodes {
		last = at.Clone()
		last[len(last)-1] += i
		if err := e.insertNode(last, n); err != nil {
			return nil, err
		}
	}
	return last, nil
}
