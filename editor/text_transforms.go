package editor

import (
	"fmt"

	"github.com/iw2rmb/richtext/document"
)

// InsertTextAt inserts text into the leaf under pt without consulting the
// handler chain or the cursor marks.
func (e *Editor) InsertTextAt(pt document.Point, text string) error {
	return e.transform(func() error { return e.insertTextAt(pt, text) })
}

// Delete removes the content of r. Blocks touched by both edges are merged.
// A selection equal to r collapses onto the resulting point.
func (e *Editor) Delete(r document.Range) error {
	return e.transform(func() error {
		wasSelection := e.selection != nil && e.selection.Equal(r)
		pt, err := e.deleteRange(r)
		if err != nil || !wasSelection {
			return err
		}
		c := document.Collapsed(pt)
		return e.setSelection(&c)
	})
}

// DeleteForward deletes one unit after the caret, or the selected range.
func (e *Editor) DeleteForward(unit Unit) error {
	return e.do(func() error {
		if e.selection == nil {
			return nil
		}
		sel := *e.selection
		if !sel.IsCollapsed() {
			return e.Delete(sel)
		}
		return e.deleteUnit(sel.Anchor, unit, false)
	})
}

func (e *Editor) insertTextAt(pt document.Point, text string) error {
	if text == "" {
		return nil
	}
	t, err := e.leaf(pt)
	if err != nil {
		return err
	}
	if pt.Offset < 0 || pt.Offset > t.Len() {
		return fmt.Errorf("insert text %s: %w", pt, document.ErrInvalidLocation)
	}
	return e.apply(document.Operation{Type: document.OpInsertText, Path: pt.Path.Clone(), Offset: pt.Offset, Text: text})
}

func (e *Editor) removeText(p document.Path, from, to int) error {
	t, err := document.GetText(e.children, p)
	if err != nil {
		return err
	}
	rs := []rune(t.Text)
	from, to = max(from, 0), min(to, len(rs))
	if from >= to {
		return nil
	}
	return e.apply(document.Operation{Type: document.OpRemoveText, Path: p.Clone(), Offset: from, Text: string(rs[from:to])})
}

func (e *Editor) deleteUnit(at document.Point, unit Unit, reverse bool) error {
	var target document.Point
	var ok bool
	if reverse {
		target, ok = e.Before(at, unit)
	} else {
		target, ok = e.After(at, unit)
	}
	if !ok {
		return nil
	}
	return e.WithoutNormalizing(func() error {
		pt, err := e.deleteRange(document.Range{Anchor: at, Focus: target})
		if err != nil {
			return err
		}
		c := document.Collapsed(pt)
		return e.setSelection(&c)
	})
}

// deleteRange removes the content between the edges of r and returns where
// the start edge ended up.
func (e *Editor) deleteRange(r document.Range) (document.Point, error) {
	start, end := r.Edges()
	if start.Equal(end) {
		return start, nil
	}
	startBlk, ok1 := e.Block(start.Path)
	endBlk, ok2 := e.Block(end.Path)
	if !ok1 || !ok2 {
		return document.Point{}, fmt.Errorf("delete %s: %w", r, ErrNotBlock)
	}
	acrossBlocks := !startBlk.Path.Equal(endBlk.Path)
	singleText := start.Path.Equal(end.Path)

	var inner []*PathRef
	var last document.Path
	for p := range document.Descendants(e.children) {
		if p.Compare(start.Path) < 0 {
			continue
		}
		if p.Compare(end.Path) > 0 {
			break
		}
		if last != nil && (last.Equal(p) || last.IsAncestorOf(p)) {
			continue
		}
		if !p.IsCommon(start.Path) && !p.IsCommon(end.Path) {
			inner = append(inner, e.PathRef(p, document.Forward))
			last = p
		}
	}

	startRef := e.PointRef(start, document.Forward)
	endRef := e.PointRef(end, document.Forward)
	defer startRef.Unref()
	defer endRef.Unref()

	if !singleText {
		t, err := e.leaf(start)
		if err != nil {
			return document.Point{}, err
		}
		if err := e.removeText(start.Path, start.Offset, t.Len()); err != nil {
			return document.Point{}, err
		}
	}
	for i := len(inner) - 1; i >= 0; i-- {
		p, ok := inner[i].Unref()
		if !ok {
			continue
		}
		if err := e.removeNode(p); err != nil {
			return document.Point{}, err
		}
	}
	if ep, ok := endRef.Current(); ok {
		from := 0
		if singleText {
			from = start.Offset
		}
		if err := e.removeText(ep.Path, from, ep.Offset); err != nil {
			return document.Point{}, err
		}
	}
	if !singleText && acrossBlocks {
		if ep, ok := endRef.Current(); ok {
			if blk, ok := e.Block(ep.Path); ok {
				if err := e.mergeBlock(blk.Path); err != nil {
					return document.Point{}, err
				}
			}
		}
	}

	if pt, ok := startRef.Current(); ok {
		return pt, nil
	}
	if pt, ok := endRef.Current(); ok {
		return pt, nil
	}
	return document.Point{}, fmt.Errorf("delete %s: %w", r, document.ErrInvalidLocation)
}
