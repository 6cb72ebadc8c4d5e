package editor

import (
	"fmt"

	"github.com/iw2rmb/richtext/document"
)

// Select sets the selection to r after checking both points resolve.
func (e *Editor) Select(r document.Range) error {
	for _, pt := range []document.Point{r.Anchor, r.Focus} {
		if err := e.checkPoint(pt); err != nil {
			return err
		}
	}
	return e.do(func() error { return e.setSelection(&r) })
}

// Deselect clears the selection.
func (e *Editor) Deselect() error {
	return e.do(func() error { return e.setSelection(nil) })
}

// Collapse collapses the selection onto one of its edges.
func (e *Editor) Collapse(edge document.Edge) error {
	return e.do(func() error {
		if e.selection == nil {
			return nil
		}
		var pt document.Point
		switch edge {
		case document.EdgeAnchor:
			pt = e.selection.Anchor
		case document.EdgeFocus:
			pt = e.selection.Focus
		case document.EdgeStart:
			pt = e.selection.Start()
		default:
			pt = e.selection.End()
		}
		c := document.Collapsed(pt)
		return e.setSelection(&c)
	})
}

// Move moves both selection points distance units backward (reverse) or
// forward. Points stop at the document edges.
func (e *Editor) Move(distance int, unit Unit, reverse bool) error {
	return e.do(func() error {
		if e.selection == nil || distance <= 0 {
			return nil
		}
		sel := *e.selection
		for _, pt := range []*document.Point{&sel.Anchor, &sel.Focus} {
			for range distance {
				var next document.Point
				var ok bool
				if reverse {
					next, ok = e.Before(*pt, unit)
				} else {
					next, ok = e.After(*pt, unit)
				}
				if !ok {
					break
				}
				*pt = next
			}
		}
		return e.setSelection(&sel)
	})
}

// SelectAll selects the whole document.
func (e *Editor) SelectAll() error {
	start, err := e.Start(nil)
	if err != nil {
		return err
	}
	end, err := e.End(nil)
	if err != nil {
		return err
	}
	return e.Select(document.Range{Anchor: start, Focus: end})
}

func (e *Editor) setSelection(r *document.Range) error {
	switch {
	case r == nil && e.selection == nil:
		return nil
	case r != nil && e.selection != nil && r.Equal(*e.selection):
		return nil
	}
	return e.apply(document.Operation{Type: document.OpSetSelection, Selection: r})
}

func (e *Editor) checkPoint(pt document.Point) error {
	t, err := e.leaf(pt)
	if err != nil {
		return err
	}
	if pt.Offset < 0 || pt.Offset > t.Len() {
		return fmt.Errorf("select %s: %w", pt, document.ErrInvalidLocation)
	}
	return nil
}
