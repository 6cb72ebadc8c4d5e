package editor

import "github.com/iw2rmb/richtext/document"

// Marks returns the marks the next typed character would carry. An explicit
// cursor override wins; otherwise they come from the leaf under the caret,
// from the text before it at the start of a leaf, or from the first leaf of
// an expanded selection.
func (e *Editor) Marks() (document.Marks, bool) {
	if e.selection == nil {
		return document.Marks{}, false
	}
	if e.marks != nil {
		return *e.marks, true
	}
	sel := *e.selection
	if !sel.IsCollapsed() {
		start, end := sel.Edges()
		for tp, t := range document.Texts(e.children) {
			if tp.Compare(start.Path) < 0 {
				continue
			}
			if tp.Compare(end.Path) > 0 {
				break
			}
			return t.Marks, true
		}
		return document.Marks{}, false
	}

	t, err := e.leaf(sel.Anchor)
	if err != nil {
		return document.Marks{}, false
	}
	if sel.Anchor.Offset == 0 {
		if blk, ok := e.Block(sel.Anchor.Path); ok {
			var prev *document.Text
			for tp, pt := range document.Texts(e.children) {
				if tp.Compare(sel.Anchor.Path) >= 0 {
					break
				}
				if blk.Path.IsAncestorOf(tp) {
					prev = pt
				}
			}
			if prev != nil {
				return prev.Marks, true
			}
		}
	}
	return t.Marks, true
}

// SelectedMarks returns the marks implied by the selection. While the
// document is empty the pending marks are laid over them.
func (e *Editor) SelectedMarks() document.Marks {
	ms, _ := e.Marks()
	if document.IsEmpty(e.children) {
		for _, m := range document.AllMarks {
			if v, ok := e.pending[m]; ok {
				ms = ms.With(m, v)
			}
		}
	}
	return ms
}

func (e *Editor) IsMarkActive(m document.Mark) bool {
	return e.SelectedMarks().Get(m)
}

// AddMark sets m on the selected text, or on the cursor marks when the
// selection is collapsed.
func (e *Editor) AddMark(m document.Mark) error {
	return e.setMark(m, true)
}

// RemoveMark clears m on the selected text, or on the cursor marks when the
// selection is collapsed.
func (e *Editor) RemoveMark(m document.Mark) error {
	return e.setMark(m, false)
}

func (e *Editor) setMark(m document.Mark, v bool) error {
	return e.do(func() error {
		if e.selection == nil {
			return nil
		}
		sel := *e.selection
		if sel.IsCollapsed() {
			ms, _ := e.Marks()
			ms = ms.With(m, v)
			e.marks = &ms
			return nil
		}
		return e.WithoutNormalizing(func() error { return e.setRangeMark(sel, m, v) })
	})
}

// setRangeMark splits the leaves at the edges of r and sets m on every leaf
// left inside it.
func (e *Editor) setRangeMark(r document.Range, m document.Mark, v bool) error {
	ref := e.RangeRef(r, true)
	defer ref.Unref()

	_, end := r.Edges()
	if err := e.splitTextAt(end); err != nil {
		return err
	}
	cur, ok := ref.Current()
	if !ok {
		return nil
	}
	start, _ := cur.Edges()
	if err := e.splitTextAt(start); err != nil {
		return err
	}
	if cur, ok = ref.Current(); !ok {
		return nil
	}
	start, end = cur.Edges()

	var targets []document.Path
	for tp, t := range document.Texts(e.children) {
		if tp.Compare(start.Path) < 0 {
			continue
		}
		if tp.Compare(end.Path) > 0 {
			break
		}
		from, to := 0, t.Len()
		if tp.Equal(start.Path) {
			from = start.Offset
		}
		if tp.Equal(end.Path) {
			to = end.Offset
		}
		if from >= to || t.Marks.Get(m) == v {
			continue
		}
		targets = append(targets, tp)
	}
	for _, tp := range targets {
		t, err := document.GetText(e.children, tp)
		if err != nil {
			return err
		}
		ms := t.Marks.With(m, v)
		if err := e.setNode(tp, document.Props{Marks: &ms}); err != nil {
			return err
		}
	}
	return nil
}

// ToggleMark flips m. On an empty document there is nothing to carry the
// mark, so it is queued as pending for the next inserted text.
func (e *Editor) ToggleMark(m document.Mark) error {
	active := e.IsMarkActive(m)
	if document.IsEmpty(e.children) {
		e.pending[m] = !active
		return nil
	}
	if active {
		return e.RemoveMark(m)
	}
	return e.AddMark(m)
}

// ClearMarks removes every mark active at the selection.
func (e *Editor) ClearMarks() error {
	return e.do(func() error {
		ms, ok := e.Marks()
		if !ok {
			return nil
		}
		for _, m := range ms.Active() {
			if err := e.RemoveMark(m); err != nil {
				return err
			}
		}
		return nil
	})
}

// LeaveMarkFromEdgeCharacter clears the cursor marks when the character on
// the given side of a collapsed caret is missing or does not carry them.
// EdgeStart looks before the caret, EdgeEnd after it.
func (e *Editor) LeaveMarkFromEdgeCharacter(edge document.Edge) error {
	if e.selection == nil || !e.selection.IsCollapsed() {
		return nil
	}
	ms, ok := e.Marks()
	if !ok || !ms.Any() {
		return nil
	}
	at := e.selection.Anchor
	blk, ok := e.Block(at.Path)
	if !ok {
		return nil
	}
	text, off := e.blockText(blk.Path, at)
	idx := off
	if edge == document.EdgeStart {
		idx = off - 1
	}
	if idx < 0 || idx >= len([]rune(text)) {
		return e.ClearMarks()
	}
	if t, ok := e.charLeaf(blk.Path, idx); !ok || !t.Marks.Contains(ms) {
		return e.ClearMarks()
	}
	return nil
}

// charLeaf returns the leaf holding the block-relative character idx.
func (e *Editor) charLeaf(bp document.Path, idx int) (*document.Text, bool) {
	el, err := document.GetElement(e.children, bp)
	if err != nil {
		return nil, false
	}
	total := 0
	for _, t := range document.Texts(el.Children) {
		if idx < total+t.Len() {
			return t, true
		}
		total += t.Len()
	}
	return nil, false
}

// PendingMarks returns a copy of the marks queued for the next insert.
func (e *Editor) PendingMarks() map[document.Mark]bool {
	out := make(map[document.Mark]bool, len(e.pending))
	for m, v := range e.pending {
		out[m] = v
	}
	return out
}

func (e *Editor) SetPendingMark(m document.Mark, v bool) { e.pending[m] = v }

func (e *Editor) ClearPendingMarks() { clear(e.pending) }
