package editor

import "github.com/iw2rmb/richtext/document"

type snapshot struct {
	children  []document.Node
	selection *document.Range
}

type historyState struct {
	undo []snapshot
	redo []snapshot
}

func (e *Editor) snapshot() snapshot {
	s := snapshot{children: document.CloneAll(e.children)}
	if e.selection != nil {
		sel := e.selection.Clone()
		s.selection = &sel
	}
	return s
}

func (e *Editor) restore(s snapshot) {
	e.children = document.CloneAll(s.children)
	e.selection = nil
	if s.selection != nil {
		sel := s.selection.Clone()
		e.selection = &sel
	}
	e.marks = nil
	e.dirty = nil
	clear(e.pointRefs)
	clear(e.pathRefs)
	clear(e.rangeRefs)
}

func (e *Editor) recordUndo(prev snapshot) {
	limit := e.opt.HistoryLimit
	if limit <= 0 {
		return
	}

	e.hist.undo = append(e.hist.undo, prev)
	if len(e.hist.undo) > limit {
		e.hist.undo = e.hist.undo[len(e.hist.undo)-limit:]
	}
	e.hist.redo = nil
}

func (e *Editor) CanUndo() bool { return len(e.hist.undo) > 0 }

func (e *Editor) CanRedo() bool { return len(e.hist.redo) > 0 }

// Undo restores the tree and selection from before the last recorded
// command. It reports false when there is nothing to undo.
func (e *Editor) Undo() bool {
	if len(e.hist.undo) == 0 || e.depth > 0 {
		return false
	}
	_ = e.do(func() error {
		cur := e.snapshot()
		i := len(e.hist.undo) - 1
		prev := e.hist.undo[i]
		e.hist.undo = e.hist.undo[:i]
		e.hist.redo = append(e.hist.redo, cur)

		e.restore(prev)
		e.cb.replaced = true
		return nil
	})
	return true
}

// Redo re-applies the last undone command.
func (e *Editor) Redo() bool {
	if len(e.hist.redo) == 0 || e.depth > 0 {
		return false
	}
	_ = e.do(func() error {
		cur := e.snapshot()
		i := len(e.hist.redo) - 1
		next := e.hist.redo[i]
		e.hist.redo = e.hist.redo[:i]

		limit := e.opt.HistoryLimit
		if limit > 0 {
			e.hist.undo = append(e.hist.undo, cur)
			if len(e.hist.undo) > limit {
				e.hist.undo = e.hist.undo[len(e.hist.undo)-limit:]
			}
		}

		e.restore(next)
		e.cb.replaced = true
		return nil
	})
	return true
}

// ClearHistory drops both stacks.
func (e *Editor) ClearHistory() {
	e.hist = historyState{}
}
