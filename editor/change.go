package editor

import "github.com/iw2rmb/richtext/document"

// SelectionState captures the selection at a point in time.
type SelectionState struct {
	Active bool
	Range  document.Range
}

// Change describes one outermost command that applied operations.
type Change struct {
	VersionBefore   uint64
	VersionAfter    uint64
	SelectionBefore SelectionState
	SelectionAfter  SelectionState
	Operations      []document.Operation

	// Replaced is set when the tree was swapped wholesale by undo or redo
	// instead of being changed by Operations.
	Replaced bool
}

// TreeChanged reports whether the change touched the tree, not only the
// selection.
func (c Change) TreeChanged() bool {
	if c.Replaced {
		return true
	}
	for _, op := range c.Operations {
		if op.Type != document.OpSetSelection {
			return true
		}
	}
	return false
}

type changeBuilder struct {
	versionBefore   uint64
	selectionBefore SelectionState
	before          snapshot
	ops             []document.Operation
	replaced        bool
}

// LastChange returns the most recent effective change.
func (e *Editor) LastChange() (Change, bool) {
	if !e.hasLastChange {
		return Change{}, false
	}
	return cloneChange(e.lastChange), true
}

func cloneChange(in Change) Change {
	out := in
	out.Operations = append([]document.Operation(nil), in.Operations...)
	return out
}

func selectionStateOf(sel *document.Range) SelectionState {
	if sel == nil {
		return SelectionState{}
	}
	return SelectionState{Active: true, Range: sel.Clone()}
}

func (e *Editor) beginChange() *changeBuilder {
	return &changeBuilder{
		versionBefore:   e.version,
		selectionBefore: selectionStateOf(e.selection),
		before:          e.snapshot(),
	}
}

func (e *Editor) commitChange(cb *changeBuilder) {
	if cb == nil || (len(cb.ops) == 0 && !cb.replaced) {
		return
	}
	e.version++
	ch := Change{
		VersionBefore:   cb.versionBefore,
		VersionAfter:    e.version,
		SelectionBefore: cb.selectionBefore,
		SelectionAfter:  selectionStateOf(e.selection),
		Operations:      cb.ops,
		Replaced:        cb.replaced,
	}
	if !cb.replaced && ch.TreeChanged() && !document.EqualAll(cb.before.children, e.children) {
		e.recordUndo(cb.before)
	}
	e.lastChange = ch
	e.hasLastChange = true
	if e.opt.OnChange != nil {
		e.opt.OnChange(cloneChange(ch))
	}
}
