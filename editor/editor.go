package editor

import (
	"github.com/iw2rmb/richtext/document"
)

// Options configures an Editor.
type Options struct {
	// HistoryLimit caps the undo stack. Zero means 100; a negative value
	// disables history.
	HistoryLimit int

	// Plugins wrap the core handlers in order: the first plugin wraps the
	// core, the last one is outermost and sees every command first.
	Plugins []Plugin

	// OnChange, if set, is called once per outermost command that applied at
	// least one operation.
	OnChange func(Change)
}

// Editor owns a document tree and its selection. It is not safe for
// concurrent use.
type Editor struct {
	children  []document.Node
	selection *document.Range

	// marks overrides the marks derived from the selection; nil means derive.
	marks   *document.Marks
	pending map[document.Mark]bool

	h Handlers

	normalizing bool
	dirty       []document.Path

	pointRefs map[*PointRef]struct{}
	pathRefs  map[*PathRef]struct{}
	rangeRefs map[*RangeRef]struct{}

	version uint64
	opCount int
	depth   int
	cb      *changeBuilder

	lastChange    Change
	hasLastChange bool

	opt  Options
	hist historyState
}

// New returns an editor over a copy of children. The tree is used as is;
// call NormalizeAll to repair content loaded from outside.
func New(children []document.Node, opt Options) *Editor {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 100
	}
	e := &Editor{
		children:    document.CloneAll(children),
		pending:     map[document.Mark]bool{},
		normalizing: true,
		pointRefs:   map[*PointRef]struct{}{},
		pathRefs:    map[*PathRef]struct{}{},
		rangeRefs:   map[*RangeRef]struct{}{},
		opt:         opt,
	}
	e.h = compose(e, e.coreHandlers(), opt.Plugins)
	return e
}

// Children returns the live root slice. Callers must not mutate it.
func (e *Editor) Children() []document.Node { return e.children }

// Selection returns a copy of the current selection.
func (e *Editor) Selection() (document.Range, bool) {
	if e.selection == nil {
		return document.Range{}, false
	}
	return e.selection.Clone(), true
}

// Version increases once per command that changed the tree or selection.
func (e *Editor) Version() uint64 { return e.version }

// OperationCount returns the number of operations applied so far.
func (e *Editor) OperationCount() int { return e.opCount }

// Handlers returns the composed handler chain.
func (e *Editor) Handlers() Handlers { return e.h }

// SetOnChange replaces the change callback.
func (e *Editor) SetOnChange(fn func(Change)) { e.opt.OnChange = fn }

// do runs fn as one command. Nested calls join the outermost command, which
// records history and emits the change once. Panics raised by fn are
// returned as errors wrapping ErrHandlerPanic.
func (e *Editor) do(fn func() error) (err error) {
	if e.depth == 0 {
		e.cb = e.beginChange()
	}
	e.depth++
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
		e.depth--
		if e.depth == 0 {
			cb := e.cb
			e.cb = nil
			e.commitChange(cb)
		}
	}()
	return fn()
}

// transform runs fn as a command with normalization deferred to its end.
func (e *Editor) transform(fn func() error) error {
	return e.do(func() error {
		return e.WithoutNormalizing(fn)
	})
}

// apply commits one operation: it mutates the tree, moves the selection and
// every live ref, queues dirty paths and, unless suppressed, normalizes.
func (e *Editor) apply(op document.Operation) error {
	if op.Type == document.OpSetSelection {
		op.OldSelection = e.selection
		if op.Selection != nil {
			sel := op.Selection.Clone()
			op.Selection = &sel
		}
		e.selection = op.Selection
		e.marks = nil
		e.record(op)
		return nil
	}

	root, err := document.Apply(e.children, op)
	if err != nil {
		return err
	}
	e.children = root
	e.transformSelection(op)
	e.transformRefs(op)
	e.markDirty(op)
	e.record(op)
	return e.Normalize()
}

func (e *Editor) record(op document.Operation) {
	e.opCount++
	if e.cb == nil {
		return
	}
	if op.Node != nil {
		op.Node = document.Clone(op.Node)
	}
	e.cb.ops = append(e.cb.ops, op)
}

func (e *Editor) transformSelection(op document.Operation) {
	if e.selection == nil {
		return
	}
	sel := *e.selection
	for _, pt := range []*document.Point{&sel.Anchor, &sel.Focus} {
		next, ok := document.TransformPoint(*pt, op, document.Forward)
		if ok {
			*pt = next
			continue
		}
		fallback, ok := e.nearestText(op.Path)
		if !ok {
			e.selection = nil
			return
		}
		*pt = fallback
	}
	e.selection = &sel
}

// nearestText picks where a point lands when its leaf was removed at p:
// the end of the previous text, or the start of the next one when that is
// closer to p in the tree.
func (e *Editor) nearestText(p document.Path) (document.Point, bool) {
	var prev, next document.Path
	var prevText *document.Text
	for tp, t := range document.Texts(e.children) {
		if tp.Compare(p) < 0 {
			prev, prevText = tp, t
			continue
		}
		next = tp
		break
	}
	preferNext := false
	if prev != nil && next != nil {
		if next.Equal(p) {
			preferNext = !next.HasPrevious()
		} else {
			preferNext = len(prev.Common(p)) < len(next.Common(p))
		}
	}
	switch {
	case prev != nil && !preferNext:
		return document.Point{Path: prev, Offset: prevText.Len()}, true
	case next != nil:
		return document.Point{Path: next}, true
	default:
		return document.Point{}, false
	}
}

// Reset replaces the whole tree with nodes and puts the caret at the start.
func (e *Editor) Reset(nodes ...document.Node) error {
	return e.transform(func() error {
		for i := len(e.children) - 1; i >= 0; i-- {
			if err := e.removeNode(document.Path{i}); err != nil {
				return err
			}
		}
		for i, n := range nodes {
			if err := e.apply(document.Operation{Type: document.OpInsertNode, Path: document.Path{i}, Node: document.Clone(n)}); err != nil {
				return err
			}
		}
		start, err := e.Start(nil)
		if err != nil {
			return e.setSelection(nil)
		}
		r := document.Collapsed(start)
		return e.setSelection(&r)
	})
}
