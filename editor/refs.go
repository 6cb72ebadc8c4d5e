package editor

import "github.com/iw2rmb/richtext/document"

// PointRef tracks a point across operations until Unref is called.
type PointRef struct {
	e       *Editor
	current *document.Point
	aff     document.Affinity
}

// PointRef starts tracking pt.
func (e *Editor) PointRef(pt document.Point, aff document.Affinity) *PointRef {
	cp := pt.Clone()
	r := &PointRef{e: e, current: &cp, aff: aff}
	e.pointRefs[r] = struct{}{}
	return r
}

// Current returns the tracked point; false once its leaf was removed.
func (r *PointRef) Current() (document.Point, bool) {
	if r.current == nil {
		return document.Point{}, false
	}
	return r.current.Clone(), true
}

// Unref stops tracking and returns the final point.
func (r *PointRef) Unref() (document.Point, bool) {
	delete(r.e.pointRefs, r)
	return r.Current()
}

// PathRef tracks a path across operations until Unref is called.
type PathRef struct {
	e       *Editor
	current document.Path
	aff     document.Affinity
}

// PathRef starts tracking p.
func (e *Editor) PathRef(p document.Path, aff document.Affinity) *PathRef {
	r := &PathRef{e: e, current: p.Clone(), aff: aff}
	e.pathRefs[r] = struct{}{}
	return r
}

// Current returns the tracked path; false once its node was removed.
func (r *PathRef) Current() (document.Path, bool) {
	if r.current == nil {
		return nil, false
	}
	return r.current.Clone(), true
}

// Unref stops tracking and returns the final path.
func (r *PathRef) Unref() (document.Path, bool) {
	delete(r.e.pathRefs, r)
	return r.Current()
}

// RangeRef tracks a range across operations until Unref is called.
type RangeRef struct {
	e       *Editor
	current *document.Range
	inward  bool
}

// RangeRef starts tracking rg. An inward ref keeps its edges from growing
// when content is inserted exactly at them.
func (e *Editor) RangeRef(rg document.Range, inward bool) *RangeRef {
	cp := rg.Clone()
	r := &RangeRef{e: e, current: &cp, inward: inward}
	e.rangeRefs[r] = struct{}{}
	return r
}

// Current returns the tracked range; false once either edge was removed.
func (r *RangeRef) Current() (document.Range, bool) {
	if r.current == nil {
		return document.Range{}, false
	}
	return r.current.Clone(), true
}

// Unref stops tracking and returns the final range.
func (r *RangeRef) Unref() (document.Range, bool) {
	delete(r.e.rangeRefs, r)
	return r.Current()
}

func (e *Editor) transformRefs(op document.Operation) {
	for r := range e.pointRefs {
		if r.current == nil {
			continue
		}
		next, ok := document.TransformPoint(*r.current, op, r.aff)
		if !ok {
			r.current = nil
			continue
		}
		r.current = &next
	}
	for r := range e.pathRefs {
		if r.current == nil {
			continue
		}
		next, ok := document.TransformPath(r.current, op, r.aff)
		if !ok {
			r.current = nil
			continue
		}
		r.current = next
	}
	for r := range e.rangeRefs {
		if r.current == nil {
			continue
		}
		anchorAff, focusAff := document.Forward, document.Forward
		if r.inward && !r.current.IsCollapsed() {
			if r.current.IsBackward() {
				anchorAff = document.Backward
			} else {
				focusAff = document.Backward
			}
		}
		anchor, ok1 := document.TransformPoint(r.current.Anchor, op, anchorAff)
		focus, ok2 := document.TransformPoint(r.current.Focus, op, focusAff)
		if !ok1 || !ok2 {
			r.current = nil
			continue
		}
		r.current = &document.Range{Anchor: anchor, Focus: focus}
	}
}
