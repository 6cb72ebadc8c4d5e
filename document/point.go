package document

import "fmt"

// Point is a cursor location: a path to a text leaf plus a rune offset.
type Point struct {
	Path   Path
	Offset int
}

func (p Point) Clone() Point { return Point{Path: p.Path.Clone(), Offset: p.Offset} }

func (p Point) Equal(q Point) bool { return p.Offset == q.Offset && p.Path.Equal(q.Path) }

func (p Point) String() string { return fmt.Sprintf("%s@%d", p.Path, p.Offset) }

// ComparePoints orders two points in document order.
func ComparePoints(a, b Point) int {
	if c := a.Path.Compare(b.Path); c != 0 {
		return c
	}
	switch {
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	default:
		return 0
	}
}

// Range is an anchor/focus pair. The anchor is where the selection started
// and may come after the focus.
type Range struct {
	Anchor Point
	Focus  Point
}

// Collapsed returns the empty range at p.
func Collapsed(p Point) Range { return Range{Anchor: p.Clone(), Focus: p.Clone()} }

func (r Range) Clone() Range { return Range{Anchor: r.Anchor.Clone(), Focus: r.Focus.Clone()} }

func (r Range) IsCollapsed() bool { return r.Anchor.Equal(r.Focus) }

func (r Range) IsBackward() bool { return ComparePoints(r.Anchor, r.Focus) > 0 }

// Edges returns the start and end points in document order.
func (r Range) Edges() (start, end Point) {
	if r.IsBackward() {
		return r.Focus, r.Anchor
	}
	return r.Anchor, r.Focus
}

func (r Range) Start() Point {
	s, _ := r.Edges()
	return s
}

func (r Range) End() Point {
	_, e := r.Edges()
	return e
}

// IncludesPath reports whether the node at p intersects the range.
func (r Range) IncludesPath(p Path) bool {
	s, e := r.Edges()
	return p.Compare(s.Path) >= 0 && p.Compare(e.Path) <= 0
}

// IncludesPoint reports whether pt lies within the range, edges included.
func (r Range) IncludesPoint(pt Point) bool {
	s, e := r.Edges()
	return ComparePoints(pt, s) >= 0 && ComparePoints(pt, e) <= 0
}

func (r Range) Equal(o Range) bool { return r.Anchor.Equal(o.Anchor) && r.Focus.Equal(o.Focus) }

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.Anchor, r.Focus) }

// Edge selects one end of a range.
type Edge uint8

const (
	EdgeStart Edge = iota
	EdgeEnd
	EdgeAnchor
	EdgeFocus
)

// Affinity decides which side a point sticks to when content is inserted or
// split exactly at its location.
type Affinity uint8

const (
	Forward Affinity = iota
	Backward
)
