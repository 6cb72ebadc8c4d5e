package document

import "testing"

func TestPath_CompareAndRelations(t *testing.T) {
	cases := []struct {
		a, b Path
		cmp  int
	}{
		{a: Path{0}, b: Path{1}, cmp: -1},
		{a: Path{1, 2}, b: Path{1, 0}, cmp: 1},
		{a: Path{1}, b: Path{1, 3}, cmp: 0},
		{a: Path{}, b: Path{4}, cmp: 0},
	}
	for _, tc := range cases {
		if got := tc.a.Compare(tc.b); got != tc.cmp {
			t.Fatalf("Compare(%s, %s): got %d, want %d", tc.a, tc.b, got, tc.cmp)
		}
	}

	if !(Path{1}).IsAncestorOf(Path{1, 0, 2}) {
		t.Fatalf("expected [1] to be an ancestor of [1,0,2]")
	}
	if (Path{1}).IsAncestorOf(Path{1}) {
		t.Fatalf("a path must not be its own ancestor")
	}
	if !(Path{1, 0}).IsParentOf(Path{1, 0, 2}) {
		t.Fatalf("expected [1,0] to be the parent of [1,0,2]")
	}
	if !(Path{0}).EndsBefore(Path{1, 4}) {
		t.Fatalf("expected [0] to end before [1,4]")
	}
	if (Path{0, 1}).EndsBefore(Path{1}) {
		t.Fatalf("[0,1] must not end before the shorter [1]")
	}
	if !(Path{2, 1}).IsSibling(Path{2, 5}) {
		t.Fatalf("expected [2,1] and [2,5] to be siblings")
	}
}

func TestPath_NavigationDoesNotAlias(t *testing.T) {
	p := Path{3, 4}
	next := p.Next()
	prev := p.Previous()
	parent := p.Parent()
	next[0] = 99

	if got, want := p.String(), "[3,4]"; got != want {
		t.Fatalf("original path mutated: got %s, want %s", got, want)
	}
	if got, want := prev.String(), "[3,3]"; got != want {
		t.Fatalf("previous: got %s, want %s", got, want)
	}
	if got, want := parent.String(), "[3]"; got != want {
		t.Fatalf("parent: got %s, want %s", got, want)
	}
	if got, want := len(p.Levels()), 3; got != want {
		t.Fatalf("levels: got %d, want %d", got, want)
	}
	if got, want := (Path{1, 2, 3}).Common(Path{1, 2, 7}).String(), "[1,2]"; got != want {
		t.Fatalf("common: got %s, want %s", got, want)
	}
}

func TestRange_EdgesAndCollapse(t *testing.T) {
	a := Point{Path: Path{0, 1}, Offset: 3}
	b := Point{Path: Path{0, 0}, Offset: 5}
	r := Range{Anchor: a, Focus: b}

	if !r.IsBackward() {
		t.Fatalf("expected backward range")
	}
	start, end := r.Edges()
	if !start.Equal(b) || !end.Equal(a) {
		t.Fatalf("edges: got %s..%s, want %s..%s", start, end, b, a)
	}
	if r.IsCollapsed() {
		t.Fatalf("expected expanded range")
	}
	if !Collapsed(a).IsCollapsed() {
		t.Fatalf("expected collapsed range")
	}
	if !r.IncludesPath(Path{0}) {
		t.Fatalf("range must include its common ancestor")
	}
}

func TestMarks_WithUnionActive(t *testing.T) {
	ms := Marks{}.With(Bold, true).With(Code, true)
	if got, want := len(ms.Active()), 2; got != want {
		t.Fatalf("active marks: got %d, want %d", got, want)
	}
	if !ms.Contains(Marks{Bold: true}) {
		t.Fatalf("expected marks to contain bold")
	}
	if ms.Contains(Marks{Italic: true}) {
		t.Fatalf("marks must not contain italic")
	}
	if got := ms.Without(Bold).Union(Marks{Italic: true}); got != (Marks{Italic: true, Code: true}) {
		t.Fatalf("union: got %+v", got)
	}
	for _, m := range AllMarks {
		back, ok := ParseMark(m.String())
		if !ok || back != m {
			t.Fatalf("ParseMark(%q): got %v %v", m.String(), back, ok)
		}
	}
}
