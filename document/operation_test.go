package document

import (
	"errors"
	"testing"
)

func mustApply(t *testing.T, root []Node, ops ...Operation) []Node {
	t.Helper()
	var err error
	for _, op := range ops {
		root, err = Apply(root, op)
		if err != nil {
			t.Fatalf("apply %s: %v", op, err)
		}
	}
	return root
}

func TestApply_TextOps(t *testing.T) {
	root := []Node{NewParagraph(NewText("héllo"))}
	root = mustApply(t, root,
		Operation{Type: OpInsertText, Path: Path{0, 0}, Offset: 2, Text: "XY"},
		Operation{Type: OpRemoveText, Path: Path{0, 0}, Offset: 0, Text: "hé"},
	)
	if got, want := StringOf(root[0]), "XYllo"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}

	_, err := Apply(root, Operation{Type: OpInsertText, Path: Path{0, 0}, Offset: 9, Text: "z"})
	if !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("out of range insert: got %v, want ErrInvalidLocation", err)
	}
}

func TestApply_SplitMergeRoundTrip(t *testing.T) {
	root := []Node{NewParagraph(NewText("ab", Bold), NewText("cd"))}
	root = mustApply(t, root,
		Operation{Type: OpSplitNode, Path: Path{0, 0}, Position: 1},
		Operation{Type: OpSplitNode, Path: Path{0}, Position: 1},
	)
	if got, want := StringAll(root), `paragraph["a"+bold] paragraph["b"+bold "cd"]`; got != want {
		t.Fatalf("split: got %s, want %s", got, want)
	}

	root = mustApply(t, root,
		Operation{Type: OpMergeNode, Path: Path{1}, Position: 1},
		Operation{Type: OpMergeNode, Path: Path{0, 1}, Position: 1},
	)
	if got, want := StringAll(root), `paragraph["ab"+bold "cd"]`; got != want {
		t.Fatalf("merge: got %s, want %s", got, want)
	}
}

func TestApply_MoveAndSetNode(t *testing.T) {
	root := []Node{NewParagraph(NewText("a")), NewParagraph(NewText("b")), NewParagraph(NewText("c"))}
	root = mustApply(t, root, Operation{Type: OpMoveNode, Path: Path{0}, NewPath: Path{2}})
	if got, want := StringAll(root), `paragraph["b"] paragraph["c"] paragraph["a"]`; got != want {
		t.Fatalf("move: got %s, want %s", got, want)
	}

	root = mustApply(t, root, Operation{Type: OpMoveNode, Path: Path{2}, NewPath: Path{0, 1}})
	if got, want := StringAll(root), `paragraph["b" paragraph["a"]] paragraph["c"]`; got != want {
		t.Fatalf("move into: got %s, want %s", got, want)
	}

	if _, err := Apply(root, Operation{Type: OpMoveNode, Path: Path{0}, NewPath: Path{0, 0}}); err == nil {
		t.Fatalf("moving a node into itself must fail")
	}

	m := Marks{Italic: true}
	root = mustApply(t, root,
		Operation{Type: OpSetNode, Path: Path{1}, Props: Props{Type: ListItem}},
		Operation{Type: OpSetNode, Path: Path{1, 0}, Props: Props{Marks: &m}},
	)
	if got, want := String(root[1]), `list-item["c"+italic]`; got != want {
		t.Fatalf("set node: got %s, want %s", got, want)
	}
}

func TestApply_InsertRemoveAtRoot(t *testing.T) {
	var root []Node
	root = mustApply(t, root, Operation{Type: OpInsertNode, Path: Path{0}, Node: NewParagraph()})
	root = mustApply(t, root, Operation{Type: OpInsertNode, Path: Path{1}, Node: NewParagraph(NewText("x"))})
	root = mustApply(t, root, Operation{Type: OpRemoveNode, Path: Path{0}})
	if got, want := StringAll(root), `paragraph["x"]`; got != want {
		t.Fatalf("root ops: got %s, want %s", got, want)
	}
	if _, err := Apply(root, Operation{Type: OpRemoveNode, Path: Path{3}}); !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("remove missing: got %v, want ErrInvalidLocation", err)
	}
}

func TestDirtyPaths(t *testing.T) {
	got := DirtyPaths(Operation{Type: OpSplitNode, Path: Path{0, 1}})
	want := []string{"[]", "[0]", "[0,1]", "[0,2]"}
	if len(got) != len(want) {
		t.Fatalf("dirty: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Fatalf("dirty: got %v, want %v", got, want)
		}
	}

	ins := DirtyPaths(Operation{Type: OpInsertNode, Path: Path{1}, Node: NewParagraph(NewText("a"))})
	if got, want := len(ins), 3; got != want {
		t.Fatalf("insert dirty: got %d paths, want %d", got, want)
	}
}
