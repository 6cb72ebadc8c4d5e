package document

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// OpType identifies an operation primitive.
type OpType uint8

const (
	OpInsertNode OpType = iota + 1
	OpRemoveNode
	OpMergeNode
	OpSplitNode
	OpMoveNode
	OpSetNode
	OpInsertText
	OpRemoveText
	OpSetSelection
)

func (t OpType) String() string {
	switch t {
	case OpInsertNode:
		return "insert_node"
	case OpRemoveNode:
		return "remove_node"
	case OpMergeNode:
		return "merge_node"
	case OpSplitNode:
		return "split_node"
	case OpMoveNode:
		return "move_node"
	case OpSetNode:
		return "set_node"
	case OpInsertText:
		return "insert_text"
	case OpRemoveText:
		return "remove_text"
	case OpSetSelection:
		return "set_selection"
	default:
		return fmt.Sprintf("op(%d)", uint8(t))
	}
}

// Operation is one atomic mutation. Which fields are meaningful depends on
// Type:
//
//   - insert_node/remove_node: Path, Node
//   - merge_node: Path (the node merged into its previous sibling), Position
//     (length of that previous sibling before the merge)
//   - split_node: Path, Position, Props (fields of the new right-hand node)
//   - move_node: Path, NewPath
//   - set_node: Path, Props, OldProps
//   - insert_text/remove_text: Path, Offset, Text
//   - set_selection: Selection, OldSelection (nil means no selection)
type Operation struct {
	Type     OpType
	Path     Path
	NewPath  Path
	Offset   int
	Text     string
	Node     Node
	Position int
	Props    Props
	OldProps Props

	Selection    *Range
	OldSelection *Range
}

func (op Operation) String() string {
	switch op.Type {
	case OpInsertText, OpRemoveText:
		return fmt.Sprintf("%s %s@%d %q", op.Type, op.Path, op.Offset, op.Text)
	case OpMergeNode, OpSplitNode:
		return fmt.Sprintf("%s %s pos=%d", op.Type, op.Path, op.Position)
	case OpMoveNode:
		return fmt.Sprintf("%s %s -> %s", op.Type, op.Path, op.NewPath)
	case OpSetSelection:
		if op.Selection == nil {
			return op.Type.String() + " <none>"
		}
		return fmt.Sprintf("%s %s", op.Type, *op.Selection)
	default:
		return fmt.Sprintf("%s %s", op.Type, op.Path)
	}
}

// Apply performs op against root and returns the (possibly reallocated) root
// slice. Elements are mutated in place. Selection operations leave the tree
// untouched.
func Apply(root []Node, op Operation) ([]Node, error) {
	switch op.Type {
	case OpInsertNode:
		if len(op.Path) == 0 || op.Node == nil {
			return root, locationErr(op.Type.String(), op.Path)
		}
		parent, idx := op.Path.Parent(), op.Path.Last()
		ch, err := ChildrenAt(root, parent)
		if err != nil {
			return root, err
		}
		if idx < 0 || idx > len(ch) {
			return root, locationErr(op.Type.String(), op.Path)
		}
		return setChildren(root, parent, slices.Insert(ch, idx, op.Node)), nil

	case OpRemoveNode:
		return removeAt(root, op.Path, op.Type.String())

	case OpInsertText:
		t, err := GetText(root, op.Path)
		if err != nil {
			return root, err
		}
		rs := []rune(t.Text)
		if op.Offset < 0 || op.Offset > len(rs) {
			return root, locationErr(op.Type.String(), op.Path)
		}
		t.Text = string(rs[:op.Offset]) + op.Text + string(rs[op.Offset:])
		return root, nil

	case OpRemoveText:
		t, err := GetText(root, op.Path)
		if err != nil {
			return root, err
		}
		rs := []rune(t.Text)
		n := utf8.RuneCountInString(op.Text)
		if op.Offset < 0 || op.Offset+n > len(rs) {
			return root, locationErr(op.Type.String(), op.Path)
		}
		t.Text = string(rs[:op.Offset]) + string(rs[op.Offset+n:])
		return root, nil

	case OpMergeNode:
		if !op.Path.HasPrevious() {
			return root, locationErr(op.Type.String(), op.Path)
		}
		node, err := Get(root, op.Path)
		if err != nil {
			return root, err
		}
		prev, err := Get(root, op.Path.Previous())
		if err != nil {
			return root, err
		}
		switch p := prev.(type) {
		case *Text:
			t, ok := node.(*Text)
			if !ok {
				return root, fmt.Errorf("merge %s: %w", op.Path, ErrNodeKind)
			}
			p.Text += t.Text
		case *Element:
			el, ok := node.(*Element)
			if !ok {
				return root, fmt.Errorf("merge %s: %w", op.Path, ErrNodeKind)
			}
			p.Children = append(p.Children, el.Children...)
		}
		return removeAt(root, op.Path, op.Type.String())

	case OpSplitNode:
		node, err := Get(root, op.Path)
		if err != nil {
			return root, err
		}
		var right Node
		switch n := node.(type) {
		case *Text:
			rs := []rune(n.Text)
			if op.Position < 0 || op.Position > len(rs) {
				return root, locationErr(op.Type.String(), op.Path)
			}
			n.Text = string(rs[:op.Position])
			right = &Text{Text: string(rs[op.Position:]), Marks: n.Marks}
		case *Element:
			if op.Position < 0 || op.Position > len(n.Children) {
				return root, locationErr(op.Type.String(), op.Path)
			}
			after := append([]Node(nil), n.Children[op.Position:]...)
			n.Children = append([]Node(nil), n.Children[:op.Position]...)
			right = &Element{Type: n.Type, URL: n.URL, Children: after}
		}
		op.Props.applyTo(right)
		return Apply(root, Operation{Type: OpInsertNode, Path: op.Path.Next(), Node: right})

	case OpMoveNode:
		if op.Path.Equal(op.NewPath) {
			return root, nil
		}
		if op.Path.IsAncestorOf(op.NewPath) {
			return root, locationErr(op.Type.String(), op.NewPath)
		}
		node, err := Get(root, op.Path)
		if err != nil {
			return root, err
		}
		if root, err = removeAt(root, op.Path, op.Type.String()); err != nil {
			return root, err
		}
		target, _ := TransformPath(op.Path, op, Forward)
		return Apply(root, Operation{Type: OpInsertNode, Path: target, Node: node})

	case OpSetNode:
		node, err := Get(root, op.Path)
		if err != nil {
			return root, err
		}
		op.Props.applyTo(node)
		return root, nil

	case OpSetSelection:
		return root, nil

	default:
		return root, fmt.Errorf("apply %s: unknown operation", op.Type)
	}
}

func removeAt(root []Node, p Path, opName string) ([]Node, error) {
	if len(p) == 0 {
		return root, locationErr(opName, p)
	}
	parent, idx := p.Parent(), p.Last()
	ch, err := ChildrenAt(root, parent)
	if err != nil {
		return root, err
	}
	if idx < 0 || idx >= len(ch) {
		return root, locationErr(opName, p)
	}
	return setChildren(root, parent, slices.Delete(ch, idx, idx+1)), nil
}

func setChildren(root []Node, parent Path, ch []Node) []Node {
	if len(parent) == 0 {
		return ch
	}
	// The parent was resolved by the caller.
	el, _ := GetElement(root, parent)
	el.Children = ch
	return root
}

// DirtyPaths lists the paths whose nodes may violate invariants after op.
// Paths are expressed against the tree after op has been applied.
func DirtyPaths(op Operation) []Path {
	switch op.Type {
	case OpInsertText, OpRemoveText, OpSetNode:
		return op.Path.Levels()
	case OpInsertNode:
		return append(op.Path.Levels(), descendantPaths(op.Node, op.Path)...)
	case OpMergeNode:
		return append(op.Path.Ancestors(), op.Path.Previous())
	case OpSplitNode:
		return append(op.Path.Levels(), op.Path.Next())
	case OpRemoveNode:
		return op.Path.Ancestors()
	case OpMoveNode:
		if op.Path.Equal(op.NewPath) {
			return nil
		}
		var out []Path
		for _, a := range op.Path.Ancestors() {
			if p, ok := TransformPath(a, op, Forward); ok {
				out = append(out, p)
			}
		}
		if target, ok := TransformPath(op.Path, op, Forward); ok {
			out = append(out, target.Levels()...)
		}
		return out
	default:
		return nil
	}
}
