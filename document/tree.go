package document

import (
	"iter"
	"strings"
)

// Get resolves the node at p under root in O(len(p)).
func Get(root []Node, p Path) (Node, error) {
	if len(p) == 0 {
		return nil, locationErr("get", p)
	}
	children := root
	var n Node
	for depth, idx := range p {
		if idx < 0 || idx >= len(children) {
			return nil, locationErr("get", p)
		}
		n = children[idx]
		if depth == len(p)-1 {
			break
		}
		el, ok := n.(*Element)
		if !ok {
			return nil, locationErr("get", p)
		}
		children = el.Children
	}
	return n, nil
}

// Has reports whether p resolves under root.
func Has(root []Node, p Path) bool {
	_, err := Get(root, p)
	return err == nil
}

// GetText resolves a text leaf.
func GetText(root []Node, p Path) (*Text, error) {
	n, err := Get(root, p)
	if err != nil {
		return nil, err
	}
	t, ok := n.(*Text)
	if !ok {
		return nil, locationErr("text", p)
	}
	return t, nil
}

// GetElement resolves an element.
func GetElement(root []Node, p Path) (*Element, error) {
	n, err := Get(root, p)
	if err != nil {
		return nil, err
	}
	el, ok := n.(*Element)
	if !ok {
		return nil, locationErr("element", p)
	}
	return el, nil
}

// ChildrenAt returns the children of the node at p; the empty path yields
// root itself.
func ChildrenAt(root []Node, p Path) ([]Node, error) {
	if len(p) == 0 {
		return root, nil
	}
	el, err := GetElement(root, p)
	if err != nil {
		return nil, err
	}
	return el.Children, nil
}

// Descendants yields every node under root with its path, in document order
// (parents before children).
func Descendants(root []Node) iter.Seq2[Path, Node] {
	return func(yield func(Path, Node) bool) {
		walk(root, nil, yield)
	}
}

func walk(nodes []Node, base Path, yield func(Path, Node) bool) bool {
	for i, n := range nodes {
		p := base.Append(i)
		if !yield(p, n) {
			return false
		}
		if el, ok := n.(*Element); ok {
			if !walk(el.Children, p, yield) {
				return false
			}
		}
	}
	return true
}

// Texts yields every text leaf under root with its path, in document order.
func Texts(root []Node) iter.Seq2[Path, *Text] {
	return func(yield func(Path, *Text) bool) {
		for p, n := range Descendants(root) {
			if t, ok := n.(*Text); ok {
				if !yield(p, t) {
					return
				}
			}
		}
	}
}

// descendantPaths lists the paths of every node below n, which sits at base.
func descendantPaths(n Node, base Path) []Path {
	el, ok := n.(*Element)
	if !ok {
		return nil
	}
	var out []Path
	for p := range Descendants(el.Children) {
		out = append(out, base.Append(p...))
	}
	return out
}

// FirstText returns the first leaf at or below p.
func FirstText(root []Node, p Path) (Path, *Text, error) {
	return edgeText(root, p, false)
}

// LastText returns the last leaf at or below p.
func LastText(root []Node, p Path) (Path, *Text, error) {
	return edgeText(root, p, true)
}

func edgeText(root []Node, p Path, last bool) (Path, *Text, error) {
	var n Node
	cur := p.Clone()
	if len(p) == 0 {
		if len(root) == 0 {
			return nil, nil, locationErr("edge", p)
		}
		idx := 0
		if last {
			idx = len(root) - 1
		}
		cur = Path{idx}
		n = root[idx]
	} else {
		var err error
		if n, err = Get(root, p); err != nil {
			return nil, nil, err
		}
	}
	for {
		switch v := n.(type) {
		case *Text:
			return cur, v, nil
		case *Element:
			if len(v.Children) == 0 {
				return nil, nil, locationErr("edge", cur)
			}
			idx := 0
			if last {
				idx = len(v.Children) - 1
			}
			cur = cur.Append(idx)
			n = v.Children[idx]
		}
	}
}

// StartPoint returns the first point at or below p.
func StartPoint(root []Node, p Path) (Point, error) {
	tp, _, err := FirstText(root, p)
	if err != nil {
		return Point{}, err
	}
	return Point{Path: tp, Offset: 0}, nil
}

// EndPoint returns the last point at or below p.
func EndPoint(root []Node, p Path) (Point, error) {
	tp, t, err := LastText(root, p)
	if err != nil {
		return Point{}, err
	}
	return Point{Path: tp, Offset: t.Len()}, nil
}

// IsEmpty reports whether nodes hold no non-whitespace text anywhere. An
// empty slice is empty.
func IsEmpty(nodes []Node) bool {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Text:
			if strings.TrimSpace(n.Text) != "" {
				return false
			}
		case *Element:
			if !IsEmpty(n.Children) {
				return false
			}
		}
	}
	return true
}
