package document

import (
	"strconv"
	"strings"
)

// Path addresses a node by child indexes from the root. The empty path is
// the root itself. Paths are values: they are only valid until the next
// mutation of the tree they were computed against.
type Path []int

func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return append(Path(nil), p...)
}

func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Compare orders two paths in document order. An ancestor compares equal to
// its descendants.
func (p Path) Compare(q Path) int {
	n := min(len(p), len(q))
	for i := 0; i < n; i++ {
		if p[i] < q[i] {
			return -1
		}
		if p[i] > q[i] {
			return 1
		}
	}
	return 0
}

func (p Path) IsBefore(q Path) bool { return p.Compare(q) < 0 }

func (p Path) IsAfter(q Path) bool { return p.Compare(q) > 0 }

// IsAncestorOf reports whether p is a strict ancestor of q.
func (p Path) IsAncestorOf(q Path) bool {
	return len(p) < len(q) && p.Compare(q) == 0
}

// IsParentOf reports whether p is the direct parent of q.
func (p Path) IsParentOf(q Path) bool {
	return len(p)+1 == len(q) && p.Compare(q) == 0
}

// IsCommon reports whether p is q or one of its ancestors.
func (p Path) IsCommon(q Path) bool {
	return len(p) <= len(q) && p.Compare(q) == 0
}

// IsSibling reports whether p and q share a parent and differ.
func (p Path) IsSibling(q Path) bool {
	if len(p) == 0 || len(p) != len(q) {
		return false
	}
	return p[:len(p)-1].Equal(q[:len(q)-1]) && p[len(p)-1] != q[len(q)-1]
}

// EndsBefore reports whether p is a preceding sibling of q or of one of
// q's ancestors.
func (p Path) EndsBefore(q Path) bool {
	i := len(p) - 1
	if i < 0 || len(q) <= i {
		return false
	}
	return p[:i].Equal(q[:i]) && p[i] < q[i]
}

func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1].Clone()
}

func (p Path) Last() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

func (p Path) Next() Path {
	out := p.Clone()
	if len(out) > 0 {
		out[len(out)-1]++
	}
	return out
}

func (p Path) HasPrevious() bool { return len(p) > 0 && p[len(p)-1] > 0 }

func (p Path) Previous() Path {
	out := p.Clone()
	if len(out) > 0 && out[len(out)-1] > 0 {
		out[len(out)-1]--
	}
	return out
}

// Append returns a new path extending p with idx.
func (p Path) Append(idx ...int) Path {
	out := make(Path, 0, len(p)+len(idx))
	out = append(out, p...)
	return append(out, idx...)
}

// Ancestors returns every strict ancestor of p, root first.
func (p Path) Ancestors() []Path {
	out := make([]Path, 0, len(p))
	for i := 0; i < len(p); i++ {
		out = append(out, p[:i].Clone())
	}
	return out
}

// Levels returns the ancestors of p followed by p itself.
func (p Path) Levels() []Path {
	return append(p.Ancestors(), p.Clone())
}

// Common returns the longest shared prefix of p and q.
func (p Path) Common(q Path) Path {
	var out Path
	for i := 0; i < len(p) && i < len(q); i++ {
		if p[i] != q[i] {
			break
		}
		out = append(out, p[i])
	}
	return out
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
