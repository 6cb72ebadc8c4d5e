package document

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Node is either a *Text leaf or an *Element. The set is closed: no other
// package can implement Node.
type Node interface {
	isNode()
}

// Text is a leaf carrying a string payload and its formatting marks.
type Text struct {
	Text  string
	Marks Marks
}

func (*Text) isNode() {}

// Len returns the rune length of the leaf.
func (t *Text) Len() int { return utf8.RuneCountInString(t.Text) }

// ElementType discriminates the element variants.
type ElementType uint8

const (
	Paragraph ElementType = iota + 1
	Link
	ListItem
	BulletList
)

func (t ElementType) String() string {
	switch t {
	case Paragraph:
		return "paragraph"
	case Link:
		return "link"
	case ListItem:
		return "list-item"
	case BulletList:
		return "bullet-list"
	default:
		return fmt.Sprintf("element(%d)", uint8(t))
	}
}

// Element is a non-leaf node. URL is only meaningful for links.
type Element struct {
	Type     ElementType
	URL      string
	Children []Node
}

func (*Element) isNode() {}

// Is reports whether n is an element of type t.
func Is(n Node, t ElementType) bool {
	el, ok := n.(*Element)
	return ok && el.Type == t
}

// NewText returns a text leaf with the given marks.
func NewText(s string, marks ...Mark) *Text {
	t := &Text{Text: s}
	for _, m := range marks {
		t.Marks = t.Marks.With(m, true)
	}
	return t
}

// NewElement returns an element of type t with the given children.
func NewElement(t ElementType, children ...Node) *Element {
	return &Element{Type: t, Children: children}
}

// NewParagraph returns a paragraph; with no children it holds one empty text.
func NewParagraph(children ...Node) *Element {
	if len(children) == 0 {
		children = []Node{NewText("")}
	}
	return NewElement(Paragraph, children...)
}

// NewLink returns a link to url whose only child is the text s.
func NewLink(url, s string) *Element {
	return &Element{Type: Link, URL: url, Children: []Node{NewText(s)}}
}

// NewListItem returns a list item; with no children it holds one empty text.
func NewListItem(children ...Node) *Element {
	if len(children) == 0 {
		children = []Node{NewText("")}
	}
	return NewElement(ListItem, children...)
}

// NewBulletList returns a bullet list of the given items.
func NewBulletList(items ...Node) *Element {
	return NewElement(BulletList, items...)
}

// Clone returns a deep copy of n.
func Clone(n Node) Node {
	switch n := n.(type) {
	case *Text:
		cp := *n
		return &cp
	case *Element:
		return &Element{Type: n.Type, URL: n.URL, Children: CloneAll(n.Children)}
	default:
		panic(fmt.Sprintf("document: unknown node %T", n))
	}
}

// CloneAll deep-copies a node slice.
func CloneAll(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Clone(n)
	}
	return out
}

// StringOf returns the concatenated text of every leaf under n.
func StringOf(n Node) string {
	switch n := n.(type) {
	case *Text:
		return n.Text
	case *Element:
		var sb strings.Builder
		for _, c := range n.Children {
			sb.WriteString(StringOf(c))
		}
		return sb.String()
	default:
		panic(fmt.Sprintf("document: unknown node %T", n))
	}
}

// Equal reports deep structural equality of two nodes.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Text:
		bt, ok := b.(*Text)
		return ok && *a == *bt
	case *Element:
		be, ok := b.(*Element)
		if !ok || a.Type != be.Type || a.URL != be.URL || len(a.Children) != len(be.Children) {
			return false
		}
		for i := range a.Children {
			if !Equal(a.Children[i], be.Children[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// EqualAll reports deep equality of two node slices.
func EqualAll(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Props holds the non-children fields of a node used by SetNode operations.
// A nil field is left untouched; a zero Type leaves an element's type as is.
type Props struct {
	Type  ElementType
	URL   *string
	Marks *Marks
}

// PropsOf captures every non-children field of n.
func PropsOf(n Node) Props {
	switch n := n.(type) {
	case *Text:
		m := n.Marks
		return Props{Marks: &m}
	case *Element:
		u := n.URL
		return Props{Type: n.Type, URL: &u}
	default:
		panic(fmt.Sprintf("document: unknown node %T", n))
	}
}

func (p Props) applyTo(n Node) {
	switch n := n.(type) {
	case *Text:
		if p.Marks != nil {
			n.Marks = *p.Marks
		}
	case *Element:
		if p.Type != 0 {
			n.Type = p.Type
		}
		if p.URL != nil {
			n.URL = *p.URL
		}
	}
}

// String renders n in a compact debugging form, e.g.
// paragraph["hi" link(https://x)["x"]].
func String(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Text:
		fmt.Fprintf(sb, "%q", n.Text)
		for _, m := range n.Marks.Active() {
			sb.WriteString("+" + m.String())
		}
	case *Element:
		sb.WriteString(n.Type.String())
		if n.Type == Link {
			fmt.Fprintf(sb, "(%s)", n.URL)
		}
		sb.WriteByte('[')
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeNode(sb, c)
		}
		sb.WriteByte(']')
	}
}

// StringAll renders a node slice with String, one node per element.
func StringAll(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = String(n)
	}
	return strings.Join(parts, " ")
}
