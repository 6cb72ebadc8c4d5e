package editor

import (
	"strings"

	"github.com/iw2rmb/richtext/document"
	"github.com/iw2rmb/richtext/internal/grapheme"
)

// Node resolves the node at p.
func (e *Editor) Node(p document.Path) (document.Node, error) {
	return document.Get(e.children, p)
}

// Start returns the first point at or below p; nil means the whole document.
func (e *Editor) Start(p document.Path) (document.Point, error) {
	return document.StartPoint(e.children, p)
}

// End returns the last point at or below p; nil means the whole document.
func (e *Editor) End(p document.Path) (document.Point, error) {
	return document.EndPoint(e.children, p)
}

// IsStart reports whether pt is the first point of the node at p.
func (e *Editor) IsStart(pt document.Point, p document.Path) bool {
	start, err := e.Start(p)
	return err == nil && start.Equal(pt)
}

// IsEnd reports whether pt is the last point of the node at p.
func (e *Editor) IsEnd(pt document.Point, p document.Path) bool {
	end, err := e.End(p)
	return err == nil && end.Equal(pt)
}

// Parent returns the entry of p's parent; the root entry for top-level paths.
func (e *Editor) Parent(p document.Path) (Entry, error) {
	if len(p) == 0 {
		return Entry{}, document.ErrInvalidLocation
	}
	parent := p.Parent()
	if len(parent) == 0 {
		return Entry{Path: document.Path{}}, nil
	}
	n, err := e.Node(parent)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Node: n, Path: parent}, nil
}

// Above returns the lowest ancestor of p, excluding p itself, for which
// match is true.
func (e *Editor) Above(p document.Path, match func(document.Node) bool) (Entry, bool) {
	for i := len(p) - 1; i > 0; i-- {
		at := p[:i].Clone()
		n, err := e.Node(at)
		if err != nil {
			return Entry{}, false
		}
		if match(n) {
			return Entry{Node: n, Path: at}, true
		}
	}
	return Entry{}, false
}

// IsBlock reports whether n is a block element.
func (e *Editor) IsBlock(n document.Node) bool {
	el, ok := n.(*document.Element)
	return ok && !e.IsInline(el)
}

// isTextBlock reports whether n is a block whose children are inline.
func (e *Editor) isTextBlock(n document.Node) bool {
	el, ok := n.(*document.Element)
	if !ok || e.IsInline(el) {
		return false
	}
	return len(el.Children) == 0 || e.isInlineNode(el.Children[0])
}

// Block returns the lowest block containing the node at p.
func (e *Editor) Block(p document.Path) (Entry, bool) {
	return e.Above(p, e.IsBlock)
}

// AboveType returns the lowest ancestor of p with element type t.
func (e *Editor) AboveType(p document.Path, t document.ElementType) (Entry, bool) {
	return e.Above(p, func(n document.Node) bool { return document.Is(n, t) })
}

func (e *Editor) previousTextBlock(p document.Path) (document.Path, bool) {
	var out document.Path
	for bp, n := range document.Descendants(e.children) {
		c := bp.Compare(p)
		if c > 0 {
			break
		}
		if c == 0 {
			continue
		}
		if e.isTextBlock(n) {
			out = bp
		}
	}
	return out, out != nil
}

func (e *Editor) nextTextBlock(p document.Path) (document.Path, bool) {
	for bp, n := range document.Descendants(e.children) {
		if bp.Compare(p) > 0 && e.isTextBlock(n) {
			return bp, true
		}
	}
	return nil, false
}

// String returns the text covered by r; blocks are joined without separator.
func (e *Editor) String(r document.Range) string {
	start, end := r.Edges()
	var sb strings.Builder
	for tp, t := range document.Texts(e.children) {
		if tp.Compare(start.Path) < 0 {
			continue
		}
		if tp.Compare(end.Path) > 0 {
			break
		}
		rs := []rune(t.Text)
		from, to := 0, len(rs)
		if tp.Equal(start.Path) {
			from = min(start.Offset, len(rs))
		}
		if tp.Equal(end.Path) {
			to = min(end.Offset, len(rs))
		}
		if from < to {
			sb.WriteString(string(rs[from:to]))
		}
	}
	return sb.String()
}

// blockText returns the text of the block at bp and the block-relative rune
// offset of pt.
func (e *Editor) blockText(bp document.Path, pt document.Point) (string, int) {
	n, err := e.Node(bp)
	if err != nil {
		return "", 0
	}
	el, ok := n.(*document.Element)
	if !ok {
		return "", 0
	}
	var sb strings.Builder
	off, total := -1, 0
	for rel, t := range document.Texts(el.Children) {
		if off < 0 && bp.Append(rel...).Equal(pt.Path) {
			off = total + pt.Offset
		}
		sb.WriteString(t.Text)
		total += t.Len()
	}
	if off < 0 {
		off = 0
	}
	return sb.String(), off
}

// blockPoint maps a block-relative rune offset back to a point. At a leaf
// boundary it prefers a leaf that sits directly in the block.
func (e *Editor) blockPoint(bp document.Path, off int) (document.Point, bool) {
	n, err := e.Node(bp)
	if err != nil {
		return document.Point{}, false
	}
	el, ok := n.(*document.Element)
	if !ok {
		return document.Point{}, false
	}
	var found *document.Point
	total := 0
	for rel, t := range document.Texts(el.Children) {
		start, end := total, total+t.Len()
		total = end
		if off < start || off > end {
			continue
		}
		pt := document.Point{Path: bp.Append(rel...), Offset: off - start}
		if found == nil {
			found = &pt
			if len(rel) == 1 {
				break
			}
			continue
		}
		if len(rel) == 1 {
			found = &pt
		}
		break
	}
	if found == nil {
		return document.Point{}, false
	}
	return *found, true
}

// Before returns the point one unit before pt. At the start of a block it
// returns the end of the previous text block; false at the document start.
func (e *Editor) Before(pt document.Point, unit Unit) (document.Point, bool) {
	blk, ok := e.Block(pt.Path)
	if !ok {
		return document.Point{}, false
	}
	text, off := e.blockText(blk.Path, pt)
	if off == 0 {
		prev, ok := e.previousTextBlock(blk.Path)
		if !ok {
			return document.Point{}, false
		}
		end, err := e.End(prev)
		return end, err == nil
	}
	return e.blockPoint(blk.Path, stepBack(text, off, unit))
}

// After returns the point one unit after pt. At the end of a block it
// returns the start of the next text block; false at the document end.
func (e *Editor) After(pt document.Point, unit Unit) (document.Point, bool) {
	blk, ok := e.Block(pt.Path)
	if !ok {
		return document.Point{}, false
	}
	text, off := e.blockText(blk.Path, pt)
	if off >= len([]rune(text)) {
		next, ok := e.nextTextBlock(blk.Path)
		if !ok {
			return document.Point{}, false
		}
		start, err := e.Start(next)
		return start, err == nil
	}
	return e.blockPoint(blk.Path, stepForward(text, off, unit))
}

func stepBack(text string, off int, unit Unit) int {
	rs := []rune(text)
	switch unit {
	case UnitOffset:
		return off - 1
	case UnitWord:
		return grapheme.PrevWord(text, off)
	case UnitLine:
		start := 0
		for i := off - 1; i >= 0; i-- {
			if rs[i] == '\n' {
				start = i + 1
				break
			}
		}
		if start == off {
			start = off - 1
		}
		return start
	default:
		return grapheme.PrevBoundary(text, off)
	}
}

func stepForward(text string, off int, unit Unit) int {
	rs := []rune(text)
	switch unit {
	case UnitOffset:
		return off + 1
	case UnitWord:
		return grapheme.NextWord(text, off)
	case UnitLine:
		end := len(rs)
		for i := off; i < len(rs); i++ {
			if rs[i] == '\n' {
				end = i
				break
			}
		}
		if end == off {
			end = off + 1
		}
		return end
	default:
		return grapheme.NextBoundary(text, off)
	}
}

// leaf resolves the text under pt.
func (e *Editor) leaf(pt document.Point) (*document.Text, error) {
	return document.GetText(e.children, pt.Path)
}
