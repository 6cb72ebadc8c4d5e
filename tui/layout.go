package tui

import (
	"unicode/utf8"

	"github.com/iw2rmb/richtext/document"
	graphemeutil "github.com/iw2rmb/richtext/internal/grapheme"
)

const bulletPrefix = "• "

// glyph is one grapheme cluster of document text and the point before it.
type glyph struct {
	text  string
	width int
	at    document.Point
	marks document.Marks
	link  bool
}

// line is a visual line of a block: a paragraph, a list item, or the part
// of either between soft breaks. start and end bound the points it owns.
type line struct {
	bullet bool
	indent int
	glyphs []glyph
	start  document.Point
	end    document.Point
}

// row is a wrapped segment [from, to) of a line's glyphs.
type row struct {
	line     int
	from, to int
	first    bool
	last     bool
}

type layout struct {
	lines []line
	rows  []row
}

type layoutBuilder struct {
	tabWidth int
	lines    []line
	cur      line
	started  bool
	col      int
}

func buildLayout(nodes []document.Node, width, tabWidth int) layout {
	b := &layoutBuilder{tabWidth: tabWidth}
	for i, n := range nodes {
		el, ok := n.(*document.Element)
		if !ok {
			continue
		}
		p := document.Path{i}
		if el.Type == document.BulletList {
			for j, item := range el.Children {
				b.block(p.Append(j), item, true)
			}
			continue
		}
		b.block(p, el, false)
	}

	lay := layout{lines: b.lines}
	for i, ln := range lay.lines {
		segs := wrapGlyphs(ln.glyphs, width-prefixWidth(ln))
		for k, seg := range segs {
			lay.rows = append(lay.rows, row{line: i, from: seg[0], to: seg[1], first: k == 0, last: k == len(segs)-1})
		}
	}
	return lay
}

func prefixWidth(ln line) int {
	if ln.bullet || ln.indent > 0 {
		return stringCellWidth(bulletPrefix, 0)
	}
	return 0
}

func (b *layoutBuilder) block(p document.Path, n document.Node, bullet bool) {
	el, ok := n.(*document.Element)
	if !ok {
		return
	}
	b.cur = line{bullet: bullet}
	b.started = false
	b.col = 0
	for rel, t := range document.Texts(el.Children) {
		b.leaf(p.Append(rel...), t, len(rel) > 1)
	}
	if !b.started {
		b.cur.start = document.Point{Path: p}
		b.cur.end = b.cur.start
	}
	b.lines = append(b.lines, b.cur)
}

func (b *layoutBuilder) leaf(p document.Path, t *document.Text, link bool) {
	if !b.started {
		b.cur.start = document.Point{Path: p.Clone()}
		b.started = true
	}
	off := 0
	for _, g := range graphemeutil.Split(t.Text) {
		at := document.Point{Path: p.Clone(), Offset: off}
		off += utf8.RuneCountInString(g)
		if g == "\n" {
			b.cur.end = at
			b.lines = append(b.lines, b.cur)
			indent := 0
			if b.cur.bullet || b.cur.indent > 0 {
				indent = 1
			}
			b.cur = line{indent: indent, start: document.Point{Path: p.Clone(), Offset: off}}
			b.col = 0
			continue
		}
		w := graphemeCellWidth(g, b.col, b.tabWidth)
		b.col += w
		b.cur.glyphs = append(b.cur.glyphs, glyph{text: g, width: w, at: at, marks: t.Marks, link: link})
	}
	b.cur.end = document.Point{Path: p.Clone(), Offset: off}
}

// wrapGlyphs splits glyphs into rows no wider than width, breaking after the
// last space that fits when there is one. Width <= 0 disables wrapping.
func wrapGlyphs(gs []glyph, width int) [][2]int {
	if width <= 0 || len(gs) == 0 {
		return [][2]int{{0, len(gs)}}
	}
	var out [][2]int
	start, w, lastSpace := 0, 0, -1
	for i, g := range gs {
		if w+g.width > width && i > start {
			brk := i
			if lastSpace >= start {
				brk = lastSpace + 1
			}
			out = append(out, [2]int{start, brk})
			start, w, lastSpace = brk, 0, -1
			for j := start; j < i; j++ {
				w += gs[j].width
				if gs[j].text == " " {
					lastSpace = j
				}
			}
		}
		w += g.width
		if g.text == " " {
			lastSpace = i
		}
	}
	return append(out, [2]int{start, len(gs)})
}

// locate returns the line holding pt and the number of glyphs before it.
func (l layout) locate(pt document.Point) (lineIdx, col int, ok bool) {
	for i, ln := range l.lines {
		if document.ComparePoints(pt, ln.start) < 0 || document.ComparePoints(pt, ln.end) > 0 {
			continue
		}
		col := 0
		for _, g := range ln.glyphs {
			if document.ComparePoints(g.at, pt) >= 0 {
				break
			}
			col++
		}
		return i, col, true
	}
	return 0, 0, false
}

// rowOf returns the visual row showing glyph col of line lineIdx.
func (l layout) rowOf(lineIdx, col int) int {
	for i, r := range l.rows {
		if r.line != lineIdx {
			continue
		}
		if col < r.to || (col == r.to && r.last) {
			return i
		}
	}
	return 0
}

// pointAt maps a glyph column of a line back to a document point.
func (l layout) pointAt(lineIdx, col int) document.Point {
	ln := l.lines[lineIdx]
	if col < len(ln.glyphs) {
		return ln.glyphs[col].at
	}
	return ln.end
}

// cellOf returns the cell column of glyph col within row r.
func (l layout) cellOf(r row, col int) int {
	ln := l.lines[r.line]
	x := 0
	for i := r.from; i < col && i < r.to; i++ {
		x += ln.glyphs[i].width
	}
	return x
}

// colAtCell returns the glyph column in row r nearest to cell x.
func (l layout) colAtCell(r row, x int) int {
	ln := l.lines[r.line]
	cell := 0
	for i := r.from; i < r.to; i++ {
		w := ln.glyphs[i].width
		if cell+w > x {
			return i
		}
		cell += w
	}
	if !r.last && r.to > r.from {
		return r.to - 1
	}
	return r.to
}
