package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/richtext/document"
	graphemeutil "github.com/iw2rmb/richtext/internal/grapheme"
)

// runKey groups adjacent glyphs that render with the same style.
type runKey struct {
	marks    document.Marks
	link     bool
	selected bool
}

func (m *Model) renderContent() string {
	ed := m.c.Editor()
	m.lay = buildLayout(ed.Children(), m.viewport.Width, m.cfg.TabWidth)

	sel, selOK := ed.Selection()
	caretLine, caretCol, caretOK := 0, 0, false
	if selOK && m.view.focused {
		caretLine, caretCol, caretOK = m.lay.locate(sel.Focus)
	}

	if m.showPlaceholder() {
		return m.renderPlaceholder(caretOK)
	}

	var start, end document.Point
	expanded := selOK && !sel.IsCollapsed()
	if expanded {
		start, end = sel.Edges()
	}
	caretRow := -1
	if caretOK {
		caretRow = m.lay.rowOf(caretLine, caretCol)
	}

	out := make([]string, 0, len(m.lay.rows))
	for i, r := range m.lay.rows {
		ln := m.lay.lines[r.line]
		var sb strings.Builder
		m.renderPrefix(&sb, ln, r)
		cursor := -1
		if i == caretRow {
			cursor = caretCol
		}
		m.renderRow(&sb, ln, r, cursor, expanded, start, end)
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

func (m *Model) showPlaceholder() bool {
	if m.cfg.Placeholder == "" || len(m.lay.lines) != 1 {
		return false
	}
	ln := m.lay.lines[0]
	return !ln.bullet && len(ln.glyphs) == 0
}

func (m *Model) renderPlaceholder(cursor bool) string {
	st := m.cfg.Style
	if !cursor {
		return st.Placeholder.Render(m.cfg.Placeholder)
	}
	gs := graphemeutil.Split(m.cfg.Placeholder)
	out := st.Cursor.Inherit(st.Placeholder).Render(gs[0])
	if rest := strings.Join(gs[1:], ""); rest != "" {
		out += st.Placeholder.Render(rest)
	}
	return out
}

func (m *Model) renderPrefix(sb *strings.Builder, ln line, r row) {
	w := prefixWidth(ln)
	if w == 0 {
		return
	}
	if ln.bullet && r.first {
		sb.WriteString(m.cfg.Style.Bullet.Render(bulletPrefix))
		return
	}
	sb.WriteString(strings.Repeat(" ", w))
}

func (m *Model) renderRow(sb *strings.Builder, ln line, r row, cursor int, expanded bool, start, end document.Point) {
	var run strings.Builder
	var key runKey
	flush := func() {
		if run.Len() > 0 {
			sb.WriteString(m.runStyle(key).Render(run.String()))
			run.Reset()
		}
	}

	for i := r.from; i < r.to; i++ {
		g := ln.glyphs[i]
		k := runKey{
			marks:    g.marks,
			link:     g.link,
			selected: expanded && document.ComparePoints(g.at, start) >= 0 && document.ComparePoints(g.at, end) < 0,
		}
		text := g.text
		if text == "\t" {
			text = strings.Repeat(" ", g.width)
		}
		if i == cursor {
			flush()
			sb.WriteString(m.cfg.Style.Cursor.Inherit(m.runStyle(k)).Render(text))
			continue
		}
		if k != key {
			flush()
			key = k
		}
		run.WriteString(text)
	}
	flush()

	if cursor == r.to {
		sb.WriteString(m.cfg.Style.Cursor.Render(" "))
	}
}

// runStyle layers mark, link and selection styles over Text.
func (m *Model) runStyle(k runKey) lipgloss.Style {
	st := m.cfg.Style
	s := st.Text
	if k.marks.Bold {
		s = st.Bold.Inherit(s)
	}
	if k.marks.Italic {
		s = st.Italic.Inherit(s)
	}
	if k.marks.Strikethrough {
		s = st.Strikethrough.Inherit(s)
	}
	if k.marks.Code {
		s = st.Code.Inherit(s)
	}
	if k.link {
		s = st.Link.Inherit(s)
	}
	if k.selected {
		s = st.Selection.Inherit(s)
	}
	return s
}
