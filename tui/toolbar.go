package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/richtext/document"
)

var toolbarItems = []struct {
	mark  document.Mark
	label string
}{
	{document.Bold, "B"},
	{document.Italic, "I"},
	{document.Strikethrough, "S"},
	{document.Code, "<>"},
}

func (m Model) renderToolbar() string {
	marks := m.c.State().SelectedMarks
	var sb strings.Builder
	for _, it := range toolbarItems {
		st := m.cfg.Style.Toolbar
		if marks.Get(it.mark) {
			st = m.cfg.Style.ToolbarActive
		}
		sb.WriteString(st.Render(" " + it.label + " "))
	}
	return sb.String()
}

// toolbarView composites the mark toolbar over base, on the row above the
// start of the active selection range, or below it on the first row.
func (m Model) toolbarView(base string) (string, bool) {
	state := m.c.State()
	if !m.cfg.Toolbar || !state.SelectionRangeActive {
		return base, false
	}
	li, col, ok := m.lay.locate(state.ActiveSelectionRange.Start())
	if !ok {
		return base, false
	}
	ri := m.lay.rowOf(li, col)
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	y := ri - m.viewport.YOffset
	if h <= 0 || y < 0 || y >= h {
		return base, false
	}
	switch {
	case y > 0:
		y--
	case h > 1:
		y++
	}

	bar := m.renderToolbar()
	r := m.lay.rows[ri]
	x := prefixWidth(m.lay.lines[r.line]) + m.lay.cellOf(r, col)
	x = clampInt(x, 0, max(m.viewport.Width-lipgloss.Width(bar), 0))

	leftFrame := m.viewport.Style.GetMarginLeft() + m.viewport.Style.GetBorderLeftSize() + m.viewport.Style.GetPaddingLeft()
	topFrame := m.viewport.Style.GetMarginTop() + m.viewport.Style.GetBorderTopSize() + m.viewport.Style.GetPaddingTop()

	return overlay.Composite(bar, base, overlay.Left, overlay.Top, leftFrame+x, topFrame+y), true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
