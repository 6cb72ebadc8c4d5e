package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/richtext/composer"
	"github.com/iw2rmb/richtext/document"
	"github.com/iw2rmb/richtext/editor"
)

func (m Model) updateKey(msg tea.KeyMsg) Model {
	if !m.view.focused {
		return m
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.c.Paste(string(msg.Runes))
		return m
	}

	if ev, ok := keyEvent(msg); ok && m.handleComposerKey(ev) {
		return m
	}
	if !m.view.focused {
		return m
	}

	km := m.cfg.KeyMap
	ed := m.c.Editor()
	switch {
	case key.Matches(msg, km.Left):
		m.step(true)
	case key.Matches(msg, km.Right):
		m.step(false)
	case key.Matches(msg, km.Up):
		m.moveVertical(-1)
	case key.Matches(msg, km.Down):
		m.moveVertical(1)

	case key.Matches(msg, km.ShiftLeft):
		m.extend(true)
	case key.Matches(msg, km.ShiftRight):
		m.extend(false)

	case key.Matches(msg, km.WordLeft):
		_ = ed.Move(1, editor.UnitWord, true)
	case key.Matches(msg, km.WordRight):
		_ = ed.Move(1, editor.UnitWord, false)

	case key.Matches(msg, km.Home):
		m.lineEdge(true)
	case key.Matches(msg, km.End):
		m.lineEdge(false)
	case key.Matches(msg, km.SelectAll):
		_ = ed.SelectAll()

	case key.Matches(msg, km.Backspace):
		m.c.Backspace()
	case key.Matches(msg, km.Delete):
		m.c.DeleteForward()

	case key.Matches(msg, km.Undo):
		_ = m.c.Undo()
	case key.Matches(msg, km.Redo):
		_ = m.c.Redo()

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		if m.copySelection() {
			m.c.Backspace()
		}
	case key.Matches(msg, km.Paste):
		m.pasteClipboard()

	default:
		if msg.Type == tea.KeySpace {
			m.c.Type(" ")
			return m
		}
		// Runes read together still arrive one keystroke at a time, so
		// single-character triggers fire.
		if msg.Type == tea.KeyRunes && !msg.Alt {
			for _, r := range msg.Runes {
				m.c.Type(string(r))
			}
		}
	}
	return m
}

// handleComposerKey offers ev to the composer's shortcuts. Terminals have no
// command key, so an unhandled ctrl chord is retried as meta to let mod+x
// bindings work on darwin.
func (m Model) handleComposerKey(ev composer.KeyEvent) bool {
	if m.c.HandleKeyboardKeys(ev) {
		return true
	}
	if !ev.Ctrl || len(ev.Key) != 1 {
		return false
	}
	ev.Ctrl, ev.Meta = false, true
	return m.c.HandleKeyboardKeys(ev)
}

// keyEvent translates msg into the key names composer shortcuts use.
// Plain runes are text, not key events.
func keyEvent(msg tea.KeyMsg) (composer.KeyEvent, bool) {
	ev := composer.KeyEvent{Alt: msg.Alt}
	switch msg.Type {
	case tea.KeyEnter:
		ev.Key = "Enter"
	case tea.KeyEsc:
		ev.Key = "Escape"
	case tea.KeyTab:
		ev.Key = "Tab"
	case tea.KeyBackspace:
		ev.Key = "Backspace"
	case tea.KeyDelete:
		ev.Key = "Delete"
	case tea.KeyHome:
		ev.Key = "Home"
	case tea.KeyEnd:
		ev.Key = "End"
	case tea.KeyUp:
		ev.Key = "ArrowUp"
	case tea.KeyDown:
		ev.Key = "ArrowDown"
	case tea.KeyLeft:
		ev.Key = "ArrowLeft"
	case tea.KeyRight:
		ev.Key = "ArrowRight"
	case tea.KeyShiftLeft:
		ev.Key, ev.Shift = "ArrowLeft", true
	case tea.KeyShiftRight:
		ev.Key, ev.Shift = "ArrowRight", true
	case tea.KeyCtrlLeft:
		ev.Key, ev.Ctrl = "ArrowLeft", true
	case tea.KeyCtrlRight:
		ev.Key, ev.Ctrl = "ArrowRight", true
	case tea.KeyRunes:
		if !msg.Alt || len(msg.Runes) != 1 {
			return ev, false
		}
		ev.Key = string(msg.Runes)
	default:
		if msg.Type < tea.KeyCtrlA || msg.Type > tea.KeyCtrlZ {
			return ev, false
		}
		ev.Key = string(rune('a' + int(msg.Type-tea.KeyCtrlA)))
		ev.Ctrl = true
	}
	return ev, true
}

// step moves the caret one character, or collapses an expanded selection
// onto the edge in that direction.
func (m Model) step(reverse bool) {
	ed := m.c.Editor()
	sel, ok := ed.Selection()
	if !ok {
		return
	}
	if !sel.IsCollapsed() {
		edge := document.EdgeEnd
		if reverse {
			edge = document.EdgeStart
		}
		_ = ed.Collapse(edge)
		return
	}
	_ = ed.Move(1, editor.UnitCharacter, reverse)
}

// extend moves only the focus point one character.
func (m Model) extend(reverse bool) {
	ed := m.c.Editor()
	sel, ok := ed.Selection()
	if !ok {
		return
	}
	var next document.Point
	if reverse {
		next, ok = ed.Before(sel.Focus, editor.UnitCharacter)
	} else {
		next, ok = ed.After(sel.Focus, editor.UnitCharacter)
	}
	if !ok {
		return
	}
	_ = ed.Select(document.Range{Anchor: sel.Anchor, Focus: next})
}

// moveVertical moves the caret dy visual rows, keeping its cell column.
func (m Model) moveVertical(dy int) {
	ed := m.c.Editor()
	sel, ok := ed.Selection()
	if !ok {
		return
	}
	li, col, ok := m.lay.locate(sel.Focus)
	if !ok {
		return
	}
	from := m.lay.rowOf(li, col)
	to := from + dy
	if to < 0 || to >= len(m.lay.rows) {
		return
	}
	x := m.lay.cellOf(m.lay.rows[from], col)
	target := m.lay.rows[to]
	pt := m.lay.pointAt(target.line, m.lay.colAtCell(target, x))
	_ = ed.Select(document.Collapsed(pt))
}

// lineEdge moves the caret to the start or end of its visual line.
func (m Model) lineEdge(start bool) {
	ed := m.c.Editor()
	sel, ok := ed.Selection()
	if !ok {
		return
	}
	li, _, ok := m.lay.locate(sel.Focus)
	if !ok {
		return
	}
	ln := m.lay.lines[li]
	pt := ln.end
	if start {
		pt = ln.start
	}
	_ = ed.Select(document.Collapsed(pt))
}

// selectedText returns the selected text with one line per visual line.
func (m Model) selectedText() string {
	sel, ok := m.c.Editor().Selection()
	if !ok || sel.IsCollapsed() {
		return ""
	}
	start, end := sel.Edges()
	var parts []string
	for _, ln := range m.lay.lines {
		c := document.ComparePoints(ln.end, start)
		if c < 0 || c == 0 && len(ln.glyphs) > 0 || document.ComparePoints(ln.start, end) >= 0 {
			continue
		}
		var sb strings.Builder
		for _, g := range ln.glyphs {
			if document.ComparePoints(g.at, start) >= 0 && document.ComparePoints(g.at, end) < 0 {
				sb.WriteString(g.text)
			}
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, "\n")
}

func (m Model) copySelection() bool {
	if m.cfg.Clipboard == nil {
		return false
	}
	s := m.selectedText()
	if s == "" {
		return false
	}
	return m.cfg.Clipboard.WriteText(s) == nil
}

func (m Model) pasteClipboard() {
	if m.cfg.Clipboard == nil {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		return
	}
	data := editor.MIMEData{"text/plain": s}
	if hc, ok := m.cfg.Clipboard.(HTMLClipboard); ok {
		if h, err := hc.ReadHTML(); err == nil && h != "" {
			data["text/html"] = h
		}
	}
	if s == "" && data["text/html"] == "" {
		return
	}
	m.c.PasteData(data)
}
