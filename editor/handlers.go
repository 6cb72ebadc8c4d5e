package editor

import (
	"strings"

	"github.com/iw2rmb/richtext/document"
)

// Unit is the granularity of a directional delete or move.
type Unit uint8

const (
	// UnitCharacter steps over one grapheme cluster.
	UnitCharacter Unit = iota
	// UnitWord steps over a run of letters and digits plus the separators
	// before it.
	UnitWord
	// UnitLine steps to the previous or next soft break, or the block edge.
	UnitLine
	// UnitOffset steps over exactly one rune.
	UnitOffset
)

func (u Unit) String() string {
	switch u {
	case UnitCharacter:
		return "character"
	case UnitWord:
		return "word"
	case UnitLine:
		return "line"
	case UnitOffset:
		return "offset"
	default:
		return "unit(?)"
	}
}

// DataTransfer is pasted or dropped content keyed by MIME type.
type DataTransfer interface {
	GetData(mime string) string
}

// PlainText is a DataTransfer carrying only text/plain.
type PlainText string

func (t PlainText) GetData(mime string) string {
	if mime == "text/plain" {
		return string(t)
	}
	return ""
}

// MIMEData is a DataTransfer holding several representations of the same
// content.
type MIMEData map[string]string

func (d MIMEData) GetData(mime string) string { return d[mime] }

// Entry is a node together with its path. The root entry has an empty path
// and a nil Node.
type Entry struct {
	Node document.Node
	Path document.Path
}

// IsRoot reports whether the entry addresses the root.
func (en Entry) IsRoot() bool { return len(en.Path) == 0 }

// Element returns the entry's node as an element.
func (en Entry) Element() (*document.Element, bool) {
	el, ok := en.Node.(*document.Element)
	return el, ok
}

// Handlers is the set of named operations a plugin can intercept.
type Handlers struct {
	InsertText      func(text string) error
	InsertBreak     func() error
	InsertSoftBreak func() error
	DeleteBackward  func(unit Unit) error
	InsertData      func(data DataTransfer) error
	IsInline        func(el *document.Element) bool
	NormalizeNode   func(entry Entry) error
}

// Plugin wraps next and returns the handlers to install on top of it. A
// field left nil falls through to next.
type Plugin func(e *Editor, next Handlers) Handlers

func compose(e *Editor, core Handlers, plugins []Plugin) Handlers {
	h := core
	for _, p := range plugins {
		if p == nil {
			continue
		}
		next := h
		h = p(e, next)
		h.fill(next)
	}
	return h
}

func (h *Handlers) fill(from Handlers) {
	if h.InsertText == nil {
		h.InsertText = from.InsertText
	}
	if h.InsertBreak == nil {
		h.InsertBreak = from.InsertBreak
	}
	if h.InsertSoftBreak == nil {
		h.InsertSoftBreak = from.InsertSoftBreak
	}
	if h.DeleteBackward == nil {
		h.DeleteBackward = from.DeleteBackward
	}
	if h.InsertData == nil {
		h.InsertData = from.InsertData
	}
	if h.IsInline == nil {
		h.IsInline = from.IsInline
	}
	if h.NormalizeNode == nil {
		h.NormalizeNode = from.NormalizeNode
	}
}

// InsertText runs text through the handler chain at the selection.
func (e *Editor) InsertText(text string) error {
	return e.do(func() error { return e.h.InsertText(text) })
}

// InsertBreak splits the current block.
func (e *Editor) InsertBreak() error {
	return e.do(func() error { return e.h.InsertBreak() })
}

// InsertSoftBreak inserts a line break inside the current block.
func (e *Editor) InsertSoftBreak() error {
	return e.do(func() error { return e.h.InsertSoftBreak() })
}

// DeleteBackward deletes one unit before the caret, or the selected range.
func (e *Editor) DeleteBackward(unit Unit) error {
	return e.do(func() error { return e.h.DeleteBackward(unit) })
}

// InsertData pastes data at the selection.
func (e *Editor) InsertData(data DataTransfer) error {
	return e.do(func() error { return e.h.InsertData(data) })
}

// IsInline reports whether el flows inside a block.
func (e *Editor) IsInline(el *document.Element) bool { return e.h.IsInline(el) }

func (e *Editor) coreHandlers() Handlers {
	return Handlers{
		InsertText:      e.coreInsertText,
		InsertBreak:     e.coreInsertBreak,
		InsertSoftBreak: e.coreInsertSoftBreak,
		DeleteBackward:  e.coreDeleteBackward,
		InsertData:      e.coreInsertData,
		IsInline:        func(*document.Element) bool { return false },
		NormalizeNode:   e.coreNormalizeNode,
	}
}

func (e *Editor) coreInsertText(text string) error {
	if e.selection == nil || text == "" {
		return nil
	}
	return e.WithoutNormalizing(func() error {
		at, err := e.collapseForInsert()
		if err != nil {
			return err
		}
		marks := e.marks
		if marks == nil {
			return e.insertTextAt(at, text)
		}
		p, err := e.insertNodesAt(at, document.NewText(text, marks.Active()...))
		if err != nil {
			return err
		}
		end, err := e.End(p)
		if err != nil {
			return err
		}
		r := document.Collapsed(end)
		if err := e.setSelection(&r); err != nil {
			return err
		}
		e.marks = nil
		return nil
	})
}

// collapseForInsert deletes an expanded selection and returns the caret.
func (e *Editor) collapseForInsert() (document.Point, error) {
	sel := *e.selection
	if sel.IsCollapsed() {
		return sel.Anchor, nil
	}
	pt, err := e.deleteRange(sel)
	if err != nil {
		return document.Point{}, err
	}
	c := document.Collapsed(pt)
	if err := e.setSelection(&c); err != nil {
		return document.Point{}, err
	}
	return pt, nil
}

func (e *Editor) coreInsertBreak() error {
	if e.selection == nil {
		return nil
	}
	return e.WithoutNormalizing(func() error {
		at, err := e.collapseForInsert()
		if err != nil {
			return err
		}
		return e.splitBlock(at, true)
	})
}

func (e *Editor) coreInsertSoftBreak() error {
	return e.h.InsertText("\n")
}

func (e *Editor) coreDeleteBackward(unit Unit) error {
	if e.selection == nil {
		return nil
	}
	sel := *e.selection
	if !sel.IsCollapsed() {
		return e.WithoutNormalizing(func() error {
			pt, err := e.deleteRange(sel)
			if err != nil {
				return err
			}
			c := document.Collapsed(pt)
			return e.setSelection(&c)
		})
	}
	return e.deleteUnit(sel.Anchor, unit, true)
}

func (e *Editor) coreInsertData(data DataTransfer) error {
	text := data.GetData("text/plain")
	if text == "" || e.selection == nil {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			if err := e.SplitNodes(e.caret(), true); err != nil {
				return err
			}
		}
		if err := e.h.InsertText(line); err != nil {
			return err
		}
	}
	return nil
}

// caret returns the selection anchor, or the zero point without a selection.
func (e *Editor) caret() document.Point {
	if e.selection == nil {
		return document.Point{}
	}
	return e.selection.Anchor
}
