package extension

import (
	"regexp"
	"unicode/utf8"

	"github.com/iw2rmb/richtext/document"
	"github.com/iw2rmb/richtext/editor"
)

type shortcut struct {
	trigger string
	pattern *regexp.Regexp
	mark    document.Mark
}

var shortcuts = []shortcut{
	{trigger: "*", pattern: regexp.MustCompile(`\*([^\s].*?[^\s])\*$`), mark: document.Bold},
	{trigger: "_", pattern: regexp.MustCompile(`_([^\s].*?[^\s])_$`), mark: document.Italic},
	{trigger: "~", pattern: regexp.MustCompile(`~([^\s].*?[^\s])~$`), mark: document.Strikethrough},
	{trigger: "`", pattern: regexp.MustCompile("`([^\\s].*?[^\\s])`$"), mark: document.Code},
}

// MarkdownShortcuts formats inline markdown as it is typed: closing `*x*`,
// `_x_`, `~x~` or a backtick pair replaces the span with its marked inner
// text. The cursor leaves the mark behind.
func MarkdownShortcuts(e *editor.Editor, next editor.Handlers) editor.Handlers {
	return editor.Handlers{
		InsertText: func(text string) error {
			if err := next.InsertText(text); err != nil {
				return err
			}
			for _, s := range shortcuts {
				if s.trigger == text {
					return applyShortcut(e, s)
				}
			}
			return nil
		},
	}
}

func applyShortcut(e *editor.Editor, s shortcut) error {
	sel, ok := e.Selection()
	if !ok || !sel.IsCollapsed() {
		return nil
	}
	caret := sel.Anchor
	blk, ok := e.Block(caret.Path)
	if !ok {
		return nil
	}
	start, err := e.Start(blk.Path)
	if err != nil {
		return err
	}
	m := s.pattern.FindStringSubmatch(e.String(document.Range{Anchor: start, Focus: caret}))
	if m == nil || m[1] == "" {
		return nil
	}

	from := caret
	for range utf8.RuneCountInString(m[0]) {
		if from, ok = e.Before(from, editor.UnitOffset); !ok {
			return nil
		}
	}
	content := m[1]

	return e.WithoutNormalizing(func() error {
		if err := e.Delete(document.Range{Anchor: from, Focus: caret}); err != nil {
			return err
		}
		sel, ok := e.Selection()
		if !ok {
			return nil
		}
		at := sel.Anchor
		if err := e.InsertTextAt(at, content); err != nil {
			return err
		}
		end := document.Point{Path: at.Path.Clone(), Offset: at.Offset + utf8.RuneCountInString(content)}
		if err := e.Select(document.Range{Anchor: at, Focus: end}); err != nil {
			return err
		}
		if err := e.AddMark(s.mark); err != nil {
			return err
		}
		if err := e.Collapse(document.EdgeEnd); err != nil {
			return err
		}
		return e.RemoveMark(s.mark)
	})
}
