package extension

import "github.com/iw2rmb/richtext/editor"

// Options toggles the optional modules.
type Options struct {
	BulletList        bool
	MarkdownShortcuts bool
	RichPaste         bool
}

// Module is a named plugin.
type Module struct {
	Name   string
	Plugin editor.Plugin
}

// Modules returns the enabled modules in composition order, innermost
// first: PrimeMarks, BulletList, MarkdownShortcuts, RichPaste, AutoLink,
// Normalizer. Typed text therefore reaches AutoLink first and PrimeMarks
// last; a pasted URL is linked before RichPaste sees the HTML.
func Modules(opt Options) []Module {
	ms := []Module{{Name: "prime-marks", Plugin: PrimeMarks}}
	if opt.BulletList {
		ms = append(ms, Module{Name: "bullet-list", Plugin: BulletList})
	}
	if opt.MarkdownShortcuts {
		ms = append(ms, Module{Name: "markdown-shortcuts", Plugin: MarkdownShortcuts})
	}
	if opt.RichPaste {
		ms = append(ms, Module{Name: "rich-paste", Plugin: RichPaste})
	}
	return append(ms,
		Module{Name: "auto-link", Plugin: AutoLink},
		Module{Name: "normalizer", Plugin: Normalizer},
	)
}

// Plugins returns the plugins of Modules(opt) in the same order.
func Plugins(opt Options) []editor.Plugin {
	ms := Modules(opt)
	ps := make([]editor.Plugin, len(ms))
	for i, m := range ms {
		ps[i] = m.Plugin
	}
	return ps
}
