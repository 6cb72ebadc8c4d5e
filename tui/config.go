package tui

import "github.com/iw2rmb/richtext/composer"

// Config configures the Model.
type Config struct {
	// Composer is forwarded to composer.New. View and Schedule are owned by
	// the Model and overwritten. Zero Shortcuts select TerminalShortcuts.
	Composer composer.Options

	// Placeholder is shown while the document has no text.
	Placeholder string

	Style     Style
	KeyMap    KeyMap
	Clipboard Clipboard

	// Toolbar shows the mark toolbar above an active selection range.
	Toolbar bool

	// TabWidth is the tab stop used when text contains tabs. Zero means 4.
	TabWidth int
}

// TerminalShortcuts returns composer shortcuts most terminals can deliver:
// ctrl+Enter and shift+Enter are indistinguishable from Enter there and
// ctrl+i arrives as Tab.
func TerminalShortcuts() composer.Shortcuts {
	return composer.Shortcuts{
		Submit:        "alt+Enter",
		HardBreak:     "Enter",
		SoftBreak:     "ctrl+j",
		Bold:          "ctrl+b",
		Italic:        "alt+i",
		Strikethrough: "ctrl+s",
		Code:          "ctrl+e",
	}
}
