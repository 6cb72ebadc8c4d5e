package tui

// Clipboard provides clipboard integration for copy, cut and paste.
//
// Errors must not crash the UI; failures are ignored.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// HTMLClipboard is a Clipboard that can also offer its content as HTML.
// Pasting prefers the HTML so marks and links survive.
type HTMLClipboard interface {
	Clipboard
	ReadHTML() (string, error)
}
