package composer

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/iw2rmb/richtext/body"
	"github.com/iw2rmb/richtext/document"
	"github.com/iw2rmb/richtext/editor"
	"github.com/iw2rmb/richtext/extension"
)

// View is the host surface a composer is rendered into.
type View interface {
	Focus() error
	Blur() error
	IsFocused() bool
}

// Options configures a Composer.
type Options struct {
	// InitialValue is loaded and normalized; nil starts with one empty
	// paragraph.
	InitialValue *body.Body

	Disabled          bool
	KeepFocusOnSubmit bool

	DisableBulletList        bool
	DisableMarkdownShortcuts bool
	DisableRichPaste         bool

	Shortcuts    Shortcuts
	HistoryLimit int

	// OnSubmit receives the document. A non-nil Pending defers clearing
	// until it settles.
	OnSubmit func(body.Body) Pending
	// OnChange is called after every command that changed the tree or the
	// selection.
	OnChange func(ChangeEvent)

	// View is optional; without it focus is tracked in State only.
	View View

	// Schedule runs fn on the composer's goroutine, later. Without it,
	// same-goroutine work runs immediately and work from other goroutines,
	// such as a settled Pending, waits until the next command or Flush.
	Schedule func(fn func())

	Logger      *slog.Logger
	Development bool
}

// Composer drives an editor configured with the composer extensions.
type Composer struct {
	opt     Options
	base    Options
	log     *slog.Logger
	ed      *editor.Editor
	keys    keymap
	session uuid.UUID

	state    State
	asserted bool

	warnMissingHandler sync.Once

	inboxMu sync.Mutex
	inbox   []func()
}

// New returns a composer. Invalid shortcuts fall back to their defaults and
// are logged.
func New(opt Options) *Composer {
	c := &Composer{
		opt:     opt,
		base:    opt,
		log:     opt.Logger,
		session: newSession(),
	}
	if c.log == nil {
		c.log = Logger()
	}

	var errs []error
	c.keys, errs = opt.Shortcuts.compile()
	for _, err := range errs {
		c.log.Warn("composer: shortcut ignored", "err", err)
	}

	nodes := []document.Node{document.NewParagraph()}
	if opt.InitialValue != nil {
		nodes = body.ToTree(*opt.InitialValue)
	}
	c.ed = c.newEditor(nodes)

	c.state.Disabled = opt.Disabled
	c.derive()
	return c
}

func newSession() uuid.UUID { return uuid.New() }

// later defers fn when the host schedules work, else runs it now.
func (c *Composer) later(fn func()) {
	if c.opt.Schedule == nil {
		fn()
		return
	}
	c.opt.Schedule(fn)
}

// poster returns how work from other goroutines reaches the composer: the
// host's Schedule, or the inbox drained by the next command.
func (c *Composer) poster() func(func()) {
	if c.opt.Schedule != nil {
		return c.opt.Schedule
	}
	return c.enqueue
}

func (c *Composer) enqueue(fn func()) {
	c.inboxMu.Lock()
	c.inbox = append(c.inbox, fn)
	c.inboxMu.Unlock()
}

// Flush runs work posted from other goroutines when Options.Schedule is
// unset. Every command flushes first, so hosts only need it while idle.
func (c *Composer) Flush() {
	for {
		c.inboxMu.Lock()
		fns := c.inbox
		c.inbox = nil
		c.inboxMu.Unlock()
		if len(fns) == 0 {
			return
		}
		for _, fn := range fns {
			fn()
		}
	}
}

// newEditor builds a normalized editor over nodes with the modules c.opt
// enables.
func (c *Composer) newEditor(nodes []document.Node) *editor.Editor {
	ed := editor.New(nodes, editor.Options{
		HistoryLimit: c.opt.HistoryLimit,
		Plugins: extension.Plugins(extension.Options{
			BulletList:        !c.opt.DisableBulletList,
			MarkdownShortcuts: !c.opt.DisableMarkdownShortcuts,
			RichPaste:         !c.opt.DisableRichPaste,
		}),
	})
	c.report("normalize initial value", ed.NormalizeAll())
	ed.ClearHistory()
	ed.SetOnChange(c.handleChange)
	return ed
}

// Editor exposes the underlying editor for hosts that need lower-level
// movement or queries.
func (c *Composer) Editor() *editor.Editor { return c.ed }

// SessionID identifies the message being composed; it changes after each
// completed submit.
func (c *Composer) SessionID() string { return c.session.String() }

// Body serializes the current document.
func (c *Composer) Body() body.Body { return body.FromTree(c.ed.Children()) }

// IsEmpty reports whether the document holds only whitespace.
func (c *Composer) IsEmpty() bool { return document.IsEmpty(c.ed.Children()) }

// SetDisabled toggles editing.
func (c *Composer) SetDisabled(v bool) {
	c.Flush()
	c.state.Disabled = v
	c.assert()
}

func (c *Composer) isFocused() bool {
	if c.opt.View != nil {
		focused := c.state.Focused
		c.ignoreOnDetach("composer: read focus", func() error {
			focused = c.opt.View.IsFocused()
			return nil
		})
		return focused
	}
	return c.state.Focused
}

// Focus focuses the view. Unless it already had focus the caret moves to
// the end of the document when resetSelection is set or nothing is
// selected.
func (c *Composer) Focus(resetSelection bool) {
	c.Flush()
	c.ignoreOnDetach("composer: focus failed, the host view may be detached", func() error {
		if c.isFocused() {
			return nil
		}
		sel, ok := c.ed.Selection()
		if resetSelection || !ok {
			if err := c.selectEnd(); err != nil {
				return err
			}
		} else if err := c.ed.Select(sel); err != nil {
			return err
		}
		if c.opt.View != nil {
			return c.opt.View.Focus()
		}
		return nil
	})
	c.state.Focused = true
	c.assert()
}

// Blur releases focus and drops the active selection range.
func (c *Composer) Blur() {
	c.Flush()
	c.ignoreOnDetach("composer: blur failed, the host view may be detached", func() error {
		if c.opt.View != nil {
			return c.opt.View.Blur()
		}
		return nil
	})
	c.state.Focused = false
	c.state.SelectionRangeActive = false
	c.state.ActiveSelectionRange = document.Range{}
}

// Select puts the caret at the end of the document.
func (c *Composer) Select() {
	c.Flush()
	c.ignoreOnDetach("composer: select failed, the host view may be detached", c.selectEnd)
}

func (c *Composer) selectEnd() error {
	end, err := c.ed.End(nil)
	if err != nil {
		return err
	}
	return c.ed.Select(document.Collapsed(end))
}

// Clear empties the document and forgets cursor and pending marks.
func (c *Composer) Clear() {
	c.Flush()
	c.ignoreOnDetach("composer: clear failed, the host view may be detached", func() error {
		if err := c.ed.Reset(document.NewParagraph()); err != nil {
			return err
		}
		c.ed.ClearPendingMarks()
		return c.ed.ClearMarks()
	})
	c.state.CanSubmit = false
	c.state.SelectionRangeActive = false
	c.state.ActiveSelectionRange = document.Range{}
	c.state.SelectedMarks = c.ed.SelectedMarks()
}

// ToggleMark flips m at the selection, or queues it on an empty document.
func (c *Composer) ToggleMark(m document.Mark) {
	c.Flush()
	if c.state.Disabled {
		return
	}
	c.report("toggle mark", c.ed.ToggleMark(m))
	c.state.SelectedMarks = c.ed.SelectedMarks()
}

// DiscardActiveSelectionRange resets the selection-range state. The
// selection itself is left alone.
func (c *Composer) DiscardActiveSelectionRange() {
	c.Flush()
	c.state.SelectionRangeActive = false
	c.state.ActiveSelectionRange = document.Range{}
}

// Type inserts text as if typed.
func (c *Composer) Type(text string) {
	c.Flush()
	if !c.state.Disabled {
		c.report("insert text", c.ed.InsertText(text))
	}
}

// Paste inserts plain text from the clipboard.
func (c *Composer) Paste(text string) {
	c.Flush()
	if !c.state.Disabled {
		c.report("insert data", c.ed.InsertData(editor.PlainText(text)))
	}
}

// PasteData inserts clipboard content offered in several formats; HTML
// keeps its marks and links unless rich paste is disabled.
func (c *Composer) PasteData(data editor.DataTransfer) {
	c.Flush()
	if !c.state.Disabled {
		c.report("insert data", c.ed.InsertData(data))
	}
}

// Backspace deletes one character before the caret, or the selection.
func (c *Composer) Backspace() {
	c.Flush()
	if !c.state.Disabled {
		c.report("delete backward", c.ed.DeleteBackward(editor.UnitCharacter))
	}
}

// DeleteForward deletes one character after the caret, or the selection.
func (c *Composer) DeleteForward() {
	c.Flush()
	if !c.state.Disabled {
		c.report("delete forward", c.ed.DeleteForward(editor.UnitCharacter))
	}
}

// InsertHardBreak splits the current block.
func (c *Composer) InsertHardBreak() {
	c.Flush()
	if !c.state.Disabled {
		c.report("insert break", c.ed.InsertBreak())
	}
}

// InsertSoftBreak inserts a line break inside the current block.
func (c *Composer) InsertSoftBreak() {
	c.Flush()
	if !c.state.Disabled {
		c.report("insert soft break", c.ed.InsertSoftBreak())
	}
}

// Undo reverts the last edit.
func (c *Composer) Undo() bool {
	c.Flush()
	return !c.state.Disabled && c.ed.Undo()
}

// Redo reapplies the last undone edit.
func (c *Composer) Redo() bool {
	c.Flush()
	return !c.state.Disabled && c.ed.Redo()
}
