package composer

import (
	"github.com/iw2rmb/richtext/body"
	"github.com/iw2rmb/richtext/document"
	"github.com/iw2rmb/richtext/editor"
)

// State is the UI state derived from the editor.
type State struct {
	Focused    bool
	Disabled   bool
	CanSubmit  bool
	Submitting bool

	SelectedMarks document.Marks

	// SelectionRangeActive is set while the focused selection is expanded;
	// hosts anchor floating toolbars to ActiveSelectionRange.
	SelectionRangeActive bool
	ActiveSelectionRange document.Range
}

// State returns the last derived state.
func (c *Composer) State() State {
	c.Flush()
	return c.state
}

// ChangeEvent describes one committed command.
type ChangeEvent struct {
	SessionID   string
	Version     uint64
	TreeChanged bool
	Operations  []document.Operation
	Body        body.Body
}

func (c *Composer) handleChange(ch editor.Change) {
	if c.opt.OnChange != nil {
		c.opt.OnChange(ChangeEvent{
			SessionID:   c.session.String(),
			Version:     ch.VersionAfter,
			TreeChanged: ch.TreeChanged(),
			Operations:  ch.Operations,
			Body:        c.Body(),
		})
	}
	c.assert()
}

// assert schedules re-derivation of State. Several changes before the
// scheduled run collapse into one.
func (c *Composer) assert() {
	if c.asserted {
		return
	}
	c.asserted = true
	c.later(func() {
		c.asserted = false
		c.derive()
	})
}

func (c *Composer) derive() {
	empty := c.IsEmpty()
	if empty {
		c.report("clear marks", c.ed.ClearMarks())
	}
	c.state.CanSubmit = !empty && !c.state.Disabled
	c.state.SelectedMarks = c.ed.SelectedMarks()

	sel, ok := c.ed.Selection()
	c.state.SelectionRangeActive = ok && c.state.Focused && !sel.IsCollapsed()
	c.state.ActiveSelectionRange = document.Range{}
	if c.state.SelectionRangeActive {
		c.state.ActiveSelectionRange = sel
	}
}
