package composer

import "github.com/iw2rmb/richtext/document"

// HandleKeyboardKeys runs the command bound to ev. It returns true when the
// host should suppress its own handling of the key.
func (c *Composer) HandleKeyboardKeys(ev KeyEvent) bool {
	c.Flush()
	if ev.Key == "Escape" {
		if c.state.SelectionRangeActive {
			c.DiscardActiveSelectionRange()
			c.ignoreOnDetach("composer: discard selection range failed, the host view may be detached", func() error {
				if err := c.ed.Deselect(); err != nil {
					return err
				}
				return c.selectEnd()
			})
			return true
		}
		c.Blur()
		return false
	}

	switch {
	case c.keys[bindSubmit].Matches(ev):
		c.Submit()
	case c.keys[bindHardBreak].Matches(ev):
		c.InsertHardBreak()
	case c.keys[bindSoftBreak].Matches(ev):
		c.InsertSoftBreak()
	case c.keys[bindBold].Matches(ev):
		c.ToggleMark(document.Bold)
	case c.keys[bindItalic].Matches(ev):
		c.ToggleMark(document.Italic)
	case c.keys[bindStrikethrough].Matches(ev):
		c.ToggleMark(document.Strikethrough)
	case c.keys[bindCode].Matches(ev):
		c.ToggleMark(document.Code)
	case ev.Key == "ArrowLeft":
		c.report("leave mark", c.ed.LeaveMarkFromEdgeCharacter(document.EdgeStart))
		return false
	case ev.Key == "ArrowRight":
		c.report("leave mark", c.ed.LeaveMarkFromEdgeCharacter(document.EdgeEnd))
		return false
	default:
		return false
	}
	return true
}
