package composer

// Pending settles a submit that completes later: it delivers one error, or
// nil, or is closed.
type Pending <-chan error

// Async runs fn on a new goroutine and returns its settle handle.
func Async(fn func() error) Pending {
	ch := make(chan error, 1)
	go func() {
		ch <- fn()
		close(ch)
	}()
	return ch
}

// Submit hands the document to OnSubmit, then clears it and, unless
// KeepFocusOnSubmit is set, blurs. It does nothing on an empty or disabled
// composer. When OnSubmit returns Pending the after step waits until it
// settles without error; editing stays possible meanwhile.
func (c *Composer) Submit() bool {
	c.Flush()
	if c.state.Disabled || c.IsEmpty() {
		return false
	}
	b := c.Body()

	if c.opt.OnSubmit == nil {
		c.warnMissingHandler.Do(func() {
			c.log.Warn(ErrMissingHandler.Error())
		})
		c.afterSubmit()
		return true
	}

	p := c.opt.OnSubmit(b)
	if p == nil {
		c.afterSubmit()
		return true
	}

	c.state.Submitting = true
	post := c.poster()
	go func() {
		err := <-p
		post(func() {
			c.state.Submitting = false
			if err != nil {
				c.log.Debug("composer: submit failed, keeping content", "err", err, "session", c.session.String())
				return
			}
			c.afterSubmit()
		})
	}()
	return true
}

func (c *Composer) afterSubmit() {
	c.Clear()
	if !c.opt.KeepFocusOnSubmit {
		c.Blur()
	}
	c.session = newSession()
}
