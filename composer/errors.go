package composer

import (
	"errors"
	"fmt"
)

var (
	// ErrDetachedHost reports a host view operation that failed because the
	// view is gone. Commands swallow it.
	ErrDetachedHost = errors.New("composer: host view detached")

	// ErrMissingHandler is logged once when Submit runs without OnSubmit.
	ErrMissingHandler = errors.New("composer: no submit handler, set Options.OnSubmit")

	// ErrMissingProvider is the panic value of MustFromContext when the
	// context carries no composer.
	ErrMissingProvider = errors.New("composer: no composer in context, attach one with NewContext")

	ErrInvalidHotkey = errors.New("composer: invalid hotkey")
	ErrConfigFormat  = errors.New("composer: unsupported config format")
)

// ignoreOnDetach runs a host view operation. Errors and panics are
// swallowed; in development mode they are logged with msg.
func (c *Composer) ignoreOnDetach(msg string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			c.devLog(msg, fmt.Errorf("%w: %v", ErrDetachedHost, r))
		}
	}()
	if err := fn(); err != nil {
		c.devLog(msg, err)
	}
}

func (c *Composer) devLog(msg string, err error) {
	if c.opt.Development {
		c.log.Debug(msg, "err", err)
	}
}

// report logs an editing error. Editing errors are developer signals and
// never reach the end user.
func (c *Composer) report(op string, err error) {
	if err != nil && c.opt.Development {
		c.log.Error("composer: "+op, "err", err, "session", c.session.String())
	}
}
