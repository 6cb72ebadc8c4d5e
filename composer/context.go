package composer

import "context"

type ctxKey struct{}

// NewContext returns a copy of ctx carrying c.
func NewContext(ctx context.Context, c *Composer) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the composer attached to ctx.
func FromContext(ctx context.Context) (*Composer, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Composer)
	return c, ok && c != nil
}

// MustFromContext is FromContext for components that cannot work without a
// composer. It panics with ErrMissingProvider.
func MustFromContext(ctx context.Context) *Composer {
	c, ok := FromContext(ctx)
	if !ok {
		panic(ErrMissingProvider)
	}
	return c
}
