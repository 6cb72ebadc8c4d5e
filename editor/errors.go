package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrNormalizeLimit is returned when the normalization pass did not reach
	// a fixed point within its iteration ceiling.
	ErrNormalizeLimit = errors.New("editor: normalization did not converge")
	// ErrHandlerPanic wraps a panic recovered at a command entry point.
	ErrHandlerPanic = errors.New("editor: handler panicked")
	// ErrNotBlock is returned when a block-level transform is given an
	// inline location.
	ErrNotBlock = errors.New("editor: location is not inside a block")
)

func recovered(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", ErrHandlerPanic, err)
	}
	return fmt.Errorf("%w: %v", ErrHandlerPanic, r)
}
