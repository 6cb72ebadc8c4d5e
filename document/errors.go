package document

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLocation indicates that a path or point does not resolve in
	// the tree it was used against.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrNodeKind indicates that an operation was applied to a node of the
	// wrong kind (for example inserting text into an element).
	ErrNodeKind = errors.New("unexpected node kind")
)

// LocationError describes a stale or out-of-bounds path.
type LocationError struct {
	Op   string
	Path Path
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("%s: %v at %s", e.Op, ErrInvalidLocation, e.Path)
}

func (e *LocationError) Unwrap() error { return ErrInvalidLocation }

func locationErr(op string, p Path) error {
	return &LocationError{Op: op, Path: p.Clone()}
}
