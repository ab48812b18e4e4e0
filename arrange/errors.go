package arrange

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an identifier or key does not resolve to
	// anything in the current document, e.g. a stale reference to a pattern
	// that has already been deleted or moved.
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned when the request itself is not acceptable: a
	// value out of range, a name collision or a position outside a pattern.
	ErrInvalid = errors.New("invalid request")
)

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
