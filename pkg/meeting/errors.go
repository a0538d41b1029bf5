package meeting

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy. Callers discriminate with
// errors.Is; everything else wraps these.
var (
	// ErrNotImplemented marks a required join step an adapter failed
	// to provide. It indicates incomplete adapter coverage and is
	// always fatal.
	ErrNotImplemented = errors.New("step not implemented")

	// ErrElementNotFound means a selector set never matched within its
	// timeout. Recoverable at most call sites; fatal at join, leave,
	// and toggle boundaries where the control is the whole point.
	ErrElementNotFound = errors.New("element not found")

	// ErrJoinDeadlineExceeded means the join deadline passed during an
	// indeterminate wait. Fatal to the join attempt.
	ErrJoinDeadlineExceeded = errors.New("join deadline exceeded")

	// ErrUnsupportedPlatform means no adapter is registered for the
	// requested platform identifier.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

func notImplemented(step string) error {
	return fmt.Errorf("%w: %s", ErrNotImplemented, step)
}

// failureReason buckets an error for metrics labels.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrJoinDeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrElementNotFound):
		return "element_not_found"
	case errors.Is(err, ErrNotImplemented):
		return "not_implemented"
	default:
		return "error"
	}
}
