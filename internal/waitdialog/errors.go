package waitdialog

import (
	"context"
	"errors"
	"fmt"
)

// ErrCancelled is returned by Reporter.Report once cancellation was requested.
// Work functions should return it (or any error wrapping context.Canceled) when
// they notice the cancellation themselves.
var ErrCancelled = fmt.Errorf("operation cancelled: %w", context.Canceled)

// ErrAlreadyShown is returned when ShowModal is called on a dialog that has
// already been shown.
var ErrAlreadyShown = errors.New("dialog already shown")

// PanicError is stored as the dialog error when the work function panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("work panicked: %v", e.Value)
}

// IsCancelled reports whether err stems from a cancellation request.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// ContextErr maps the state of ctx to the error work should end with: nil
// while ctx is live, ErrCancelled after a cancellation, and the wrapped
// context error otherwise (a deadline is a failure, not a cancellation).
func ContextErr(ctx context.Context) error {
	err := ctx.Err()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return ErrCancelled
	default:
		return fmt.Errorf("operation aborted: %w", err)
	}
}
