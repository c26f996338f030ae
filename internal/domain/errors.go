package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across repositories and the dialog controller.
var (
	// ErrNotFound covers both genuinely missing records and records the
	// requesting user is not allowed to touch: every store query is scoped
	// by user ids, so foreign rows are indistinguishable from absent ones.
	ErrNotFound = errors.New("record not found")

	// ErrRemoteUnavailable marks a failed call to Supabase, TMDB or
	// Telegram. Flow state is left untouched so the user can retry.
	ErrRemoteUnavailable = errors.New("remote service unavailable")
)

// ValidationError represents bad or missing command input. The controller
// renders it as a usage message, never as a failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
