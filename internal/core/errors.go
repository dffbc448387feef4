package core

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. Storage and services wrap these
// sentinels with %w; the HTTP edge maps them to status codes.
var (
	// ErrValidation marks input the caller must correct.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers both an absent record and one owned by a different
	// user; the two are indistinguishable to the caller so existence never
	// leaks across tenants.
	ErrNotFound = errors.New("not found")

	// ErrConflict rejects an operation invalid for the record's current state,
	// e.g. executing an already-executed scheduled transaction.
	ErrConflict = errors.New("conflict")

	// ErrTransient marks storage contention worth retrying with backoff.
	ErrTransient = errors.New("transient storage error")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// NotFoundf wraps ErrNotFound with a record description.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Conflictf wraps ErrConflict with a state description.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}
