// Package errors provides the sentinel errors shared by every domain package.
// Use cases wrap these sentinels with context and HTTP handlers map them to
// status codes through httputil.HandleErrorGin.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors that express business intent rather than infrastructure details.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness conflict with existing data.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the request is missing data or is malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing or rejected credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates an authenticated subject acting on someone else's resource.
	ErrForbidden = errors.New("forbidden")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap adds context to err while keeping it matchable with Is.
// Returns nil when err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
