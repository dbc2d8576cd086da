// Package errors holds the sentinel errors shared by the session, auth and order
// domains. Use cases wrap them with context; the gateway maps them to HTTP status
// codes and the CLI prints the wrapped message.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the storefront API has no such resource.
	ErrNotFound = errors.New("not found")

	// ErrConflict means the resource changed underneath the caller, such as an order
	// status that already moved on.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput means a value was rejected before or by the remote API.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized means no usable credentials are available.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the credentials are valid but lack permission.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable means the remote API could not be reached or answered with a 5xx.
	ErrUnavailable = errors.New("unavailable")
)

// New returns an error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message, keeping it matchable with Is. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
