// Package apperr defines the failure kinds every component normalizes to.
// Handlers map each kind to exactly one HTTP status; anything unrecognized is
// treated as an internal error and its detail is never sent to the client.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated covers missing, malformed, expired, or otherwise
	// unverifiable credentials.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnavailable covers an unreachable or unconfigured auth dependency.
	ErrUnavailable = errors.New("service unavailable")

	// ErrNotFound covers both absent resources and resources owned by someone
	// else. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrValidation covers malformed input that fails domain checks.
	ErrValidation = errors.New("validation failed")
)

func Unauthenticated(msg string) error {
	return fmt.Errorf("%w: %s", ErrUnauthenticated, msg)
}

func Unavailable(msg string) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, msg)
}

func NotFound(resource string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, resource)
}

func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
