// Package apperr defines the sentinel error kinds shared by every service layer.
//
// These allow the transport layer (REST/GraphQL) to map internal logic to
// status codes (e.g. ErrForbidden -> 403) without string matching.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means the caller could not be resolved to a known identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the resolved identity lacks permission for the action.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means a referenced order/profile/tag/document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput covers malformed amounts, colors, emails, mismatched
	// tag/profile pairs, disallowed MIME types and oversized files.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState means the requested transition is not permitted from the
	// order's current status.
	ErrInvalidState = errors.New("invalid state")

	// ErrAlreadyExists covers uniqueness violations such as duplicate tag names.
	ErrAlreadyExists = errors.New("already exists")

	// ErrLimitExceeded covers the allowed-email cap and external usage caps.
	ErrLimitExceeded = errors.New("limit exceeded")

	// ErrHasDependencies blocks deletion while dependent records exist.
	ErrHasDependencies = errors.New("has dependencies")
)

// Wrap annotates a sentinel kind with detail while keeping errors.Is working.
func Wrap(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{kind}, args...)...)
}

// HTTPStatus maps an error to the HTTP status code the REST layer should emit.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return 401
	case errors.Is(err, ErrForbidden):
		return 403
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrInvalidInput):
		return 400
	case errors.Is(err, ErrInvalidState):
		return 409
	case errors.Is(err, ErrAlreadyExists):
		return 409
	case errors.Is(err, ErrLimitExceeded):
		return 429
	case errors.Is(err, ErrHasDependencies):
		return 409
	default:
		return 500
	}
}
