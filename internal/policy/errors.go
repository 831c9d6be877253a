package policy

import "errors"

var (
	// ErrUnauthenticated is returned when no principal acts on the request.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound is returned for absent and soft-deleted resources alike.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden is returned when the principal lacks the right for the action.
	ErrForbidden = errors.New("forbidden")

	// ErrPersistenceFailed is returned when the store reports that nothing was written.
	ErrPersistenceFailed = errors.New("persistence failed")
)
