package services

import "errors"

// Error kinds surfaced to the HTTP layer. Controllers map these to status
// codes; everything else is treated as an internal error.
var (
	// ErrForbidden means an authorization check failed: the caller is not a
	// participant of the thread, or their role lacks the required capability.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidArgument means a required field is missing or malformed, or an
	// escalation target is not an administrative role.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound means the referenced thread, message or user does not exist.
	ErrNotFound = errors.New("not found")
)
