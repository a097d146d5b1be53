package errors

import "errors"

// Shared application errors. Services wrap these with %w to add context and
// handlers map them to HTTP statuses with errors.Is.
var (
	// ErrNotFound is returned when a record does not exist or does not
	// resolve under the caller's ownership scope. It deliberately does not
	// distinguish "absent" from "not yours".
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is returned for authentication failures (bad
	// credentials, missing or invalid session token).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when an authenticated user lacks the rights
	// for an action.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is returned for malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token is expired")

	// ErrConflict is returned for state conflicts: duplicate folder titles,
	// duplicate questions, an email already bound to another account.
	ErrConflict = errors.New("resource state conflict")
)
