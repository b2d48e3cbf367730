// Package apperrors defines the sentinel errors services wrap their failures
// with. Handlers map them to HTTP statuses with errors.Is.
package apperrors

import "errors"

var (
	// ErrNotFound means a referenced entity does not exist (or the caller
	// is not allowed to know that it does).
	ErrNotFound = errors.New("not found")

	// ErrConflict means a unique key is already taken.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized covers missing/invalid credentials and wrong-owner access.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the authenticated identity lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput covers malformed or out-of-range caller input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDomain covers business rule violations: insufficient stock, banning
	// an admin, illegal order status transitions.
	ErrDomain = errors.New("domain rule violation")
)
