package service

import "errors"

var (
	// ErrDuplicateUsername and ErrDuplicateEmail are raised before the
	// insert is attempted so handlers can show a field-level message
	// instead of a raw constraint violation.
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")

	// ErrInvalidCredentials deliberately covers both unknown email and
	// wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers malformed, tampered and expired reset
	// tokens alike; callers must not distinguish them.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrForbidden is returned when a post mutation is attempted by a
	// user who is not its author.
	ErrForbidden = errors.New("forbidden")

	// ErrBadImage is returned when an uploaded profile picture cannot be
	// decoded.
	ErrBadImage = errors.New("unsupported or corrupt image")
)
