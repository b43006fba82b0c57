// Package common contains shared constants and sentinel errors used across
// the client and server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Authentication preconditions.
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrAlreadyAuthenticated = errors.New("already authenticated")

	// Credential verification. Deliberately covers both "no such account"
	// and "wrong password" so callers cannot probe for registered emails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Registration with an email that is already on file.
	ErrDuplicateAccount = errors.New("account already exists")

	// Identity resolved but lacks rights over the resource instance.
	ErrForbidden = errors.New("forbidden")

	// Unexpected storage or runtime faults. Logged server-side, never
	// detailed to the caller.
	ErrInternal = errors.New("internal error")
)
