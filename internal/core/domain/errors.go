package domain

import "errors"

var (
	// ErrValidation: the client sent a missing or malformed field.
	ErrValidation = errors.New("invalid input")

	// ErrEmailTaken: insert violated the unique email index.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password so the
	// login endpoint cannot be used as an account-enumeration oracle.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is internal to the store boundary; the auth flow maps it
	// to ErrInvalidCredentials before it can reach a client.
	ErrUserNotFound = errors.New("user not found")

	// ErrUnauthenticated: missing, malformed, tampered or expired token.
	// Deliberately undifferentiated on the wire.
	ErrUnauthenticated = errors.New("invalid or expired token")

	// ErrForbidden: authenticated but the role is not allowed.
	ErrForbidden = errors.New("insufficient permissions")
)
