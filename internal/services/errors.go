package services

import "errors"

// Sentinel errors surfaced to handlers, which map them onto HTTP statuses.
var (
	// ErrMissingCredentials is returned when a required field is empty.
	ErrMissingCredentials = errors.New("username and password are required")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The two cases must stay indistinguishable to the caller
	// so usernames cannot be enumerated through the login endpoint.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
