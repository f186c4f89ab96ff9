package service

import "errors"

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so login failures never leak account existence.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is the single failure every identity-resolution
	// path collapses into: missing token, bad signature, missing subject
	// claim, or a subject that no longer maps to a user.
	ErrUnauthenticated = errors.New("invalid authentication credentials")
)
