package service

import "errors"

var (
	// ErrMalformedInput marks a single client entry that could not be
	// parsed (coordinate, date or time). Rejects the entry, never a batch.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnknownUser marks a referenced user that is not registered
	ErrUnknownUser = errors.New("unknown user")

	// ErrInvalidCredentials marks a failed login
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRunInProgress marks an attempt to start a second concurrent
	// batch run
	ErrRunInProgress = errors.New("analysis run already in progress")
)
