package system

import "errors"

// Sentinel errors for the failure conditions callers need to distinguish.
// Everything else is wrapped with enough context to diagnose from the
// package manager's log.
var (
	// ErrUserExists is returned when account creation collides with an
	// existing account of the same name.
	ErrUserExists = errors.New("user already exists")

	// ErrUnknownUser is returned when an ownership change references an
	// account or group that does not resolve on this host.
	ErrUnknownUser = errors.New("user or group does not exist")

	// ErrNotADirectory is returned when a directory target exists but is
	// a regular file or other non-directory entry.
	ErrNotADirectory = errors.New("path exists but is not a directory")
)
