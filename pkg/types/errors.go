package types

import "errors"

// Data layer errors. Callers match them with errors.Is; the messages are
// suitable for showing to a user as-is.
var (
	ErrInvalidPhone = errors.New("phone number must contain exactly 10 digits")
	ErrInvalidName  = errors.New("name must not be empty")
	ErrNotFound     = errors.New("not found")
	ErrCorruptData  = errors.New("address book data is corrupt")
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrOutputUnknown  = errors.New("unknown output format")
)
