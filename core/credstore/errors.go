package credstore

import "errors"

var (
	// ErrNotFound is returned by Load when no credentials are stored.
	ErrNotFound = errors.New("credentials not found")
	// ErrSaveFailed is returned when persisting credentials fails.
	ErrSaveFailed = errors.New("failed to save credentials")
	// ErrLoadFailed is returned when reading stored credentials fails for
	// reasons other than absence.
	ErrLoadFailed = errors.New("failed to load credentials")
	// ErrClearFailed is returned when removing stored credentials fails.
	ErrClearFailed = errors.New("failed to clear credentials")
)
