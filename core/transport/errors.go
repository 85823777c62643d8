package transport

import "errors"

var (
	// ErrMissingBaseURL is returned when the client is configured without an
	// API base URL.
	ErrMissingBaseURL = errors.New("api base url is required")
	// ErrAuthFailed is the final authentication failure: the request was
	// rejected with an expired or invalid credential and the one allowed
	// replay (or the refresh enabling it) did not help.
	ErrAuthFailed = errors.New("authentication failed")
)
