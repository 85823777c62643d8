package authflow

import "errors"

var (
	// ErrRefreshRejected means the server answered the refresh call and
	// declined it. Terminal: the session has been forced to anonymous and
	// stored credentials are gone.
	ErrRefreshRejected = errors.New("credential refresh rejected")
	// ErrRefreshUnavailable means the refresh call got no response. The
	// session and its stored credentials are left as they were.
	ErrRefreshUnavailable = errors.New("credential refresh got no response")
	// ErrNoRefreshCredential means a refresh was needed but the session holds
	// no refresh credential to attempt it with.
	ErrNoRefreshCredential = errors.New("no refresh credential held")
)
