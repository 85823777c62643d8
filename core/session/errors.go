package session

import "errors"

var (
	// ErrInvalidTransition is returned when a lifecycle method is called from
	// a phase it is not valid in.
	ErrInvalidTransition = errors.New("invalid session transition")
	// ErrMissingCredential is returned when a transition that establishes an
	// authenticated session is given an empty access credential.
	ErrMissingCredential = errors.New("access credential is required")
)
