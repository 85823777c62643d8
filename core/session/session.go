package session

import "slices"

// Phase is the lifecycle state of the session.
type Phase int

const (
	// PhaseAnonymous means no user is logged in and no credentials are held.
	PhaseAnonymous Phase = iota
	// PhaseAuthenticating means a login or registration call is in flight.
	PhaseAuthenticating
	// PhaseAuthenticated means the session holds a validated identity and a
	// usable access credential.
	PhaseAuthenticated
	// PhaseRefreshing means a credential renewal is in flight. The session
	// still holds credentials but their validity is not yet known. A freshly
	// hydrated session starts here until its stored credentials are validated.
	PhaseRefreshing
	// PhaseError means the session could not be established or validated for
	// a reason that does not invalidate the stored credentials, such as the
	// server being unreachable during startup validation.
	PhaseError
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseAnonymous:
		return "anonymous"
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseRefreshing:
		return "refreshing"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Transient reports whether the phase is an in-between state during which
// consumers should wait rather than treat the user as logged out.
func (p Phase) Transient() bool {
	return p == PhaseAuthenticating || p == PhaseRefreshing
}

// Identity describes the logged-in account as reported by the server.
type Identity struct {
	ID            string
	DisplayName   string
	Email         string
	AccountType   string
	AccountStatus string
	Roles         []string
}

// HasRole reports whether the identity carries the given role.
func (i Identity) HasRole(role string) bool {
	return slices.Contains(i.Roles, role)
}

func (i Identity) clone() *Identity {
	c := i
	c.Roles = slices.Clone(i.Roles)
	return &c
}

// Session is an immutable snapshot of the session state. Identity is non-nil
// exactly when Phase is PhaseAuthenticated.
type Session struct {
	Phase             Phase
	Identity          *Identity
	AccessCredential  string
	RefreshCredential string
	LastError         string
}

// IsAuthenticated reports whether the snapshot represents a logged-in user.
func (s Session) IsAuthenticated() bool {
	return s.Phase == PhaseAuthenticated && s.Identity != nil
}
