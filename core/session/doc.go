// Package session implements the client-side session state machine: who is
// logged in, which credentials are held, and which lifecycle phase the
// session is in.
//
// # Phases
//
// A session moves through five phases:
//
//	anonymous      -> authenticating  (login or registration submitted)
//	authenticating -> authenticated   (accepted) | anonymous (rejected)
//	authenticated  -> refreshing      (renewal needed)
//	refreshing     -> authenticated   (renewed) | anonymous (rejected)
//	any            -> anonymous       (logout)
//
// Hydration restores stored credentials optimistically but keeps the
// uncertainty explicit: the session sits in PhaseRefreshing until one
// validation refresh either produces an identity (authenticated) or is
// rejected (anonymous). A validation attempt that cannot reach the server at
// all lands in PhaseError with the stored credentials left intact.
//
// # Ownership
//
// Manager is the only writer of session state. UI or domain code never
// mutates the session directly; it calls the lifecycle flows, whose outcomes
// drive the transition methods here. Every transition that establishes or
// destroys credentials also updates the credential store, keeping the store
// and the in-memory state consistent.
//
// # Invariants
//
//   - a snapshot carries an Identity exactly when its Phase is
//     PhaseAuthenticated
//   - an access credential is held exactly in PhaseAuthenticated and
//     PhaseRefreshing
//   - PhaseAnonymous implies the credential store has been cleared
package session
