package credstore

import "context"

// Pair is the credential pair issued by the authentication endpoints.
// Both values are opaque bearer strings; the client never inspects them.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Empty reports whether the pair carries no credentials at all.
func (p Pair) Empty() bool {
	return p.Access == "" && p.Refresh == ""
}

// Store defines durable persistence for the credential pair.
// Implementations must handle concurrent access safely. Clear must be
// idempotent: clearing an already-empty store is not an error.
type Store interface {
	// Save persists the pair, replacing whatever was stored before.
	Save(ctx context.Context, pair Pair) error
	// Load returns the stored pair, or ErrNotFound when nothing is stored.
	Load(ctx context.Context) (Pair, error)
	// Clear removes any stored credentials.
	Clear(ctx context.Context) error
}
