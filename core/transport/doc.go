// Package transport is the authenticated HTTP client every domain API module
// goes through. No domain code attaches credentials itself; bypassing this
// chokepoint would break the coordination below.
//
// # Expiry recovery
//
// When a response reports an expired access credential, the client recovers
// per expiry episode, not per request:
//
//   - all requests failing within one episode share a single credential
//     renewal (the Refresher contract; see authflow's single-flight refresh)
//   - each request is replayed at most once, after the renewal has resolved
//     and through the normal credential read path, never by patching headers
//   - if the renewal fails, every waiting request resolves as failed
//     immediately, with no further network traffic
//
// The replay-once bound makes a credential that keeps being rejected
// surface as ErrAuthFailed instead of looping through refreshes forever.
package transport
