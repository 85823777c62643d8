// Package authflow connects the auth REST endpoints to the session state
// machine: login, registration, logout, startup bootstrap, and the
// single-flight credential refresh the retry interceptor depends on.
//
// The refresh is the concurrency-sensitive part. When several requests fail
// with an expired credential at the same time, each calls Flow.Refresh, but
// only one renewal call reaches the network; the rest wait for and share its
// outcome. A rejected renewal (the server answered no) terminates the
// session and clears stored credentials; a renewal that got no response
// leaves session and store untouched.
package authflow
