// Package credstore provides durable key/value persistence for the access and
// refresh credential pair, so an authenticated session survives process
// restarts.
//
// The package offers three backends behind a common Store interface:
//
//   - Memory: in-process only, used by tests and as a degradation target
//   - File: a JSON document on an afero filesystem (the default for desktop
//     and CLI consumers)
//   - Redis: a shared hash for headless deployments with several processes
//
// Absence of stored credentials means logged out; Load reports it with
// ErrNotFound rather than an empty pair. Clear is idempotent everywhere.
//
// Wrap any durable backend with WithFallback to guarantee that storage
// failures (missing permissions, full disk, unreachable Redis) degrade to an
// in-memory-only session instead of surfacing to the session lifecycle:
//
//	store := credstore.WithFallback(credstore.NewFile(path), logger)
package credstore
