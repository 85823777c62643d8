package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/campusdesk/schedkit/core/credstore"
	"github.com/campusdesk/schedkit/core/logger"
)

// Manager owns the session state. All mutation goes through the transition
// methods below; consumers read snapshots via Current or Subscribe. The
// credential store is written as a side effect of transitions, so session
// phase and stored credentials cannot drift apart.
type Manager struct {
	mu       sync.RWMutex
	phase    Phase
	identity *Identity
	access   string
	refresh  string
	lastErr  string
	subs     []chan Session

	store credstore.Store
	log   *slog.Logger
}

// Option configures the manager.
type Option func(*Manager)

// WithLogger sets the logger used for transition and persistence events.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// NewManager creates a session manager starting in PhaseAnonymous.
func NewManager(store credstore.Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(logger.Component("session"))
	return m
}

// Current returns a snapshot of the session. Identity is only populated in
// PhaseAuthenticated, so the snapshot never shows a half-established state.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// AccessCredential returns the access credential to attach to outgoing
// requests, or the empty string when none is held.
func (m *Manager) AccessCredential() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access
}

// RefreshCredential returns the held refresh credential, if any.
func (m *Manager) RefreshCredential() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refresh
}

// Subscribe returns a channel receiving a snapshot after every transition.
// Slow receivers miss intermediate snapshots rather than blocking the
// session; the latest state can always be read with Current.
func (m *Manager) Subscribe() <-chan Session {
	ch := make(chan Session, 8)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, ch)
	return ch
}

// Hydrate restores credentials from the store at startup. With stored
// credentials present the session enters PhaseRefreshing: it is not treated
// as authenticated until a validation refresh has produced an identity.
// Returns true when credentials were restored. Valid from PhaseAnonymous and
// PhaseError.
func (m *Manager) Hydrate(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseAnonymous && m.phase != PhaseError {
		return false, fmt.Errorf("%w: hydrate from %s", ErrInvalidTransition, m.phase)
	}

	pair, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, credstore.ErrNotFound) {
			m.log.Warn("credential store read failed during hydration", logger.Error(err))
		}
		m.toLocked(PhaseAnonymous)
		return false, nil
	}

	m.access = pair.Access
	m.refresh = pair.Refresh
	m.toLocked(PhaseRefreshing)
	return true, nil
}

// BeginLogin marks a login or registration attempt as in flight.
// Valid from PhaseAnonymous and PhaseError.
func (m *Manager) BeginLogin() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseAnonymous && m.phase != PhaseError {
		return fmt.Errorf("%w: login from %s", ErrInvalidTransition, m.phase)
	}
	m.lastErr = ""
	m.toLocked(PhaseAuthenticating)
	return nil
}

// CompleteLogin records a successful login or registration: credentials are
// persisted and the identity becomes visible.
func (m *Manager) CompleteLogin(ctx context.Context, pair credstore.Pair, identity Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseAuthenticating {
		return fmt.Errorf("%w: complete login from %s", ErrInvalidTransition, m.phase)
	}
	if pair.Access == "" {
		return ErrMissingCredential
	}

	m.access = pair.Access
	m.refresh = pair.Refresh
	m.identity = identity.clone()
	m.lastErr = ""
	m.persistLocked(ctx)
	m.toLocked(PhaseAuthenticated)
	return nil
}

// FailLogin records a rejected login or registration attempt. No credentials
// are kept and the failure message is surfaced via the snapshot's LastError.
func (m *Manager) FailLogin(cause error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseAuthenticating {
		return fmt.Errorf("%w: fail login from %s", ErrInvalidTransition, m.phase)
	}

	m.access = ""
	m.refresh = ""
	m.identity = nil
	m.lastErr = errorMessage(cause)
	m.toLocked(PhaseAnonymous)
	return nil
}

// BeginRefresh marks a credential renewal as in flight. Calling it while a
// renewal is already in flight is a no-op, so the hydration path and the
// retry interceptor can share it.
func (m *Manager) BeginRefresh() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.phase {
	case PhaseRefreshing:
		return nil
	case PhaseAuthenticated:
		// The identity is kept internally so an aborted renewal can restore
		// it, but snapshots hide it outside PhaseAuthenticated.
		m.toLocked(PhaseRefreshing)
		return nil
	default:
		return fmt.Errorf("%w: refresh from %s", ErrInvalidTransition, m.phase)
	}
}

// CompleteRefresh records a successful renewal. The new pair is persisted
// before the transition becomes visible, so replayed requests pick up the new
// credential through the normal read path. An empty refresh value keeps the
// previous refresh credential (servers are not required to rotate it).
func (m *Manager) CompleteRefresh(ctx context.Context, pair credstore.Pair, identity Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseRefreshing {
		return fmt.Errorf("%w: complete refresh from %s", ErrInvalidTransition, m.phase)
	}
	if pair.Access == "" {
		return ErrMissingCredential
	}

	m.access = pair.Access
	if pair.Refresh != "" {
		m.refresh = pair.Refresh
	}
	m.identity = identity.clone()
	m.lastErr = ""
	m.persistLocked(ctx)
	m.toLocked(PhaseAuthenticated)
	return nil
}

// FailRefresh records a renewal the server rejected. This is terminal for the
// session: both credentials are dropped locally and in the store.
func (m *Manager) FailRefresh(ctx context.Context, cause error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseRefreshing {
		return fmt.Errorf("%w: fail refresh from %s", ErrInvalidTransition, m.phase)
	}

	m.access = ""
	m.refresh = ""
	m.identity = nil
	m.lastErr = errorMessage(cause)
	m.clearStoreLocked(ctx)
	m.toLocked(PhaseAnonymous)
	return nil
}

// AbortRefresh records a renewal that got no answer from the server. The
// stored credentials may still be valid, so nothing is cleared. A session
// that was authenticated before the renewal returns to PhaseAuthenticated;
// a hydrating session, which has no identity yet, lands in PhaseError.
func (m *Manager) AbortRefresh(cause error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseRefreshing {
		return fmt.Errorf("%w: abort refresh from %s", ErrInvalidTransition, m.phase)
	}

	m.lastErr = errorMessage(cause)
	if m.identity != nil {
		m.toLocked(PhaseAuthenticated)
		return nil
	}

	// Keep the store intact but drop the cached copy: an error-phase session
	// must not offer credentials to the transport.
	m.access = ""
	m.refresh = ""
	m.toLocked(PhaseError)
	return nil
}

// Logout forces the session to PhaseAnonymous and clears local and stored
// credentials. It is valid from any phase and idempotent: logging out an
// anonymous session still clears residual store entries.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.access = ""
	m.refresh = ""
	m.identity = nil
	m.lastErr = ""
	m.clearStoreLocked(ctx)
	m.toLocked(PhaseAnonymous)
}

// ClearError resets the last error message without changing the phase.
func (m *Manager) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastErr == "" {
		return
	}
	m.lastErr = ""
	m.notifyLocked()
}

func (m *Manager) snapshotLocked() Session {
	s := Session{
		Phase:             m.phase,
		AccessCredential:  m.access,
		RefreshCredential: m.refresh,
		LastError:         m.lastErr,
	}
	if m.phase == PhaseAuthenticated && m.identity != nil {
		s.Identity = m.identity.clone()
	}
	return s
}

func (m *Manager) toLocked(next Phase) {
	if m.phase != next {
		m.log.Debug("session transition",
			slog.String("from", m.phase.String()),
			slog.String("to", next.String()))
	}
	m.phase = next
	m.notifyLocked()
}

func (m *Manager) notifyLocked() {
	snap := m.snapshotLocked()
	for _, ch := range m.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// persistLocked writes the current pair to the store. Persistence failures
// must not fail the transition; they only cost durability across restarts.
func (m *Manager) persistLocked(ctx context.Context) {
	pair := credstore.Pair{Access: m.access, Refresh: m.refresh}
	if err := m.store.Save(ctx, pair); err != nil {
		m.log.Warn("failed to persist credentials", logger.Error(err))
	}
}

func (m *Manager) clearStoreLocked(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn("failed to clear stored credentials", logger.Error(err))
	}
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
