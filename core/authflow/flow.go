package authflow

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/campusdesk/schedkit/core/apierror"
	"github.com/campusdesk/schedkit/core/authapi"
	"github.com/campusdesk/schedkit/core/logger"
	"github.com/campusdesk/schedkit/core/session"
)

// refreshKey is the singleflight key for credential renewal. There is only
// ever one renewal concern per flow, so the key is constant: all concurrent
// callers join the same in-flight attempt.
const refreshKey = "refresh"

// API is the slice of the auth endpoints the flow drives.
type API interface {
	Login(ctx context.Context, req authapi.LoginRequest) (*authapi.AuthResponse, error)
	Register(ctx context.Context, req authapi.RegisterRequest) (*authapi.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*authapi.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) (*authapi.LogoutResponse, error)
}

// Flow drives the session state machine through the outcomes of the auth
// endpoints. It is the only component that calls the session's transition
// methods on behalf of user actions and credential renewal.
type Flow struct {
	sessions *session.Manager
	api      API
	group    singleflight.Group
	log      *slog.Logger
}

// Option configures the flow.
type Option func(*Flow)

// WithLogger sets the logger for lifecycle events.
func WithLogger(log *slog.Logger) Option {
	return func(f *Flow) {
		if log != nil {
			f.log = log
		}
	}
}

// New creates a flow over the given session manager and auth API.
func New(sessions *session.Manager, api API, opts ...Option) *Flow {
	f := &Flow{
		sessions: sessions,
		api:      api,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.With(logger.Component("authflow"))
	return f
}

// Login authenticates with an email/password pair. On failure the session
// returns to anonymous with the server's message available in the snapshot's
// LastError; the error is also returned for form-level display.
func (f *Flow) Login(ctx context.Context, email, password string) error {
	if err := f.sessions.BeginLogin(); err != nil {
		return err
	}

	resp, err := f.api.Login(ctx, authapi.LoginRequest{Email: email, Password: password})
	if err != nil {
		_ = f.sessions.FailLogin(err)
		return err
	}
	return f.sessions.CompleteLogin(ctx, resp.Pair(), resp.Identity())
}

// Register creates an account. A successful registration behaves like a
// successful login: the session becomes authenticated with the issued pair.
func (f *Flow) Register(ctx context.Context, req authapi.RegisterRequest) error {
	if err := f.sessions.BeginLogin(); err != nil {
		return err
	}

	resp, err := f.api.Register(ctx, req)
	if err != nil {
		_ = f.sessions.FailLogin(err)
		return err
	}
	return f.sessions.CompleteLogin(ctx, resp.Pair(), resp.Identity())
}

// Logout revokes the refresh credential server-side on a best-effort basis
// and always forces the local session to anonymous. Losing local credential
// state never depends on server reachability.
func (f *Flow) Logout(ctx context.Context) {
	if rt := f.sessions.RefreshCredential(); rt != "" {
		resp, err := f.api.Logout(ctx, rt)
		switch {
		case err != nil:
			f.log.Warn("remote logout failed, clearing local session anyway", logger.Error(err))
		case !resp.Success:
			f.log.Warn("remote logout declined", slog.String("message", resp.Message))
		}
	}
	f.sessions.Logout(ctx)
}

// Refresh renews the access credential. Concurrent callers share a single
// in-flight renewal and its outcome; a new renewal starts only after the
// previous one has resolved.
func (f *Flow) Refresh(ctx context.Context) error {
	// The renewal outlives any individual caller: a waiter's cancelled
	// context must not poison the shared attempt.
	_, err, _ := f.group.Do(refreshKey, func() (any, error) {
		return nil, f.renew(context.WithoutCancel(ctx))
	})
	return err
}

// Bootstrap hydrates the session from the credential store and, when
// credentials were restored, validates them with one refresh call. The
// resulting session phase reflects the outcome; the returned error carries
// the cause for logging.
func (f *Flow) Bootstrap(ctx context.Context) error {
	restored, err := f.sessions.Hydrate(ctx)
	if err != nil {
		return err
	}
	if !restored {
		return nil
	}
	return f.Refresh(ctx)
}

func (f *Flow) renew(ctx context.Context) error {
	episode := uuid.NewString()

	if err := f.sessions.BeginRefresh(); err != nil {
		// The session left the refreshable phases before the renewal started
		// (typically a logout racing the first 401). Nothing to renew.
		return errors.Join(ErrRefreshRejected, err)
	}

	rt := f.sessions.RefreshCredential()
	if rt == "" {
		_ = f.sessions.FailRefresh(ctx, ErrNoRefreshCredential)
		return errors.Join(ErrRefreshRejected, ErrNoRefreshCredential)
	}

	f.log.Debug("credential refresh started", logger.Episode(episode))

	resp, err := f.api.Refresh(ctx, rt)
	if err != nil {
		var apiErr *apierror.APIError
		if errors.As(err, &apiErr) {
			_ = f.sessions.FailRefresh(ctx, err)
			f.log.Info("credential refresh rejected, session terminated",
				logger.Episode(episode), logger.Status(apiErr.Status))
			return errors.Join(ErrRefreshRejected, err)
		}

		_ = f.sessions.AbortRefresh(err)
		f.log.Warn("credential refresh got no response",
			logger.Episode(episode), logger.Error(err))
		return errors.Join(ErrRefreshUnavailable, err)
	}

	if err := f.sessions.CompleteRefresh(ctx, resp.Pair(), resp.Identity()); err != nil {
		return err
	}
	f.log.Debug("credential refresh completed", logger.Episode(episode))
	return nil
}
