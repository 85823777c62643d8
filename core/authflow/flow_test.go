package authflow_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdesk/schedkit/core/apierror"
	"github.com/campusdesk/schedkit/core/authapi"
	"github.com/campusdesk/schedkit/core/authflow"
	"github.com/campusdesk/schedkit/core/credstore"
	"github.com/campusdesk/schedkit/core/session"
)

// fakeAPI implements authflow.API with pluggable functions and atomic call
// counters, so concurrency tests can assert exact call counts.
type fakeAPI struct {
	loginFn    func(ctx context.Context, req authapi.LoginRequest) (*authapi.AuthResponse, error)
	registerFn func(ctx context.Context, req authapi.RegisterRequest) (*authapi.AuthResponse, error)
	refreshFn  func(ctx context.Context, refreshToken string) (*authapi.AuthResponse, error)
	logoutFn   func(ctx context.Context, refreshToken string) (*authapi.LogoutResponse, error)

	refreshCalls atomic.Int64
	logoutCalls  atomic.Int64
}

func (f *fakeAPI) Login(ctx context.Context, req authapi.LoginRequest) (*authapi.AuthResponse, error) {
	return f.loginFn(ctx, req)
}

func (f *fakeAPI) Register(ctx context.Context, req authapi.RegisterRequest) (*authapi.AuthResponse, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeAPI) Refresh(ctx context.Context, refreshToken string) (*authapi.AuthResponse, error) {
	f.refreshCalls.Add(1)
	return f.refreshFn(ctx, refreshToken)
}

func (f *fakeAPI) Logout(ctx context.Context, refreshToken string) (*authapi.LogoutResponse, error) {
	f.logoutCalls.Add(1)
	return f.logoutFn(ctx, refreshToken)
}

func authResponse(access string) *authapi.AuthResponse {
	return &authapi.AuthResponse{
		AccessToken:   access,
		RefreshToken:  "rt-1",
		ID:            "u-1",
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "a@b.com",
		AccountType:   "ADMIN",
		AccountStatus: "ACTIVE",
		Roles:         []string{"ADMIN"},
	}
}

func unauthorized() *apierror.APIError {
	return &apierror.APIError{Status: http.StatusUnauthorized, Message: "invalid credentials"}
}

func newFlow(t *testing.T, api authflow.API) (*authflow.Flow, *session.Manager, *credstore.Memory) {
	t.Helper()
	store := credstore.NewMemory()
	sessions := session.NewManager(store)
	return authflow.New(sessions, api), sessions, store
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid credentials authenticate the session", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			loginFn: func(_ context.Context, req authapi.LoginRequest) (*authapi.AuthResponse, error) {
				require.Equal(t, "a@b.com", req.Email)
				require.Equal(t, "x", req.Password)
				return authResponse("at-1"), nil
			},
		}
		flow, sessions, store := newFlow(t, api)
		phases := sessions.Subscribe()

		require.NoError(t, flow.Login(ctx, "a@b.com", "x"))

		snap := sessions.Current()
		assert.Equal(t, session.PhaseAuthenticated, snap.Phase)
		assert.Equal(t, "Ada Lovelace", snap.Identity.DisplayName)

		pair, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, credstore.Pair{Access: "at-1", Refresh: "rt-1"}, pair)

		// anonymous -> authenticating -> authenticated
		assert.Equal(t, session.PhaseAuthenticating, (<-phases).Phase)
		assert.Equal(t, session.PhaseAuthenticated, (<-phases).Phase)
	})

	t.Run("rejected credentials return to anonymous with message", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			loginFn: func(context.Context, authapi.LoginRequest) (*authapi.AuthResponse, error) {
				return nil, unauthorized()
			},
		}
		flow, sessions, store := newFlow(t, api)

		err := flow.Login(ctx, "a@b.com", "wrong")
		require.Error(t, err)
		assert.True(t, apierror.IsUnauthorized(err))

		snap := sessions.Current()
		assert.Equal(t, session.PhaseAnonymous, snap.Phase)
		assert.Contains(t, snap.LastError, "invalid credentials")

		_, loadErr := store.Load(ctx)
		assert.ErrorIs(t, loadErr, credstore.ErrNotFound)
	})
}

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	api := &fakeAPI{
		registerFn: func(_ context.Context, req authapi.RegisterRequest) (*authapi.AuthResponse, error) {
			if req.Email == "taken@b.com" {
				return nil, &apierror.APIError{
					Status:  http.StatusBadRequest,
					Message: "validation failed",
					Fields:  map[string]string{"email": "already registered"},
				}
			}
			return authResponse("at-1"), nil
		},
	}
	flow, sessions, _ := newFlow(t, api)

	require.NoError(t, flow.Register(ctx, authapi.RegisterRequest{Email: "a@b.com", AccountType: "STUDENT"}))
	assert.Equal(t, session.PhaseAuthenticated, sessions.Current().Phase)

	// A duplicate registration from a fresh flow surfaces field errors.
	flow2, sessions2, _ := newFlow(t, api)
	err := flow2.Register(ctx, authapi.RegisterRequest{Email: "taken@b.com"})
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "already registered", apiErr.Fields["email"])
	assert.Equal(t, session.PhaseAnonymous, sessions2.Current().Phase)
}

func loginFlow(t *testing.T, api *fakeAPI) (*authflow.Flow, *session.Manager, *credstore.Memory) {
	t.Helper()
	api.loginFn = func(context.Context, authapi.LoginRequest) (*authapi.AuthResponse, error) {
		return authResponse("at-1"), nil
	}
	flow, sessions, store := newFlow(t, api)
	require.NoError(t, flow.Login(context.Background(), "a@b.com", "x"))
	return flow, sessions, store
}

func TestLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("revokes remotely and clears locally", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			logoutFn: func(_ context.Context, rt string) (*authapi.LogoutResponse, error) {
				require.Equal(t, "rt-1", rt)
				return &authapi.LogoutResponse{Success: true}, nil
			},
		}
		flow, sessions, store := loginFlow(t, api)

		flow.Logout(ctx)
		assert.Equal(t, session.PhaseAnonymous, sessions.Current().Phase)
		assert.EqualValues(t, 1, api.logoutCalls.Load())
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})

	t.Run("unreachable server still clears local state", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			logoutFn: func(context.Context, string) (*authapi.LogoutResponse, error) {
				return nil, errors.Join(authapi.ErrUnavailable, errors.New("connection refused"))
			},
		}
		flow, sessions, store := loginFlow(t, api)

		flow.Logout(ctx)
		assert.Equal(t, session.PhaseAnonymous, sessions.Current().Phase)
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})

	t.Run("logout while anonymous skips the remote call", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{}
		store := credstore.NewMemory()
		require.NoError(t, store.Save(ctx, credstore.Pair{Access: "stale"}))
		sessions := session.NewManager(store)
		flow := authflow.New(sessions, api)

		flow.Logout(ctx)
		assert.EqualValues(t, 0, api.logoutCalls.Load())
		// Residual store entries are still cleared.
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})
}

func TestRefresh(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success rotates the access credential", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			refreshFn: func(_ context.Context, rt string) (*authapi.AuthResponse, error) {
				require.Equal(t, "rt-1", rt)
				return authResponse("at-2"), nil
			},
		}
		flow, sessions, _ := loginFlow(t, api)

		require.NoError(t, flow.Refresh(ctx))
		snap := sessions.Current()
		assert.Equal(t, session.PhaseAuthenticated, snap.Phase)
		assert.Equal(t, "at-2", snap.AccessCredential)
	})

	t.Run("rejected refresh terminates the session", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			refreshFn: func(context.Context, string) (*authapi.AuthResponse, error) {
				return nil, unauthorized()
			},
		}
		flow, sessions, store := loginFlow(t, api)

		err := flow.Refresh(ctx)
		require.ErrorIs(t, err, authflow.ErrRefreshRejected)

		assert.Equal(t, session.PhaseAnonymous, sessions.Current().Phase)
		_, loadErr := store.Load(ctx)
		assert.ErrorIs(t, loadErr, credstore.ErrNotFound)
	})

	t.Run("no response keeps session and store", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			refreshFn: func(context.Context, string) (*authapi.AuthResponse, error) {
				return nil, errors.Join(authapi.ErrUnavailable, errors.New("timeout"))
			},
		}
		flow, sessions, store := loginFlow(t, api)

		err := flow.Refresh(ctx)
		require.ErrorIs(t, err, authflow.ErrRefreshUnavailable)

		snap := sessions.Current()
		assert.Equal(t, session.PhaseAuthenticated, snap.Phase)
		assert.Equal(t, "at-1", snap.AccessCredential)
		_, loadErr := store.Load(ctx)
		require.NoError(t, loadErr)
	})

	t.Run("concurrent callers share one renewal", func(t *testing.T) {
		t.Parallel()
		const callers = 10

		release := make(chan struct{})
		arrived := make(chan struct{}, 1)
		api := &fakeAPI{
			refreshFn: func(context.Context, string) (*authapi.AuthResponse, error) {
				arrived <- struct{}{}
				<-release // hold the renewal until all callers joined
				return authResponse("at-2"), nil
			},
		}
		flow, sessions, _ := loginFlow(t, api)

		var wg, ready sync.WaitGroup
		errs := make([]error, callers)
		ready.Add(callers)
		for i := range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ready.Done()
				errs[i] = flow.Refresh(context.Background())
			}()
		}
		ready.Wait()
		<-arrived
		// Give the remaining callers time to join the in-flight renewal
		// before it is allowed to resolve.
		time.Sleep(100 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.EqualValues(t, 1, api.refreshCalls.Load())
		for _, err := range errs {
			assert.NoError(t, err)
		}
		assert.Equal(t, "at-2", sessions.Current().AccessCredential)
	})
}

func TestBootstrap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("empty store stays anonymous without network calls", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{}
		flow, sessions, _ := newFlow(t, api)

		require.NoError(t, flow.Bootstrap(ctx))
		assert.Equal(t, session.PhaseAnonymous, sessions.Current().Phase)
		assert.EqualValues(t, 0, api.refreshCalls.Load())
	})

	t.Run("stored credentials are validated into an authenticated session", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			refreshFn: func(_ context.Context, rt string) (*authapi.AuthResponse, error) {
				require.Equal(t, "rt-0", rt)
				return authResponse("at-1"), nil
			},
		}
		store := credstore.NewMemory()
		require.NoError(t, store.Save(ctx, credstore.Pair{Access: "at-0", Refresh: "rt-0"}))
		sessions := session.NewManager(store)
		flow := authflow.New(sessions, api)

		require.NoError(t, flow.Bootstrap(ctx))
		snap := sessions.Current()
		assert.Equal(t, session.PhaseAuthenticated, snap.Phase)
		assert.Equal(t, "Ada Lovelace", snap.Identity.DisplayName)
	})

	t.Run("rejected validation lands anonymous with store cleared", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			refreshFn: func(context.Context, string) (*authapi.AuthResponse, error) {
				return nil, unauthorized()
			},
		}
		store := credstore.NewMemory()
		require.NoError(t, store.Save(ctx, credstore.Pair{Access: "at-0", Refresh: "rt-0"}))
		sessions := session.NewManager(store)
		flow := authflow.New(sessions, api)

		err := flow.Bootstrap(ctx)
		require.ErrorIs(t, err, authflow.ErrRefreshRejected)
		assert.Equal(t, session.PhaseAnonymous, sessions.Current().Phase)
		_, loadErr := store.Load(ctx)
		assert.ErrorIs(t, loadErr, credstore.ErrNotFound)
	})

	t.Run("unreachable server lands in error phase keeping store", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			refreshFn: func(context.Context, string) (*authapi.AuthResponse, error) {
				return nil, errors.Join(authapi.ErrUnavailable, errors.New("connection refused"))
			},
		}
		store := credstore.NewMemory()
		require.NoError(t, store.Save(ctx, credstore.Pair{Access: "at-0", Refresh: "rt-0"}))
		sessions := session.NewManager(store)
		flow := authflow.New(sessions, api)

		err := flow.Bootstrap(ctx)
		require.ErrorIs(t, err, authflow.ErrRefreshUnavailable)
		assert.Equal(t, session.PhaseError, sessions.Current().Phase)

		pair, loadErr := store.Load(ctx)
		require.NoError(t, loadErr)
		assert.Equal(t, credstore.Pair{Access: "at-0", Refresh: "rt-0"}, pair)
	})

	t.Run("missing refresh credential rejects the restored session", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{}
		store := credstore.NewMemory()
		require.NoError(t, store.Save(ctx, credstore.Pair{Access: "at-0"}))
		sessions := session.NewManager(store)
		flow := authflow.New(sessions, api)

		err := flow.Bootstrap(ctx)
		require.ErrorIs(t, err, authflow.ErrNoRefreshCredential)
		assert.Equal(t, session.PhaseAnonymous, sessions.Current().Phase)
		assert.EqualValues(t, 0, api.refreshCalls.Load())
	})
}
