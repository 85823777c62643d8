package schedkit

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/campusdesk/schedkit/api"
	"github.com/campusdesk/schedkit/core/authapi"
	"github.com/campusdesk/schedkit/core/authflow"
	"github.com/campusdesk/schedkit/core/config"
	"github.com/campusdesk/schedkit/core/credstore"
	"github.com/campusdesk/schedkit/core/logger"
	"github.com/campusdesk/schedkit/core/session"
	"github.com/campusdesk/schedkit/core/transport"
	"github.com/campusdesk/schedkit/middleware"
)

// Config aggregates everything the facade needs to assemble a client.
type Config struct {
	// API configures the authenticated transport.
	API transport.Config

	// CredentialsFile overrides the default on-disk credential location.
	// When empty, credentials live under the user config directory.
	CredentialsFile string `env:"SCHEDKIT_CREDENTIALS_FILE"`
}

// LoadConfig reads the configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Client bundles the assembled subsystems. All fields share one session
// manager, so phase changes triggered by the transport are visible to the
// auth flows and the route guard.
type Client struct {
	Sessions  *session.Manager
	Auth      *authflow.Flow
	Transport *transport.Client
	API       *api.Client

	log *slog.Logger
}

// Option configures the client assembly.
type Option func(*options)

type options struct {
	store      credstore.Store
	httpClient *http.Client
	log        *slog.Logger
}

// WithStore replaces the default file-backed credential store.
func WithStore(store credstore.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithHTTPClient sets the underlying HTTP client for both the auth API
// and the authenticated transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithLogger sets the logger shared by all subsystems.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// New assembles the credential store, session manager, auth API client,
// auth flows, authenticated transport and domain services, then restores
// any persisted session via Bootstrap. A bootstrap failure does not fail
// construction: a rejected restore leaves the session anonymous and an
// unreachable backend leaves it in the error phase, both of which the
// caller observes through Sessions.Current.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.API.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	store := o.store
	if store == nil {
		path, err := defaultCredentialsPath(cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		store = credstore.WithFallback(credstore.NewFile(path), o.log)
	}

	sessions := session.NewManager(store, session.WithLogger(o.log))

	var apiOpts []authapi.Option
	var transportOpts []transport.Option
	if o.httpClient != nil {
		apiOpts = append(apiOpts, authapi.WithHTTPClient(o.httpClient))
		transportOpts = append(transportOpts, transport.WithHTTPClient(o.httpClient))
	}
	if o.log != nil {
		transportOpts = append(transportOpts, transport.WithLogger(o.log))
	}

	authClient := authapi.NewClient(cfg.API.BaseURL, apiOpts...)

	var flowOpts []authflow.Option
	if o.log != nil {
		flowOpts = append(flowOpts, authflow.WithLogger(o.log))
	}
	flow := authflow.New(sessions, authClient, flowOpts...)

	tr, err := transport.New(cfg.API, sessions, flow, transportOpts...)
	if err != nil {
		return nil, err
	}

	c := &Client{
		Sessions:  sessions,
		Auth:      flow,
		Transport: tr,
		API:       api.New(tr),
		log:       o.log,
	}

	if err := flow.Bootstrap(ctx); err != nil && c.log != nil {
		c.log.WarnContext(ctx, "session restore failed",
			logger.Component("schedkit"),
			logger.Error(err))
	}

	return c, nil
}

// GuardConfig configures the route guard middleware.
type GuardConfig = middleware.GuardConfig

// Guard returns HTTP middleware that admits only authenticated sessions,
// backed by this client's session manager.
func (c *Client) Guard(cfg middleware.GuardConfig) func(http.Handler) http.Handler {
	return middleware.Guard(c.Sessions, cfg)
}

func defaultCredentialsPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "schedkit", "credentials.json"), nil
}
