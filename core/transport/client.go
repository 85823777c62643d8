package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/campusdesk/schedkit/core/apierror"
	"github.com/campusdesk/schedkit/core/logger"
)

// CredentialSource supplies the current access credential. The session
// manager implements it.
type CredentialSource interface {
	AccessCredential() string
}

// Refresher renews the access credential. Implementations must coordinate
// concurrent callers so that only one renewal is in flight at a time; the
// authflow package's single-flight refresh does. Refresh blocks until the
// shared renewal resolves and returns its outcome.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Client is the single chokepoint for all domain API calls. It attaches the
// current access credential to every request and transparently recovers from
// credential expiry: one shared renewal per expiry episode, one replay per
// request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	creds      CredentialSource
	refresher  Refresher
	log        *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger for dispatch and interception events.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates an authenticated transport.
func New(cfg Config, creds CredentialSource, refresher Refresher, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		creds:      creds,
		refresher:  refresher,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("transport"))
	return c, nil
}

// Do dispatches the request with the current access credential attached and
// returns the response. On a 401 it drives the recovery path:
//
//   - if the session's credential already changed since dispatch, the expiry
//     episode this failure belongs to has resolved; replay immediately
//   - otherwise join the shared renewal and replay once it succeeds
//   - a request that already replayed once, or whose renewal failed, resolves
//     as a final failure with no further network calls
//
// Responses other than 401 pass through untouched; closing the body is the
// caller's responsibility.
func (c *Client) Do(ctx context.Context, req *Request) (*http.Response, error) {
	for {
		token := c.creds.AccessCredential()

		resp, err := c.send(ctx, req, token)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			return resp, nil
		}

		// Credential rejected. Capture the server's reason and release the
		// connection before deciding on recovery.
		apiErr := apierror.FromResponse(resp)
		drainAndClose(resp.Body)

		// An unauthenticated dispatch cannot be cured by a refresh.
		if token == "" {
			return nil, errors.Join(ErrAuthFailed, apiErr)
		}
		if req.retried {
			c.log.Debug("request failed again after replay",
				logger.Endpoint(req.Method, req.Path))
			return nil, errors.Join(ErrAuthFailed, apiErr)
		}

		// Another request's episode may already have renewed the credential
		// while this one was in flight.
		if current := c.creds.AccessCredential(); current != "" && current != token {
			req.retried = true
			continue
		}

		if err := c.refresher.Refresh(ctx); err != nil {
			return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
		}
		req.retried = true
	}
}

// JSON dispatches the request and decodes a 2xx JSON response into out.
// Non-2xx responses become *apierror.APIError.
func (c *Client) JSON(ctx context.Context, req *Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierror.FromResponse(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", req.Method, req.Path, err)
	}
	return nil
}

// Get issues a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.JSON(ctx, &Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.JSON(ctx, &Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put issues a PUT request with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.JSON(ctx, &Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.JSON(ctx, &Request{Method: http.MethodDelete, Path: path}, nil)
}

func (c *Client) send(ctx context.Context, req *Request, token string) (*http.Response, error) {
	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for name, values := range req.Header {
		httpReq.Header[name] = values
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(httpReq)
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 1<<20))
	_ = body.Close()
}
