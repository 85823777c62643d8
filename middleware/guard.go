package middleware

import (
	"net/http"
	"net/url"

	"github.com/campusdesk/schedkit/core/session"
)

// SessionSource supplies the current session snapshot. The session manager
// implements it.
type SessionSource interface {
	Current() session.Session
}

// GuardConfig configures the route guard.
type GuardConfig struct {
	// LoginPath is the entry point unauthenticated navigation is sent to.
	LoginPath string
	// RedirectParam carries the originally requested location through the
	// login redirect, so a successful login can return to it.
	// Default "redirect".
	RedirectParam string
	// Loading handles requests arriving while the session is still being
	// established (logging in, hydrating, refreshing). Defaults to a neutral
	// retrying placeholder; it must never redirect.
	Loading http.Handler
}

// Guard gates protected routes on the session phase: authenticated sessions
// pass through, transient phases get the loading handler, everything else is
// redirected to the login entry point with the original location preserved.
//
// A transient phase never redirects. Hydration at startup passes through the
// refreshing phase, and bouncing such a request to the login screen would log
// out a user whose stored credentials are perfectly valid.
func Guard(sessions SessionSource, cfg GuardConfig) func(http.Handler) http.Handler {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.RedirectParam == "" {
		cfg.RedirectParam = "redirect"
	}
	if cfg.Loading == nil {
		cfg.Loading = http.HandlerFunc(loadingHandler)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := sessions.Current()
			switch {
			case snap.IsAuthenticated():
				next.ServeHTTP(w, r)
			case snap.Phase.Transient():
				cfg.Loading.ServeHTTP(w, r)
			default:
				to := cfg.LoginPath + "?" + cfg.RedirectParam + "=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, to, http.StatusSeeOther)
			}
		})
	}
}

const loadingPage = `<!doctype html>
<html><head><meta charset="utf-8"><meta http-equiv="refresh" content="1"><title>Loading</title></head>
<body>Signing you in&hellip;</body></html>`

func loadingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte(loadingPage))
}
