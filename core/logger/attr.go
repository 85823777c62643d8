package logger

import (
	"log/slog"
)

// Attribute helpers use the empty Attr pattern for nil safety.
// This allows calls like log.Info("msg", logger.Error(err)) without explicit
// nil checks, following the principle of making zero values useful.

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors, enabling safe usage without nil checks.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component identifies the subsystem emitting the log record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Episode correlates all records belonging to one credential-refresh episode.
// Returns empty Attr for an empty ID.
func Episode(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("episode", id)
}

// Phase records a session phase transition target.
func Phase(phase string) slog.Attr {
	return slog.String("phase", phase)
}

// Status records an HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Endpoint records the method and path of an outbound API call.
func Endpoint(method, path string) slog.Attr {
	return slog.Attr{Key: "endpoint", Value: slog.GroupValue(
		slog.String("method", method),
		slog.String("path", path),
	)}
}
