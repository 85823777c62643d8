// Package logger provides slog attribute helpers shared across the SDK.
//
// All helpers return an empty slog.Attr for zero-value inputs, so callers can
// pass them unconditionally:
//
//	log.Info("refresh finished",
//		logger.Episode(episodeID),
//		logger.Error(err), // no-op when err is nil
//	)
package logger
