package credstore

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/campusdesk/schedkit/core/logger"
)

// Fallback wraps a durable store and degrades to in-memory persistence when
// the durable store fails. A disabled or full storage backend must never
// break the session itself; credentials simply stop surviving restarts.
type Fallback struct {
	durable  Store
	memory   *Memory
	degraded atomic.Bool
	log      *slog.Logger
}

// WithFallback wraps store so that persistence failures degrade to an
// in-memory store instead of propagating to the caller.
func WithFallback(store Store, log *slog.Logger) *Fallback {
	if log == nil {
		log = slog.Default()
	}
	return &Fallback{
		durable: store,
		memory:  NewMemory(),
		log:     log.With(logger.Component("credstore")),
	}
}

// Degraded reports whether the store has switched to in-memory persistence.
func (f *Fallback) Degraded() bool {
	return f.degraded.Load()
}

func (f *Fallback) Save(ctx context.Context, pair Pair) error {
	// The memory copy is kept current even while the durable store works, so
	// a later degradation does not lose the session's credentials.
	_ = f.memory.Save(ctx, pair)

	if f.degraded.Load() {
		return nil
	}
	if err := f.durable.Save(ctx, pair); err != nil {
		f.degrade(err)
	}
	return nil
}

func (f *Fallback) Load(ctx context.Context) (Pair, error) {
	if f.degraded.Load() {
		return f.memory.Load(ctx)
	}

	pair, err := f.durable.Load(ctx)
	switch {
	case err == nil:
		_ = f.memory.Save(ctx, pair)
		return pair, nil
	case errors.Is(err, ErrNotFound):
		return Pair{}, ErrNotFound
	default:
		f.degrade(err)
		return f.memory.Load(ctx)
	}
}

func (f *Fallback) Clear(ctx context.Context) error {
	_ = f.memory.Clear(ctx)

	if f.degraded.Load() {
		return nil
	}
	if err := f.durable.Clear(ctx); err != nil {
		f.degrade(err)
	}
	return nil
}

func (f *Fallback) degrade(cause error) {
	if f.degraded.CompareAndSwap(false, true) {
		f.log.Warn("durable credential store failed, continuing in-memory only",
			logger.Error(cause))
	}
}
