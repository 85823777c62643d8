package credstore

import (
	"context"
	"sync"
)

// Memory is an in-process Store. Credentials do not survive a restart;
// it backs tests and the degraded mode of Fallback.
type Memory struct {
	mu      sync.RWMutex
	pair    Pair
	present bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, pair Pair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = pair
	m.present = true
	return nil
}

func (m *Memory) Load(_ context.Context) (Pair, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.present || m.pair.Empty() {
		return Pair{}, ErrNotFound
	}
	return m.pair, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = Pair{}
	m.present = false
	return nil
}
