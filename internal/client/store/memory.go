package store

import (
	"context"
	"sync"
)

// Memory is an in-process TokenStore for tests and ephemeral runs. It keeps
// the same two-value layout and corruption handling as the durable drivers.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns an empty in-memory token store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Save(_ context.Context, pair TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Refresh token first, mirroring the durable drivers' write order.
	m.values[KeyRefreshToken] = pair.RefreshToken
	m.values[KeyAccessToken] = pair.AccessToken
	return nil
}

func (m *Memory) Load(_ context.Context) (TokenPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	access, haveAccess := m.values[KeyAccessToken]
	refresh, haveRefresh := m.values[KeyRefreshToken]

	if haveAccess && !haveRefresh {
		// Half-written state: self-heal.
		delete(m.values, KeyAccessToken)
		delete(m.values, KeyRefreshToken)
		return TokenPair{}, ErrNoSession
	}

	if !haveAccess || !haveRefresh {
		return TokenPair{}, ErrNoSession
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, KeyAccessToken)
	delete(m.values, KeyRefreshToken)
	return nil
}
