// ABOUTME: Mock Store implementation for testing
// ABOUTME: Allows tests to run without SQLite

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockStore is an in-memory Store implementation for testing.
type MockStore struct {
	mu       sync.RWMutex
	contexts map[string]*UserContext // keyed by user ID

	// UpdateErr, when set, is returned by UpdateContext to simulate
	// persistence failures.
	UpdateErr error
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		contexts: make(map[string]*UserContext),
	}
}

// GetOrCreateContext returns the stored context or seeds the default.
func (m *MockStore) GetOrCreateContext(ctx context.Context, userID string) (*UserContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if uc, ok := m.contexts[userID]; ok {
		return copyContext(uc), nil
	}

	uc := &UserContext{
		ID:              uuid.New().String(),
		UserID:          userID,
		Flow:            DefaultFlow,
		Step:            DefaultStep,
		Variables:       map[string]any{},
		LastInteraction: time.Now().UTC(),
	}
	m.contexts[userID] = uc

	return copyContext(uc), nil
}

// UpdateContext applies a partial update to the stored context.
func (m *MockStore) UpdateContext(ctx context.Context, userID string, update ContextUpdate) (*UserContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}

	uc, ok := m.contexts[userID]
	if !ok {
		return nil, ErrNotFound
	}

	if update.Flow != nil {
		uc.Flow = *update.Flow
	}
	if update.Step != nil {
		uc.Step = *update.Step
	}
	if update.Variables != nil {
		vars := make(map[string]any, len(update.Variables))
		for k, v := range update.Variables {
			vars[k] = v
		}
		uc.Variables = vars
	}
	uc.LastInteraction = time.Now().UTC()

	return copyContext(uc), nil
}

// ListContexts returns a snapshot of all stored contexts.
func (m *MockStore) ListContexts(ctx context.Context) ([]*UserContext, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	contexts := make([]*UserContext, 0, len(m.contexts))
	for _, uc := range m.contexts {
		contexts = append(contexts, copyContext(uc))
	}

	return contexts, nil
}

// ResetContexts removes all stored contexts.
func (m *MockStore) ResetContexts(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.contexts = make(map[string]*UserContext)
	return nil
}

// Close is a no-op for the mock store.
func (m *MockStore) Close() error {
	return nil
}

// copyContext returns a deep copy to avoid external modification.
func copyContext(uc *UserContext) *UserContext {
	result := *uc
	result.Variables = make(map[string]any, len(uc.Variables))
	for k, v := range uc.Variables {
		result.Variables[k] = v
	}
	return &result
}
