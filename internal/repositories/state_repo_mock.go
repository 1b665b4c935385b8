package repositories

import (
	"context"
	"fmt"
	"sync"
)

// MockStateRepository is an in-memory implementation of StateRepository.
type MockStateRepository struct {
	records map[string][]byte
	mu      sync.RWMutex
}

// NewMockStateRepository creates a new instance of MockStateRepository.
func NewMockStateRepository() *MockStateRepository {
	return &MockStateRepository{
		records: make(map[string][]byte),
	}
}

// Load returns a copy of the value stored under key.
func (r *MockStateRepository) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.records[key]
	if !ok {
		return nil, fmt.Errorf("key %s: %w", key, ErrStateNotFound)
	}
	return append([]byte(nil), value...), nil
}

// Save stores value under key.
func (r *MockStateRepository) Save(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes the record under key.
func (r *MockStateRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[key]; !ok {
		return fmt.Errorf("key %s: %w", key, ErrStateNotFound)
	}
	delete(r.records, key)
	return nil
}
