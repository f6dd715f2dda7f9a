package rewards

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	store map[string][]byte // userID -> serialized progress
}

// NewMemoryRepository returns an in-memory repository intended for local development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{store: make(map[string][]byte)}
}

func (r *memoryRepository) Load(_ context.Context, userID string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payload, ok := r.store[userID]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (r *memoryRepository) Save(_ context.Context, userID string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]byte, len(payload))
	copy(stored, payload)
	r.store[userID] = stored
	return nil
}
