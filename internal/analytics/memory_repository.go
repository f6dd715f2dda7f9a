package analytics

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	store map[string]map[string]DailyRecord // userID -> date -> record
}

// NewMemoryRepository returns an in-memory repository intended for local development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{store: make(map[string]map[string]DailyRecord)}
}

func (r *memoryRepository) UpsertDaily(_ context.Context, userID string, record DailyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	userStore, ok := r.store[userID]
	if !ok {
		userStore = make(map[string]DailyRecord)
		r.store[userID] = userStore
	}

	userStore[record.Date] = record
	return nil
}

func (r *memoryRepository) GetRecords(_ context.Context, userID string, startDate, endDate string) (map[string]DailyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]DailyRecord)
	for date, record := range r.store[userID] {
		if date >= startDate && date <= endDate {
			out[date] = record
		}
	}
	return out, nil
}
