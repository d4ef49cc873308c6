package persistence

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]SessionRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: make(map[string]SessionRecord)}
}

func (r *MemoryRepository) SaveSession(_ context.Context, rec SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[rec.ID] = rec
	return nil
}

func (r *MemoryRepository) GetSession(_ context.Context, id string) (*SessionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	copyRec := rec
	return &copyRec, nil
}

func (r *MemoryRepository) ListSessions(_ context.Context, f SessionFilter) ([]SessionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]SessionRecord, 0, len(r.sessions))
	for _, rec := range r.sessions {
		if !matchesFilter(rec, f) {
			continue
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []SessionRecord{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *MemoryRepository) CountSessions(_ context.Context, f SessionFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, rec := range r.sessions {
		if matchesFilter(rec, f) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) DeleteSession(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
