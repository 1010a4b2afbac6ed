package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/komapc/yearwheel/pkg/wheel"
)

// MemoryStore keeps saved wheels in process memory. Contents are lost on
// restart; it exists for tests and for running the server without MongoDB.
type MemoryStore struct {
	mu     sync.RWMutex
	wheels map[string]Wheel
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{wheels: make(map[string]Wheel)}
}

// Save stores a layout and returns the new wheel's id.
func (s *MemoryStore) Save(ctx context.Context, name string, l wheel.Layout) (string, error) {
	now := time.Now().UTC()
	w := Wheel{
		ID:        NewID(),
		Name:      name,
		Layout:    l,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.wheels[w.ID] = w
	s.mu.Unlock()
	return w.ID, nil
}

// Get retrieves a saved wheel by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (Wheel, error) {
	s.mu.RLock()
	w, ok := s.wheels[id]
	s.mu.RUnlock()
	if !ok {
		return Wheel{}, notFound(id)
	}
	return w, nil
}

// List returns saved wheels newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Wheel, error) {
	s.mu.RLock()
	out := make([]Wheel, 0, len(s.wheels))
	for _, w := range s.wheels {
		out = append(out, w)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes a saved wheel.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.wheels[id]; !ok {
		return notFound(id)
	}
	delete(s.wheels, id)
	return nil
}

// Close does nothing for the memory backend.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements WheelStore.
var _ WheelStore = (*MemoryStore)(nil)
