package wardrobe

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store implementation. It is safe for
// concurrent use and suitable for tests and single-instance deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	garments map[string]map[string]Garment // userID -> garmentID -> garment
}

// NewMemoryStore creates a new in-memory wardrobe store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		garments: make(map[string]map[string]Garment),
	}
}

// Add stores a garment.
func (s *MemoryStore) Add(_ context.Context, g Garment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.garments[g.UserID]
	if !ok {
		byID = make(map[string]Garment)
		s.garments[g.UserID] = byID
	}
	byID[g.ID] = g
	return nil
}

// Get returns a garment by id.
func (s *MemoryStore) Get(_ context.Context, userID, id string) (*Garment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.garments[userID][id]
	if !ok {
		return nil, ErrGarmentNotFound
	}
	return &g, nil
}

// List returns a user's garments matching the filter, most recent first.
func (s *MemoryStore) List(_ context.Context, userID string, filter Filter) ([]Garment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Garment
	for _, g := range s.garments[userID] {
		if filter.Category != "" && g.Category != filter.Category {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AddedAt.After(out[j].AddedAt)
	})
	return out, nil
}

// Remove deletes a garment.
func (s *MemoryStore) Remove(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.garments[userID]
	if !ok {
		return ErrGarmentNotFound
	}
	if _, ok := byID[id]; !ok {
		return ErrGarmentNotFound
	}
	delete(byID, id)
	return nil
}
