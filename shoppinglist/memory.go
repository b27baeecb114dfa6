package shoppinglist

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory shopping list store.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]map[string]Item
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]map[string]Item)}
}

// Save stores an item.
func (s *MemoryStore) Save(ctx context.Context, item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.SavedAt.IsZero() {
		item.SavedAt = time.Now()
	}
	user, ok := s.items[item.UserID]
	if !ok {
		user = make(map[string]Item)
		s.items[item.UserID] = user
	}
	user[item.ProductID] = item
	return nil
}

// Remove deletes a saved item.
func (s *MemoryStore) Remove(ctx context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.items[userID]
	if !ok {
		return ErrItemNotFound
	}
	if _, ok := user[productID]; !ok {
		return ErrItemNotFound
	}
	delete(user, productID)
	return nil
}

// List returns a user's saved items, most recent first.
func (s *MemoryStore) List(ctx context.Context, userID string) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user := s.items[userID]
	out := make([]Item, 0, len(user))
	for _, item := range user {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SavedAt.After(out[j].SavedAt)
	})
	return out, nil
}

// Contains reports whether the user has saved the product.
func (s *MemoryStore) Contains(ctx context.Context, userID, productID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.items[userID]
	if !ok {
		return false, nil
	}
	_, ok = user[productID]
	return ok, nil
}
