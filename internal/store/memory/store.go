package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/pdrpinto/bestfirst/internal/store"
)

// Store implements store.Store in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*store.Entry
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*store.Entry),
	}
}

func copyEntry(entry *store.Entry) *store.Entry {
	copied := *entry
	copied.Actions = slices.Clone(entry.Actions)
	return &copied
}

// Put saves a copy of entry.
func (s *Store) Put(ctx context.Context, key string, entry *store.Entry) error {
	copied := copyEntry(entry)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Get returns a copy of the entry under key.
func (s *Store) Get(ctx context.Context, key string) (*store.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyEntry(entry), nil
}

// Delete removes the entry.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
