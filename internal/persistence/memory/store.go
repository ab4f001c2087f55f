// Package memory provides a process-local key-value store.
package memory

import (
	"context"
	"sync"

	"github.com/avrumiMuller/Mapty/internal/domain"
)

// Store keeps values in memory for local development and tests.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{values: make(map[string][]byte)}
}

// Get implements domain.Store.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return cloneBytes(value), nil
}

// Put implements domain.Store.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = cloneBytes(value)
	return nil
}

// Delete implements domain.Store.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return domain.ErrKeyNotFound
	}
	delete(s.values, key)
	return nil
}

func cloneBytes(in []byte) []byte {
	out := make([]byte, len(in))
	copy(out, in)
	return out
}
