// Package memory provides an in-memory profile store for tests and
// ephemeral sessions.
package memory

import (
	"sync"

	"github.com/paoloronco/lynx/storage"
)

// Store implements storage.KV with a mutex-guarded map. Nothing survives the
// process; a client built on it behaves like a browser in private mode.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ storage.KV = (*Store)(nil)

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
