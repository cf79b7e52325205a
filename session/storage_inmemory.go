package session

import "sync"

var _ Storage = (*InMemoryStorage)(nil)

// InMemoryStorage is the default Storage backing. It is also what
// tests substitute for persistent storage.
type InMemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{values: make(map[string]string)}
}

func (s *InMemoryStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok
}

func (s *InMemoryStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *InMemoryStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

func (s *InMemoryStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = make(map[string]string)
	return nil
}
