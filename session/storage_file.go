package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/scholara/portal/internal/errors"
)

var _ Storage = (*FileStorage)(nil)

// FileStorage persists keys as a single JSON object on disk so a
// session survives portal restarts, the way browser local storage
// survives page loads. A missing or unparsable file is treated as
// empty storage rather than an error.
type FileStorage struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

func NewFileStorage(path string) *FileStorage {
	s := &FileStorage{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		s.values = make(map[string]string)
	}
	return s
}

func (s *FileStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	return value, ok
}

func (s *FileStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.save()
}

func (s *FileStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return s.save()
}

func (s *FileStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = make(map[string]string)
	return s.save()
}

func (s *FileStorage) save() error {
	data, err := json.Marshal(s.values)
	if err != nil {
		return errors.Wrapf(err, "[FileStorage save] marshal")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrapf(err, "[FileStorage save] mkdir")
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrapf(err, "[FileStorage save] write")
	}
	return nil
}
