package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore holds encoded documents in memory. It round-trips through JSON
// so callers observe the same decoding behavior as the persistent stores.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, name string, v interface{}) error {
	s.mu.RLock()
	data, ok := s.docs[name]
	s.mu.RUnlock()
	if !ok {
		return ErrNotExist
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

func (s *MemoryStore) Save(_ context.Context, name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	s.mu.Lock()
	s.docs[name] = data
	s.mu.Unlock()
	return nil
}

// PutRaw stores body verbatim, bypassing encoding
func (s *MemoryStore) PutRaw(name string, body []byte) {
	s.mu.Lock()
	s.docs[name] = append([]byte(nil), body...)
	s.mu.Unlock()
}

// Raw returns the stored body and whether it exists
func (s *MemoryStore) Raw(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[name]
	return append([]byte(nil), data...), ok
}

func (s *MemoryStore) Ping(context.Context) error { return nil }
func (s *MemoryStore) Close() error               { return nil }
