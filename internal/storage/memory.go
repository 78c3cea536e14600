package storage

import (
	"context"
	"sync"
)

// MemoryStore is an ephemeral record store for tests and throwaway runs.
// Payloads are copied on the way in and out so callers cannot alias the
// stored bytes.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryStore returns an empty in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

// SaveRecord stores a copy of payload under key.
func (s *MemoryStore) SaveRecord(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(payload))
	copy(buf, payload)
	s.records[key] = buf
	return nil
}

// LoadRecord returns a copy of the payload stored under key.
func (s *MemoryStore) LoadRecord(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.records[key]
	if !ok {
		return nil, false, nil
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)
	return buf, true, nil
}

// Close implements the backend cleanup contract; nothing to release.
func (s *MemoryStore) Close() error { return nil }
