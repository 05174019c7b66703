package lockout

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	rec      Record
	expireAt time.Time
}

// MemoryStore is an in-process Store for single-instance deployments and
// tests. Entries expire lazily on read.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if s.now().After(entry.expireAt) {
		delete(s.entries, key)
		return nil, nil
	}
	rec := entry.rec
	return &rec, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, rec *Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{rec: *rec, expireAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
