package resolver

import (
	"context"
	"sync"
	"time"
)

// Store is the key value contract the resolver caches through
// Get reports ok=false on a miss; errors mean the store itself failed
type Store interface {
	Get(ctx context.Context, key string) (val string, ok bool, err error)
	Set(ctx context.Context, key, val string) error
}

// Deleter is implemented by stores that support explicit invalidation
type Deleter interface {
	Delete(ctx context.Context, key string) error
}

type memEntry struct {
	val     string
	expires time.Time
}

// MemoryStore is a process local Store; ttl 0 keeps entries for the process lifetime
type MemoryStore struct {
	mu  sync.RWMutex
	m   map[string]memEntry
	ttl time.Duration
	now func() time.Time
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{m: map[string]memEntry{}, ttl: ttl, now: time.Now}
}

// Get implements Store
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.m[key]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		s.mu.Lock()
		// re-check under the write lock; a concurrent Set may have refreshed it
		if cur, still := s.m[key]; still && cur.expires.Equal(e.expires) {
			delete(s.m, key)
		}
		s.mu.Unlock()
		return "", false, nil
	}
	return e.val, true, nil
}

// Set implements Store; last write wins
func (s *MemoryStore) Set(_ context.Context, key, val string) error {
	e := memEntry{val: val}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.m[key] = e
	s.mu.Unlock()
	return nil
}

// Delete implements Deleter
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
	return nil
}
