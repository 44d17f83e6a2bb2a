// Package cache holds short-lived, process-local read caches.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is a TTL cache keyed by string. Concurrent misses for one key share a single load, and a
// load that overlaps an invalidation is returned to its callers but not stored.
// A ttl <= 0 keeps entries until they are invalidated.
type Store[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	gen     uint64
	ttl     time.Duration
	group   singleflight.Group
	now     func() time.Time
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupLocked(key)
}

func (s *Store[V]) lookupLocked(key string) (V, bool) {
	var zero V
	e, ok := s.entries[key]
	if !ok {
		return zero, false
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return zero, false
	}
	return e.value, true
}

func (s *Store[V]) Set(key string, value V) {
	s.mu.Lock()
	s.storeLocked(key, value)
	s.mu.Unlock()
}

func (s *Store[V]) storeLocked(key string, value V) {
	e := entry[V]{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[key] = e
}

// Invalidate drops the given keys.
func (s *Store[V]) Invalidate(keys ...string) {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.entries, key)
		s.group.Forget(key)
	}
	s.gen++
	s.mu.Unlock()
}

// InvalidatePrefix drops every key starting with prefix. An empty prefix clears the store.
func (s *Store[V]) InvalidatePrefix(prefix string) {
	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.gen++
	s.mu.Unlock()
}

// Load returns the cached value for key or runs load once for all concurrent callers.
// Errors are never cached.
func (s *Store[V]) Load(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	s.mu.Lock()
	if v, ok := s.lookupLocked(key); ok {
		s.mu.Unlock()
		return v, nil
	}
	startGen := s.gen
	s.mu.Unlock()

	res, err, _ := s.group.Do(key, func() (any, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if s.gen == startGen {
			s.storeLocked(key, v)
		}
		s.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}
