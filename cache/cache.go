// Package cache provides a TTL key/value store and caching decorators for
// the fetch-layer services. Every external fetch is cached under a key that
// encodes all parameters affecting the response.
package cache

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Store is an in-memory key/value store with per-entry TTL.
// Expiry is checked lazily on Get; there is no background sweep and no
// capacity bound (the key space is one entry per distinct fetch target).
//
// Concurrent runs may race on the same key; the last writer wins, which is
// acceptable because both wrote a valid value for that key.
type Store[V any] struct {
	mu         sync.Mutex
	entries    map[string]entry[V]
	defaultTTL time.Duration
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// New creates a Store with the given default TTL.
func New[V any](defaultTTL time.Duration) *Store[V] {
	return &Store[V]{
		entries:    make(map[string]entry[V]),
		defaultTTL: defaultTTL,
	}
}

// Get returns the value for key. An expired entry is evicted and treated
// as absent.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores the value under key with the default TTL.
func (s *Store[V]) Set(key string, value V) {
	s.SetTTL(key, value, s.defaultTTL)
}

// SetTTL stores the value under key with an explicit TTL.
func (s *Store[V]) SetTTL(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry[V]{value: value, expiresAt: time.Now().Add(ttl)}
}

// Delete removes the entry for key, if present.
func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Clear removes all entries.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry[V])
}

// Len returns the number of stored entries, expired or not.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Key builds a cache key from the parts that affect a fetch response.
func Key(parts ...string) string {
	h := xxhash.Sum64String(strings.Join(parts, "\x00"))
	return strconv.FormatUint(h, 16)
}
