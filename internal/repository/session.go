package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps sessions in memory. The least recently used session is
// dropped once capacity is reached, and sessions expire ttl after they were
// last stored or touched. Nothing survives a restart.
type SessionStore[V any] struct {
	// mu keeps Touch from re-adding a session that Delete just removed.
	mu    sync.Mutex
	cache *expirable.LRU[string, V]
}

// NewSessionStore creates a SessionStore. onEvict, if non-nil, is called
// whenever a session leaves the store.
func NewSessionStore[V any](capacity int, ttl time.Duration, onEvict func(id string)) *SessionStore[V] {
	var cb expirable.EvictCallback[string, V]
	if onEvict != nil {
		cb = func(id string, _ V) { onEvict(id) }
	}
	return &SessionStore[V]{cache: expirable.NewLRU[string, V](capacity, cb, ttl)}
}

// Put stores or replaces a session.
func (s *SessionStore[V]) Put(id string, v V) {
	s.cache.Add(id, v)
}

// Get retrieves a session by ID.
func (s *SessionStore[V]) Get(id string) (V, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		var zero V
		return zero, ErrSessionNotFound
	}
	return v, nil
}

// Touch restarts the expiry of a stored session.
func (s *SessionStore[V]) Touch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.cache.Peek(id)
	if !ok {
		return ErrSessionNotFound
	}
	s.cache.Add(id, v)
	return nil
}

// Delete removes a session by ID.
func (s *SessionStore[V]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cache.Remove(id) {
		return ErrSessionNotFound
	}
	return nil
}

// Len returns the number of live sessions.
func (s *SessionStore[V]) Len() int {
	return s.cache.Len()
}
