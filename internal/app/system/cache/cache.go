// Package cache is the process-wide query cache for backend data.
//
// Every list this app shows (classes, students, instructors, horses) is a
// cached copy of a backend query result, keyed by a typed key. Components
// never mutate cached values; all mutation goes through a backend round-trip
// followed by Invalidate, and the next read refetches. Subscribers are
// notified on invalidation so interested parties can react (logging,
// warm-up) without polling.
package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Key identifies one cached query result.
type Key string

// The full key space. Adding a key here is the only way to get a new cache
// entry; ad-hoc string keys are not accepted anywhere.
const (
	KeyClases       Key = "clases"
	KeyAlumnos      Key = "alumnos"
	KeyInstructores Key = "instructores"
	KeyCaballos     Key = "caballos"
)

// Service wraps an in-memory TTL cache with typed keys and invalidation
// subscriptions. Safe for concurrent use.
type Service struct {
	store *gocache.Cache
	log   *zap.Logger

	mu   sync.RWMutex
	subs map[Key][]func(Key)
}

// New builds a Service. Entries expire after ttl as a safety net against
// missed invalidations; cleanup is how often expired entries are swept.
func New(ttl, cleanup time.Duration, logger *zap.Logger) *Service {
	return &Service{
		store: gocache.New(ttl, cleanup),
		log:   logger,
		subs:  make(map[Key][]func(Key)),
	}
}

// Get returns the cached value for key, if present and unexpired.
func (s *Service) Get(key Key) (any, bool) {
	return s.store.Get(string(key))
}

// Set stores value under key with the default TTL.
func (s *Service) Set(key Key, value any) {
	s.store.Set(string(key), value, gocache.DefaultExpiration)
}

// Invalidate drops the entry for key and notifies subscribers synchronously.
func (s *Service) Invalidate(key Key) {
	s.store.Delete(string(key))

	s.mu.RLock()
	fns := s.subs[key]
	s.mu.RUnlock()

	if s.log != nil {
		s.log.Debug("cache invalidated", zap.String("key", string(key)))
	}
	for _, fn := range fns {
		fn(key)
	}
}

// Subscribe registers fn to run whenever key is invalidated.
func (s *Service) Subscribe(key Key, fn func(Key)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[key] = append(s.subs[key], fn)
}

// Flush drops every cached entry without notifying subscribers. Used at
// shutdown and in tests.
func (s *Service) Flush() {
	s.store.Flush()
}
