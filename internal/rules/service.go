package rules

import (
	"context"
	"log"
	"sync"
	"time"

	"greenchainz-intel/internal/persona"
)

const DefaultTTL = time.Hour

type cacheEntry struct {
	p        persona.Persona
	cachedAt time.Time
}

// Service resolves persona rules through an ordered provider chain with a
// TTL cache in front. The cache is owned by the instance, never ambient.
type Service struct {
	remote Provider // may be nil when no store is configured
	static Provider
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type Option func(*Service)

// WithTTL overrides the default one-hour cache expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithClock injects a clock for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService builds the two-tier chain. remote may be nil; the service
// then runs on static rules only.
func NewService(remote Provider, opts ...Option) *Service {
	s := &Service{
		remote: remote,
		static: StaticProvider{},
		ttl:    DefaultTTL,
		now:    time.Now,
		cache:  make(map[string]cacheEntry),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Rules resolves a persona by ID: cache, then remote store, then static
// registry. Store failures other than not-found are logged and absorbed;
// the caller only sees not-found when both tiers miss.
func (s *Service) Rules(ctx context.Context, id string) (persona.Persona, bool) {
	if p, ok := s.cached(id); ok {
		return p, true
	}

	if s.remote != nil {
		p, ok, err := s.remote.Get(ctx, id)
		if err != nil {
			log.Printf("[rules] store lookup %s failed, falling back to static: %v", id, err)
		} else if ok {
			s.put(id, p)
			return p, true
		}
	}

	p, ok, _ := s.static.Get(ctx, id)
	if !ok {
		return persona.Persona{}, false
	}
	s.put(id, p)
	return p, true
}

// AllRules scans the remote store only: no cache, no static fallback.
// Returns an empty list when the store is unavailable.
func (s *Service) AllRules(ctx context.Context) []persona.Persona {
	if s.remote == nil {
		return nil
	}
	out, err := s.remote.All(ctx)
	if err != nil {
		log.Printf("[rules] store scan failed: %v", err)
		return nil
	}
	return out
}

func (s *Service) Invalidate(id string) {
	s.mu.Lock()
	delete(s.cache, id)
	s.mu.Unlock()
}

func (s *Service) Clear() {
	s.mu.Lock()
	s.cache = make(map[string]cacheEntry)
	s.mu.Unlock()
}

// Sweep drops expired entries. The scheduler runs this periodically so a
// long-idle engine doesn't hold stale rules in memory.
func (s *Service) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.cache {
		if now.Sub(e.cachedAt) >= s.ttl {
			delete(s.cache, id)
			n++
		}
	}
	return n
}

func (s *Service) cached(id string) (persona.Persona, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.cache[id]
	if !ok || s.now().Sub(e.cachedAt) >= s.ttl {
		return persona.Persona{}, false
	}
	return e.p, true
}

func (s *Service) put(id string, p persona.Persona) {
	s.mu.Lock()
	s.cache[id] = cacheEntry{p: p, cachedAt: s.now()}
	s.mu.Unlock()
}
