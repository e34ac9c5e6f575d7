package cache

import (
	"context"
	"sync"
	"time"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/observability"
)

type entry struct {
	profile  *model.Profile
	storedAt time.Time
}

// Memory is a process-local ProfileCache with a fixed TTL.
// When maxEntries is positive the oldest entry is evicted to make room.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

type Option func(*Memory)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) { m.now = now }
}

func NewMemory(ttl time.Duration, maxEntries int, opts ...Option) *Memory {
	m := &Memory{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(_ context.Context, handle string) (*model.Profile, error) {
	k := key(handle)

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[k]
	if !ok {
		observability.ProfileCacheLookups.WithLabelValues("miss").Inc()
		return nil, nil
	}

	if m.now().Sub(e.storedAt) >= m.ttl {
		delete(m.entries, k)
		observability.ProfileCacheLookups.WithLabelValues("expired").Inc()
		return nil, nil
	}

	observability.ProfileCacheLookups.WithLabelValues("hit").Inc()
	return e.profile, nil
}

func (m *Memory) Set(_ context.Context, handle string, p *model.Profile) error {
	k := key(handle)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[k]; !exists && m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		m.evictOldestLocked()
	}

	m.entries[k] = entry{profile: p, storedAt: m.now()}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for k, e := range m.entries {
		if !found || e.storedAt.Before(oldestAt) {
			oldestKey, oldestAt, found = k, e.storedAt, true
		}
	}
	if found {
		delete(m.entries, oldestKey)
	}
}
