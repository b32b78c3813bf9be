package cacheinfra

import (
	"sync"
	"sync/atomic"
	"time"
)

// StoreConfig holds the configuration for the in-memory page store.
type StoreConfig struct {
	// DefaultTTL is the lifetime applied by Set. List pages go stale
	// quickly in a multi-editor admin, so the default is short.
	// Must be greater than 0.
	DefaultTTL time.Duration

	// SweepInterval is how often the janitor scans for expired entries.
	// Zero disables the janitor; expired entries are still dropped lazily
	// on read.
	SweepInterval time.Duration
}

// DefaultStoreConfig returns the store defaults: two-minute entries,
// swept every five minutes.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		DefaultTTL:    2 * time.Minute,
		SweepInterval: 5 * time.Minute,
	}
}

// Validate checks if the configuration values are valid.
func (c StoreConfig) Validate() error {
	if c.DefaultTTL <= 0 {
		return &ConfigError{Field: "DefaultTTL", Message: "must be greater than 0"}
	}
	if c.SweepInterval < 0 {
		return &ConfigError{Field: "SweepInterval", Message: "must be non-negative"}
	}
	return nil
}

// entry is one cached value. It is valid while now - createdAt <= ttl.
type entry struct {
	data      any
	createdAt time.Time
	ttl       time.Duration
}

func (e entry) expired(now time.Time) bool {
	return now.Sub(e.createdAt) > e.ttl
}

// MemoryStore is a TTL map cache for page-shaped values. Reads drop expired
// entries lazily; a janitor goroutine sweeps the rest so filter combinations
// the operator abandoned do not pin memory for the whole session.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry

	defaultTTL time.Duration
	gen        atomic.Uint64

	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryStore validates the configuration, builds the store, and starts
// the sweep janitor when one is configured.
func NewMemoryStore(cfg StoreConfig) (*MemoryStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &MemoryStore{
		entries:    make(map[string]entry),
		defaultTTL: cfg.DefaultTTL,
		done:       make(chan struct{}),
	}

	if cfg.SweepInterval > 0 {
		go s.janitor(cfg.SweepInterval)
	}

	return s, nil
}

// Set stores data under key with the default TTL. Overwriting an entry
// restarts its lifetime.
func (s *MemoryStore) Set(key string, data any) {
	s.SetWithTTL(key, data, s.defaultTTL)
}

// SetWithTTL stores data under key with an explicit lifetime. Non-positive
// ttl falls back to the default.
func (s *MemoryStore) SetWithTTL(key string, data any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	s.mu.Lock()
	s.entries[key] = entry{data: data, createdAt: time.Now(), ttl: ttl}
	s.mu.Unlock()
}

// Get returns the live value stored under key. An expired entry is removed
// on the way out and reported as a miss; a miss is never an error.
func (s *MemoryStore) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if !e.expired(time.Now()) {
		return e.data, true
	}

	// Re-check under the write lock: the entry may have been replaced
	// with a fresh one since the read.
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if cur.expired(time.Now()) {
		delete(s.entries, key)
		return nil, false
	}
	return cur.data, true
}

// Has reports whether a live entry exists for key. It never mutates the
// store, so it is cheap to call from hot paths like the prefetch sweep.
func (s *MemoryStore) Has(key string) bool {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	return ok && !e.expired(time.Now())
}

// Delete removes one entry.
func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Clear drops every entry and advances the store generation. Callers that
// snapshot the generation before a fetch can tell that results resolved
// across a Clear belong to a dropped view and must not be written back.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.gen.Add(1)
	s.mu.Unlock()
}

// Generation returns the invalidation counter. It starts at zero and
// advances on every Clear.
func (s *MemoryStore) Generation() uint64 {
	return s.gen.Load()
}

// SweepExpired removes every expired entry and reports how many were
// dropped.
func (s *MemoryStore) SweepExpired() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, including entries that have
// expired but not yet been dropped by a read or a sweep.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the janitor. The store itself stays usable.
func (s *MemoryStore) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SweepExpired()
		case <-s.done:
			return
		}
	}
}
