package cache

import "time"

// Store is the volatile page cache shared by a list controller and its
// prefetch scheduler. Entries live until their TTL elapses; reads drop
// expired entries lazily and a background sweep collects the rest.
//
// A miss is never an error. Callers degrade to fetching from the provider
// and the UI shows a loading state instead of a failure.
type Store interface {
	// Set stores data under key with the default TTL. Overwriting an
	// entry restarts its lifetime.
	Set(key string, data any)

	// SetWithTTL stores data under key with an explicit lifetime.
	SetWithTTL(key string, data any, ttl time.Duration)

	// Get returns the live value for key. Expired entries are removed on
	// the way out and reported as a miss.
	Get(key string) (any, bool)

	// Has reports whether a live entry exists without mutating the store.
	Has(key string) bool

	// Delete removes one entry.
	Delete(key string)

	// Clear drops every entry and advances the generation. It is the
	// invalidation primitive: any filter change clears the whole store.
	Clear()

	// Generation returns the invalidation counter, advanced by Clear.
	// Fetches snapshot it before calling the provider so results that
	// resolve across a Clear are not written back.
	Generation() uint64

	// SweepExpired removes every expired entry and reports how many were
	// dropped.
	SweepExpired() int

	// Len returns the number of stored entries, including expired ones
	// not yet dropped.
	Len() int

	// Close stops background maintenance. The store stays readable.
	Close()
}
