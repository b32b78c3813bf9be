package cacheinfra

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

// ReferenceConfig holds the configuration for the sturdyc-backed reference
// data cache. Reference data (category trees, country lists) changes rarely
// and tolerates hour-scale TTLs, so it gets a different backend than the
// short-lived page store.
type ReferenceConfig struct {
	// Capacity is the maximum number of entries. Must be greater than 0.
	Capacity int

	// NumShards determines how many shards back the cache. Must be
	// greater than 0.
	NumShards int

	// TTL is the lifetime of cached reference entries. Must be greater
	// than 0.
	TTL time.Duration

	// EvictionPercentage is how much of the cache to evict when capacity
	// is reached. Must be between 1 and 100.
	EvictionPercentage int

	// EarlyRefresh refetches hot entries in the background before they
	// expire, so lookups keep serving without a synchronous stall. Nil
	// disables it.
	EarlyRefresh *EarlyRefreshConfig

	// EvictionInterval overrides how often sturdyc checks for expired
	// entries. Zero keeps the sturdyc default.
	EvictionInterval time.Duration
}

// EarlyRefreshConfig tunes background refresh of hot reference entries.
type EarlyRefreshConfig struct {
	MinAsyncRefresh time.Duration
	MaxAsyncRefresh time.Duration
	SyncRefresh     time.Duration
	RetryBaseDelay  time.Duration
}

// DefaultReferenceConfig returns defaults sized for lookup tables: a couple
// thousand entries with hour-long lifetimes refreshed in the background.
func DefaultReferenceConfig() ReferenceConfig {
	return ReferenceConfig{
		Capacity:           2000,
		NumShards:          64,
		TTL:                time.Hour,
		EvictionPercentage: 10,
		EarlyRefresh: &EarlyRefreshConfig{
			MinAsyncRefresh: 30 * time.Minute,
			MaxAsyncRefresh: 45 * time.Minute,
			SyncRefresh:     55 * time.Minute,
			RetryBaseDelay:  time.Second,
		},
	}
}

// Validate checks if the configuration values are valid.
func (c ReferenceConfig) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	if c.EarlyRefresh != nil {
		if c.EarlyRefresh.MinAsyncRefresh < 0 {
			return &ConfigError{Field: "EarlyRefresh.MinAsyncRefresh", Message: "must be non-negative"}
		}
		if c.EarlyRefresh.MaxAsyncRefresh < c.EarlyRefresh.MinAsyncRefresh {
			return &ConfigError{Field: "EarlyRefresh.MaxAsyncRefresh", Message: "must be at least MinAsyncRefresh"}
		}
		if c.EarlyRefresh.SyncRefresh < 0 {
			return &ConfigError{Field: "EarlyRefresh.SyncRefresh", Message: "must be non-negative"}
		}
		if c.EarlyRefresh.RetryBaseDelay < 0 {
			return &ConfigError{Field: "EarlyRefresh.RetryBaseDelay", Message: "must be non-negative"}
		}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

func (c ReferenceConfig) toOptions() []sturdyc.Option {
	var options []sturdyc.Option

	if c.EarlyRefresh != nil {
		options = append(options, sturdyc.WithEarlyRefreshes(
			c.EarlyRefresh.MinAsyncRefresh,
			c.EarlyRefresh.MaxAsyncRefresh,
			c.EarlyRefresh.SyncRefresh,
			c.EarlyRefresh.RetryBaseDelay,
		))
	}

	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}

	return options
}

// SturdycCache adapts a sturdyc client to the cache.ReferenceCache surface.
// sturdyc deduplicates concurrent fetches for one key and handles the
// refresh lifecycle, which is exactly the behaviour reference lookups need
// and the page store deliberately does not have.
type SturdycCache struct {
	client *sturdyc.Client[any]
}

// NewSturdycCache validates the configuration and builds the adapter.
func NewSturdycCache(cfg ReferenceConfig) (*SturdycCache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[any](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.toOptions()...,
	)

	return &SturdycCache{client: client}, nil
}

// GetOrFetch returns the cached value for key, calling fetch on a miss and
// caching whatever it returns.
func (s *SturdycCache) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	return s.client.GetOrFetch(ctx, key, fetch)
}

// Delete drops one entry so the next read refetches.
func (s *SturdycCache) Delete(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}
