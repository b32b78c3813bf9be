package cache

import (
	"context"
	"time"

	"github.com/hanawi96/testiq-sub004/internal/cacheinfra"
)

// FetchFn is the function signature ReferenceCache expects when fetching
// from the source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// ReferenceCache is the read-through cache for rarely-changing lookup data
// (categories, countries). Unlike the page Store it owns its refresh
// lifecycle: entries live for hours and hot ones are refetched in the
// background before they expire.
type ReferenceCache interface {
	GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error)
	Delete(ctx context.Context, key string) error
}

// FetchReference is a type-safe wrapper that provides generic support for
// ReferenceCache.
func FetchReference[T any](ctx context.Context, rc ReferenceCache, key string, fetch FetchFn[T]) (T, error) {
	result, err := rc.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// ReferenceConfig exposes the reference cache configuration for consumers
// of the cache package.
type ReferenceConfig struct {
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
	EarlyRefresh       *EarlyRefreshConfig
	EvictionInterval   time.Duration
}

// EarlyRefreshConfig mirrors the underlying background refresh options.
type EarlyRefreshConfig struct {
	MinAsyncRefresh time.Duration
	MaxAsyncRefresh time.Duration
	SyncRefresh     time.Duration
	RetryBaseDelay  time.Duration
}

// DefaultReferenceConfig returns a ReferenceConfig populated with defaults
// sized for lookup tables.
func DefaultReferenceConfig() ReferenceConfig {
	return referenceFromInternal(cacheinfra.DefaultReferenceConfig())
}

// Validate checks whether the configuration values are valid.
func (c ReferenceConfig) Validate() error {
	return c.toInternal().Validate()
}

// NewReferenceCache constructs the default reference cache implementation
// using the provided configuration.
func NewReferenceCache(cfg ReferenceConfig) (ReferenceCache, error) {
	return cacheinfra.NewSturdycCache(cfg.toInternal())
}

func (c ReferenceConfig) toInternal() cacheinfra.ReferenceConfig {
	var early *cacheinfra.EarlyRefreshConfig
	if c.EarlyRefresh != nil {
		early = &cacheinfra.EarlyRefreshConfig{
			MinAsyncRefresh: c.EarlyRefresh.MinAsyncRefresh,
			MaxAsyncRefresh: c.EarlyRefresh.MaxAsyncRefresh,
			SyncRefresh:     c.EarlyRefresh.SyncRefresh,
			RetryBaseDelay:  c.EarlyRefresh.RetryBaseDelay,
		}
	}

	return cacheinfra.ReferenceConfig{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		EarlyRefresh:       early,
		EvictionInterval:   c.EvictionInterval,
	}
}

func referenceFromInternal(cfg cacheinfra.ReferenceConfig) ReferenceConfig {
	var early *EarlyRefreshConfig
	if cfg.EarlyRefresh != nil {
		early = &EarlyRefreshConfig{
			MinAsyncRefresh: cfg.EarlyRefresh.MinAsyncRefresh,
			MaxAsyncRefresh: cfg.EarlyRefresh.MaxAsyncRefresh,
			SyncRefresh:     cfg.EarlyRefresh.SyncRefresh,
			RetryBaseDelay:  cfg.EarlyRefresh.RetryBaseDelay,
		}
	}

	return ReferenceConfig{
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		TTL:                cfg.TTL,
		EvictionPercentage: cfg.EvictionPercentage,
		EarlyRefresh:       early,
		EvictionInterval:   cfg.EvictionInterval,
	}
}
