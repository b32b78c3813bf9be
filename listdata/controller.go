package listdata

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/hanawi96/testiq-sub004/cache"
	"github.com/hanawi96/testiq-sub004/query"
	"github.com/hanawi96/testiq-sub004/remote"
)

// ControllerConfig configures one list controller.
type ControllerConfig struct {
	// Kind namespaces cache keys, logs, and metrics ("articles",
	// "users", "media").
	Kind string

	// StatsTTL is the lifetime of cached aggregate counters. Zero falls
	// back to the store's default TTL.
	StatsTTL time.Duration

	// Logger defaults to a nop logger.
	Logger *zap.Logger

	// Metrics may be nil to run unmetered.
	Metrics *Metrics
}

// Validate checks the config.
func (c ControllerConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Kind, validation.Required),
		validation.Field(&c.StatsTTL, validation.Min(time.Duration(0))),
	)
}

// Controller serves paginated list state for one list kind. Cache hits
// return synchronously, misses read through the provider exactly once per
// key, and every page served hands the result set to the prefetch
// scheduler so the remaining pages warm in the background.
type Controller[T any] struct {
	kind     string
	store    cache.Store
	provider remote.ListProvider[T]
	keys     *query.KeyBuilder
	prefetch *Scheduler[T]

	flight   singleflight.Group
	statsTTL time.Duration

	logger  *zap.Logger
	metrics *Metrics
}

// NewController wires a controller. scheduler may be nil, which disables
// background warming; pages still load on demand.
func NewController[T any](cfg ControllerConfig, store cache.Store, provider remote.ListProvider[T], keys *query.KeyBuilder, scheduler *Scheduler[T]) (*Controller[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller[T]{
		kind:     cfg.Kind,
		store:    store,
		provider: provider,
		keys:     keys,
		prefetch: scheduler,
		statsTTL: cfg.StatsTTL,
		logger:   logger,
		metrics:  cfg.Metrics,
	}, nil
}

// GetPage returns one page of the filtered list, serving from cache when
// it can. Concurrent misses for the same key collapse into a single
// provider call. Provider failures propagate unchanged and nothing is
// cached for them, so the next attempt fetches again.
func (c *Controller[T]) GetPage(ctx context.Context, req query.PageRequest) (remote.PageResult[T], error) {
	var zero remote.PageResult[T]
	if err := req.Validate(); err != nil {
		return zero, err
	}

	key := c.keys.PageKey(c.kind, req)

	if v, ok := c.store.Get(key); ok {
		res := v.(remote.PageResult[T])
		c.metrics.RecordCacheHit(c.kind)
		c.schedulePrefetch(res, req)
		return res, nil
	}
	c.metrics.RecordCacheMiss(c.kind)

	gen := c.store.Generation()
	v, err, _ := c.flight.Do(key, func() (any, error) {
		start := time.Now()
		res, err := c.provider.FetchPage(ctx, req)
		if err != nil {
			return nil, err
		}
		c.metrics.RecordFetch(c.kind, time.Since(start))

		// An invalidation raced this fetch; the result belongs to the
		// previous filter state, serve it but keep it out of the cache.
		if c.store.Generation() == gen {
			c.store.Set(key, res)
		} else {
			c.logger.Debug("stale page fetch not cached",
				zap.String("kind", c.kind),
				zap.Int("page", req.Page),
			)
		}
		return res, nil
	})
	if err != nil {
		c.metrics.RecordFetchError(c.kind)
		c.logger.Warn("page fetch failed",
			zap.String("kind", c.kind),
			zap.Int("page", req.Page),
			zap.Error(err),
		)
		return zero, err
	}

	res := v.(remote.PageResult[T])
	c.schedulePrefetch(res, req)
	return res, nil
}

func (c *Controller[T]) schedulePrefetch(res remote.PageResult[T], req query.PageRequest) {
	if c.prefetch == nil {
		return
	}
	c.prefetch.Schedule(res.TotalPages, req)
}

// Stats returns the aggregate counters for the list, cached under their
// own key and TTL.
func (c *Controller[T]) Stats(ctx context.Context) (remote.Stats, error) {
	key := c.keys.StatsKey(c.kind)

	if v, ok := c.store.Get(key); ok {
		c.metrics.RecordCacheHit(c.kind)
		return v.(remote.Stats), nil
	}
	c.metrics.RecordCacheMiss(c.kind)

	gen := c.store.Generation()
	v, err, _ := c.flight.Do(key, func() (any, error) {
		stats, err := c.provider.FetchStats(ctx)
		if err != nil {
			return nil, err
		}
		if c.store.Generation() == gen {
			c.store.SetWithTTL(key, stats, c.statsTTL)
		}
		return stats, nil
	})
	if err != nil {
		c.metrics.RecordFetchError(c.kind)
		c.logger.Warn("stats fetch failed",
			zap.String("kind", c.kind),
			zap.Error(err),
		)
		return nil, err
	}
	return v.(remote.Stats), nil
}

// RefreshStats drops the cached counters and refetches them. List
// services call it after a mutation changes what the counters count.
func (c *Controller[T]) RefreshStats(ctx context.Context) (remote.Stats, error) {
	c.store.Delete(c.keys.StatsKey(c.kind))
	return c.Stats(ctx)
}

// InvalidateStats drops the cached counters without refetching.
func (c *Controller[T]) InvalidateStats() {
	c.store.Delete(c.keys.StatsKey(c.kind))
}

// InvalidateAll drops every entry in this controller's store. Call it on
// any filter change; in-flight fetches that started before the drop are
// served to their callers but not cached.
func (c *Controller[T]) InvalidateAll() {
	c.store.Clear()
	c.metrics.RecordInvalidation(c.kind)
	c.logger.Debug("cache invalidated", zap.String("kind", c.kind))
}

// Kind returns the list kind this controller serves.
func (c *Controller[T]) Kind() string {
	return c.kind
}
