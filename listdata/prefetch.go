package listdata

import (
	"context"
	"errors"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hanawi96/testiq-sub004/cache"
	"github.com/hanawi96/testiq-sub004/query"
	"github.com/hanawi96/testiq-sub004/remote"
)

// SchedulerConfig configures the background page warmer for one list kind.
type SchedulerConfig struct {
	// Kind namespaces cache keys, logs, and metrics.
	Kind string

	// Concurrency caps how many page fetches run at once. Defaults to 3.
	Concurrency int

	// Interval paces page fetches so a sweep cannot saturate the
	// backend. Defaults to 200ms between fetches.
	Interval time.Duration

	// Burst is how many fetches may fire back to back before pacing
	// kicks in. Defaults to 1.
	Burst int

	// BreakerThreshold is how many consecutive fetch failures open the
	// circuit. Defaults to 5.
	BreakerThreshold uint32

	// BreakerCooldown is how long the circuit stays open before a probe
	// is allowed through. Defaults to 30s.
	BreakerCooldown time.Duration

	// Logger defaults to a nop logger.
	Logger *zap.Logger

	// Metrics may be nil to run unmetered.
	Metrics *Metrics
}

// Validate checks the config. Zero values for the tunables are valid and
// take defaults.
func (c SchedulerConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Kind, validation.Required),
		validation.Field(&c.Concurrency, validation.Min(0)),
		validation.Field(&c.Interval, validation.Min(time.Duration(0))),
	)
}

func (c SchedulerConfig) withDefaults() SchedulerConfig {
	if c.Concurrency <= 0 {
		c.Concurrency = 3
	}
	if c.Interval <= 0 {
		c.Interval = 200 * time.Millisecond
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	if c.BreakerThreshold == 0 {
		c.BreakerThreshold = 5
	}
	if c.BreakerCooldown <= 0 {
		c.BreakerCooldown = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Scheduler warms every page of the active result set in the background,
// so paging through a list after the first page renders is instant.
//
// Each distinct filter combination is swept at most once: the first page
// view under a combination schedules the sweep, later views and racing
// callers are no-ops. A sweep walks pages 1..N through a bounded worker
// pool, paced by a rate limiter, and gives up early when the circuit
// breaker opens.
//
// Warming is best effort. Failures are logged and swallowed, never
// retried, and never surfaced to the operator; a page the sweep missed is
// fetched on demand when the operator reaches it.
type Scheduler[T any] struct {
	kind     string
	store    cache.Store
	provider remote.ListProvider[T]
	keys     *query.KeyBuilder

	ledger   *xsync.MapOf[string, struct{}]
	inflight *xsync.MapOf[string, struct{}]

	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[remote.PageResult[T]]
	concurrency int

	logger  *zap.Logger
	metrics *Metrics

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler wires a scheduler over the given store and provider.
func NewScheduler[T any](cfg SchedulerConfig, store cache.Store, provider remote.ListProvider[T], keys *query.KeyBuilder) (*Scheduler[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	// Sweeps outlive the page view that scheduled them, so they run
	// under the scheduler's own context rather than the caller's.
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler[T]{
		kind:        cfg.Kind,
		store:       store,
		provider:    provider,
		keys:        keys,
		ledger:      xsync.NewMapOf[string, struct{}](),
		inflight:    xsync.NewMapOf[string, struct{}](),
		limiter:     rate.NewLimiter(rate.Every(cfg.Interval), cfg.Burst),
		concurrency: cfg.Concurrency,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		ctx:         ctx,
		cancel:      cancel,
	}
	s.breaker = gobreaker.NewCircuitBreaker[remote.PageResult[T]](gobreaker.Settings{
		Name:    cfg.Kind + "-prefetch",
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerThreshold
		},
	})
	return s, nil
}

// Schedule queues a sweep of pages 1..totalPages for the request's filter
// combination. The first call per combination wins; later calls, including
// racing ones, are no-ops. Schedule never blocks on network work.
func (s *Scheduler[T]) Schedule(totalPages int, req query.PageRequest) {
	if totalPages <= 1 {
		return
	}
	sig := s.keys.Signature(req.Filters)
	if _, swept := s.ledger.LoadOrStore(sig, struct{}{}); swept {
		return
	}

	s.logger.Debug("prefetch sweep scheduled",
		zap.String("kind", s.kind),
		zap.String("signature", sig),
		zap.Int("total_pages", totalPages),
	)

	s.wg.Add(1)
	go s.sweep(totalPages, req)
}

func (s *Scheduler[T]) sweep(totalPages int, req query.PageRequest) {
	defer s.wg.Done()

	gen := s.store.Generation()

	g, ctx := errgroup.WithContext(s.ctx)
	g.SetLimit(s.concurrency)
	for page := 1; page <= totalPages; page++ {
		if ctx.Err() != nil {
			break
		}
		pageReq := req.WithPage(page)
		g.Go(func() error {
			s.warmPage(ctx, gen, pageReq)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Scheduler[T]) warmPage(ctx context.Context, gen uint64, req query.PageRequest) {
	key := s.keys.PageKey(s.kind, req)

	if s.store.Has(key) {
		s.metrics.RecordPrefetch(s.kind, OutcomeSkipped)
		return
	}
	if _, racing := s.inflight.LoadOrStore(key, struct{}{}); racing {
		return
	}
	defer s.inflight.Delete(key)

	if err := s.limiter.Wait(ctx); err != nil {
		return
	}

	res, err := s.breaker.Execute(func() (remote.PageResult[T], error) {
		return s.provider.FetchPage(ctx, req)
	})
	if err != nil {
		s.metrics.RecordPrefetch(s.kind, OutcomeFailed)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			s.logger.Debug("prefetch suppressed, breaker open",
				zap.String("kind", s.kind),
				zap.Int("page", req.Page),
			)
		} else {
			s.logger.Warn("prefetch page failed",
				zap.String("kind", s.kind),
				zap.Int("page", req.Page),
				zap.Error(err),
			)
		}
		return
	}

	// The cache was cleared while this fetch ran; its result describes a
	// result set nobody is looking at anymore.
	if s.store.Generation() != gen {
		s.metrics.RecordPrefetch(s.kind, OutcomeStale)
		return
	}

	s.store.Set(key, res)
	s.metrics.RecordPrefetch(s.kind, OutcomeWarmed)
}

// Swept reports whether the sweep for the filter combination already ran
// or is running.
func (s *Scheduler[T]) Swept(f query.Filters) bool {
	_, ok := s.ledger.Load(s.keys.Signature(f))
	return ok
}

// Reset forgets which filter combinations were swept. The next page view
// per combination schedules a fresh sweep.
func (s *Scheduler[T]) Reset() {
	s.ledger.Clear()
}

// Wait blocks until every scheduled sweep has drained.
func (s *Scheduler[T]) Wait() {
	s.wg.Wait()
}

// Close cancels running sweeps and waits for them to drain. Sweeps
// scheduled after Close mark the ledger but fetch nothing.
func (s *Scheduler[T]) Close() {
	s.cancel()
	s.wg.Wait()
}
