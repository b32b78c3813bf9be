package admin

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/hanawi96/testiq-sub004/cache"
	"github.com/hanawi96/testiq-sub004/listdata"
	"github.com/hanawi96/testiq-sub004/query"
	"github.com/hanawi96/testiq-sub004/remote"
)

// listCore owns the plumbing every admin list shares: the page store, the
// prefetch scheduler, the controller, the optimistic executor, the
// rendered rows, and the navigation state (current page and filter set).
type listCore[T any] struct {
	kind     string
	provider remote.ListProvider[T]
	store    cache.Store
	keys     *query.KeyBuilder
	sched    *listdata.Scheduler[T]
	ctrl     *listdata.Controller[T]
	exec     *listdata.Executor[T]
	view     *listdata.Dataset[T]
	logger   *zap.Logger
	onError  func(error)

	mu      sync.Mutex
	nav     uint64
	page    int
	limit   int
	filters query.Filters
	result  remote.PageResult[T]
}

func newListCore[T any](kind string, provider remote.ListProvider[T], idOf func(T) string, opts Options) (*listCore[T], error) {
	opts = opts.withDefaults()

	storeCfg := cache.DefaultConfig()
	if opts.CacheTTL > 0 {
		storeCfg.DefaultTTL = opts.CacheTTL
	}
	if opts.SweepInterval > 0 {
		storeCfg.SweepInterval = opts.SweepInterval
	}
	store, err := cache.NewMemoryStore(storeCfg)
	if err != nil {
		return nil, err
	}

	keys := query.NewKeyBuilder()
	logger := opts.Logger.With(zap.String("list", kind))

	sched, err := listdata.NewScheduler[T](listdata.SchedulerConfig{
		Kind:        kind,
		Concurrency: opts.PrefetchConcurrency,
		Interval:    opts.PrefetchInterval,
		Logger:      logger,
		Metrics:     opts.Metrics,
	}, store, provider, keys)
	if err != nil {
		store.Close()
		return nil, err
	}

	ctrl, err := listdata.NewController[T](listdata.ControllerConfig{
		Kind:     kind,
		StatsTTL: opts.StatsTTL,
		Logger:   logger,
		Metrics:  opts.Metrics,
	}, store, provider, keys, sched)
	if err != nil {
		sched.Close()
		store.Close()
		return nil, err
	}

	return &listCore[T]{
		kind:     kind,
		provider: provider,
		store:    store,
		keys:     keys,
		sched:    sched,
		ctrl:     ctrl,
		exec:     listdata.NewExecutor[T](kind, logger, opts.Metrics),
		view:     listdata.NewDataset(idOf),
		logger:   logger,
		onError:  opts.OnError,
		page:     1,
		limit:    opts.PageSize,
		filters:  query.Filters{},
	}, nil
}

// load fetches the page the navigation state points at and renders it. A
// load that resolves after a newer navigation is discarded; the newer
// navigation's own load owns the view.
func (c *listCore[T]) load(ctx context.Context) error {
	c.mu.Lock()
	nav := c.nav
	req := query.PageRequest{Page: c.page, Limit: c.limit, Filters: c.filters.Clone()}
	c.mu.Unlock()

	res, err := c.ctrl.GetPage(ctx, req)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.nav != nav {
		return nil
	}
	c.result = res
	c.view.SetItems(res.Items)
	return nil
}

func (c *listCore[T]) goToPage(ctx context.Context, page int) error {
	c.mu.Lock()
	c.nav++
	c.page = page
	c.mu.Unlock()

	return c.load(ctx)
}

// setFilter commits one filter change. The whole cache generation is
// dropped and the view resets to page 1.
func (c *listCore[T]) setFilter(ctx context.Context, name, value string) error {
	c.mu.Lock()
	c.nav++
	c.filters = c.filters.With(name, value)
	c.page = 1
	c.mu.Unlock()

	c.ctrl.InvalidateAll()
	return c.load(ctx)
}

// refresh forces fresh data for the current view: cache dropped, prefetch
// ledger forgotten, current page refetched.
func (c *listCore[T]) refresh(ctx context.Context) error {
	c.mu.Lock()
	c.nav++
	c.mu.Unlock()

	c.ctrl.InvalidateAll()
	c.sched.Reset()
	return c.load(ctx)
}

func (c *listCore[T]) notifyError(err error) {
	if c.onError != nil {
		c.onError(err)
		return
	}
	c.logger.Warn("list operation failed", zap.Error(err))
}

func (c *listCore[T]) rows() []T {
	return c.view.Items()
}

func (c *listCore[T]) snapshot() (page int, res remote.PageResult[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page, c.result
}

func (c *listCore[T]) filterValue(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters[name]
}

// close tears the core down: the scheduler stops warming, in-flight
// mutations drain, the store's janitor stops.
func (c *listCore[T]) close() {
	c.sched.Close()
	c.exec.Wait()
	c.store.Close()
}
