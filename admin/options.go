package admin

import (
	"time"

	"go.uber.org/zap"

	"github.com/hanawi96/testiq-sub004/debounce"
	"github.com/hanawi96/testiq-sub004/listdata"
)

// Options tunes one admin list service. The zero value is production
// ready.
type Options struct {
	// PageSize is how many rows each page holds. Defaults to 10.
	PageSize int

	// CacheTTL is the lifetime of cached pages. Zero keeps the store
	// default of two minutes.
	CacheTTL time.Duration

	// SweepInterval is the cadence of the cache janitor. Zero keeps the
	// store default of five minutes.
	SweepInterval time.Duration

	// StatsTTL is the lifetime of the cached aggregate counters.
	// Defaults to one minute.
	StatsTTL time.Duration

	// SearchWindow is how long search input must stay quiet before it
	// commits. Defaults to 300ms.
	SearchWindow time.Duration

	// PrefetchConcurrency and PrefetchInterval tune the background page
	// warmer; zero keeps the scheduler defaults.
	PrefetchConcurrency int
	PrefetchInterval    time.Duration

	// OnError receives user-visible failures that have no caller on the
	// stack: mutation rejections (after the rollback has landed) and load
	// failures from debounced search commits. When nil, such failures are
	// logged instead.
	OnError func(error)

	// Logger defaults to a nop logger.
	Logger *zap.Logger

	// Metrics may be nil to run unmetered.
	Metrics *listdata.Metrics
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = 10
	}
	if o.StatsTTL <= 0 {
		o.StatsTTL = time.Minute
	}
	if o.SearchWindow <= 0 {
		o.SearchWindow = debounce.DefaultWindow
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
