package admin

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/hanawi96/testiq-sub004/debounce"
	"github.com/hanawi96/testiq-sub004/listdata"
	"github.com/hanawi96/testiq-sub004/remote"
)

// PageInfo is the pagination state a list screen renders next to the rows.
// All fields are zero until the first successful Load.
type PageInfo struct {
	Page       int
	TotalPages int
	Total      int
	HasNext    bool
	HasPrev    bool
}

// List is the generic service behind one admin list screen. It owns the
// page cache, the prefetch scheduler, the optimistic executor, the rendered
// rows, and a debounced search input, and exposes the operations the screen
// binds to: load, paginate, filter, search, and refresh.
//
// The typed services (ArticleList, UserList, MediaList) embed a List and
// add their row-level field mutations on top.
type List[T any] struct {
	core   *listCore[T]
	search *debounce.Input
}

// NewList builds a list service for one backend collection. kind names the
// collection ("articles"); idOf extracts the ID rows are addressed by.
func NewList[T any](kind string, provider remote.ListProvider[T], idOf func(T) string, opts Options) (*List[T], error) {
	if provider == nil {
		return nil, errors.New("admin: NewList requires a provider")
	}
	if idOf == nil {
		return nil, errors.New("admin: NewList requires idOf")
	}

	core, err := newListCore(kind, provider, idOf, opts)
	if err != nil {
		return nil, err
	}

	l := &List[T]{core: core}
	l.search = debounce.NewInput(opts.SearchWindow, func(value string) {
		// Committed off a timer, so there is no caller to hand the error
		// to; it goes to the configured sink instead.
		if err := core.setFilter(context.Background(), "search", value); err != nil {
			core.notifyError(err)
		}
	})
	return l, nil
}

// Load fetches the current page and renders it. The first load of a filter
// combination also starts warming the remaining pages in the background.
func (l *List[T]) Load(ctx context.Context) error {
	return l.core.load(ctx)
}

// Rows returns a copy of the rendered rows.
func (l *List[T]) Rows() []T {
	return l.core.rows()
}

// PageInfo returns the pagination state of the rendered page.
func (l *List[T]) PageInfo() PageInfo {
	_, res := l.core.snapshot()
	return PageInfo{
		Page:       res.Page,
		TotalPages: res.TotalPages,
		Total:      res.Total,
		HasNext:    res.HasNext,
		HasPrev:    res.HasPrev,
	}
}

// GoToPage navigates to the given page of the current result set.
func (l *List[T]) GoToPage(ctx context.Context, page int) error {
	return l.core.goToPage(ctx, page)
}

// NextPage navigates one page forward. On the last page it is a no-op;
// after the background warm has run the new page usually renders without a
// network round trip.
func (l *List[T]) NextPage(ctx context.Context) error {
	_, res := l.core.snapshot()
	if !res.HasNext {
		return nil
	}
	return l.core.goToPage(ctx, res.Page+1)
}

// PrevPage navigates one page back. On the first page it is a no-op.
func (l *List[T]) PrevPage(ctx context.Context) error {
	_, res := l.core.snapshot()
	if !res.HasPrev {
		return nil
	}
	return l.core.goToPage(ctx, res.Page-1)
}

// SetFilter commits one filter change: the cache generation is dropped,
// the view resets to page 1, and the page is refetched. An empty value
// clears the filter.
func (l *List[T]) SetFilter(ctx context.Context, name, value string) error {
	return l.core.setFilter(ctx, name, value)
}

// FilterValue returns the active value of one filter, or "" when it is not
// applied.
func (l *List[T]) FilterValue(name string) string {
	return l.core.filterValue(name)
}

// Search records a keystroke of the search box. Rapid calls collapse into
// a single committed filter change carrying the last value; the commit
// resets the view to page 1 like any other filter change.
func (l *List[T]) Search(value string) {
	l.search.Set(value)
}

// FlushSearch commits the pending search value now instead of waiting out
// the debounce window. Screens call it on an explicit submit.
func (l *List[T]) FlushSearch() {
	l.search.Flush()
}

// Refresh forces fresh data for the current view: cache dropped, prefetch
// ledger forgotten, current page refetched.
func (l *List[T]) Refresh(ctx context.Context) error {
	return l.core.refresh(ctx)
}

// Stats returns the aggregate counters shown above the list, cached with
// their own TTL.
func (l *List[T]) Stats(ctx context.Context) (remote.Stats, error) {
	return l.core.ctrl.Stats(ctx)
}

// Kind returns the collection this list serves.
func (l *List[T]) Kind() string {
	return l.core.kind
}

// Close stops the search debouncer and the background machinery and waits
// for in-flight mutations to settle. The list is not usable after Close.
func (l *List[T]) Close() {
	l.search.Stop()
	l.core.close()
}

// do runs one optimistic field mutation against the rendered rows. A row
// that left the view between render and click is skipped silently; the
// operator is already looking at something else.
func (l *List[T]) do(ctx context.Context, u listdata.Update[T]) error {
	if u.OnError == nil {
		u.OnError = l.core.notifyError
	}
	err := l.core.exec.Do(ctx, l.core.view, u)
	if errors.Is(err, listdata.ErrNotInView) {
		return nil
	}
	return err
}

// refreshStats refetches the aggregate counters after a mutation changed
// what they count. Runs on the mutation's settle path, so failures only
// log; the stale counters expire on their own TTL anyway.
func (l *List[T]) refreshStats() {
	if _, err := l.core.ctrl.RefreshStats(context.Background()); err != nil {
		l.core.logger.Warn("stats refresh failed", zap.Error(err))
	}
}
