// Package listdata is the data layer behind the admin list screens: it
// decides when a page comes from cache, when the backend is called, which
// pages warm in the background, and how a row changes before the backend
// has confirmed anything.
//
// # Overview
//
// Four pieces cooperate per list kind:
//
//   - Controller: serves pages and stats through the cache, collapsing
//     concurrent misses into one provider call.
//   - Scheduler: after the first page of a result set renders, warms the
//     remaining pages once per filter combination.
//   - Executor: applies field mutations to the rendered rows immediately
//     and reconciles with the backend's answer, rolling back on failure.
//   - Dataset and LoadingSet: the rendered rows and the per-entity
//     pending markers the UI binds to.
//
// # Basic Usage
//
//	store, _ := cache.NewMemoryStore(cache.DefaultConfig())
//	keys := query.NewKeyBuilder()
//
//	sched, _ := listdata.NewScheduler[Article](listdata.SchedulerConfig{Kind: "articles"}, store, provider, keys)
//	ctrl, _ := listdata.NewController[Article](listdata.ControllerConfig{Kind: "articles"}, store, provider, keys, sched)
//
//	res, err := ctrl.GetPage(ctx, query.PageRequest{Page: 1, Limit: 10})
//
// The first GetPage per filter combination triggers the background sweep;
// by the time the operator clicks to page 2 it is usually already cached.
//
// # Mutations
//
//	view := listdata.NewDataset(func(a Article) string { return a.ID })
//	view.SetItems(res.Items)
//
//	exec := listdata.NewExecutor[Article]("articles", logger, nil)
//	err = exec.Do(ctx, view, listdata.Update[Article]{
//		EntityID: "a1",
//		Field:    "status",
//		Loading:  pending,
//		Apply:    func(a Article) Article { a.Status = "published"; return a },
//		Call: func(ctx context.Context) (*Article, error) {
//			return provider.MutateField(ctx, "a1", "status", "published")
//		},
//	})
//
// Do returns as soon as the row shows the new value. If the backend
// rejects the change the row snaps back to the exact value it held before
// and OnError fires; the operator never has to guess whether an edit
// stuck.
//
// # Invalidation
//
// Controller.InvalidateAll drops the whole store and advances its
// generation. Fetches and sweeps that started before the drop finish
// against the old generation and are kept out of the cache, so stale
// pages can never be re-cached after a filter change.
package listdata
