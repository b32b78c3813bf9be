// Package admin assembles the list data layer into ready-made services for
// the admin screens: articles, users, and media. Each service owns its page
// cache, prefetch scheduler, optimistic executor, rendered rows, and search
// debouncing, and exposes the operations a list screen binds to.
//
// # Basic Usage
//
//	provider, _ := restprovider.New[admin.Article](providerCfg)
//	list, _ := admin.NewArticleList(provider, admin.Options{})
//	defer list.Close()
//
//	if err := list.Load(ctx); err != nil {
//		// show the retryable error banner
//	}
//	rows := list.Rows()
//
// Navigation, filtering, and search all funnel through the same invariant:
// any change to the active filter set drops the entire cache generation and
// resets to page 1, so the screen never renders rows from a superseded
// query.
//
// Row edits are optimistic:
//
//	_ = list.SetStatus(ctx, "a1", admin.StatusPublished)
//	list.IsStatusPending("a1") // true until the backend settles
//
// A rejected edit rolls the row back to its previous value before the
// error reaches the sink configured in Options.OnError.
package admin
