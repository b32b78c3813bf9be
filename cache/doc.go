// Package cache provides the two caching surfaces the admin list data layer
// is built on.
//
// # Overview
//
// This package exports two interfaces and facade constructors for their
// default implementations:
//
//   - Store: a TTL map for volatile page results, with lazy expiry on read
//     and a periodic sweep
//   - ReferenceCache: a read-through cache for rarely-changing lookup data,
//     with background refresh of hot entries
//
// The split is deliberate. Page results go stale within minutes because
// other editors mutate the same collections, so the Store favours short
// TTLs and a cheap Clear that drops everything on any invalidation.
// Reference data tolerates hour-scale lifetimes and benefits from fetch
// deduplication and early refresh, which the sturdyc-backed ReferenceCache
// provides.
//
// # Basic Usage
//
// Construct one Store per list controller:
//
//	store, err := cache.NewMemoryStore(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	store.Set(key, page)
//	if v, ok := store.Get(key); ok {
//		// serve from cache
//	}
//
// Reference lookups go through the generic wrapper, which keeps the call
// site type safe:
//
//	categories, err := cache.FetchReference(ctx, refCache, "categories",
//		func(ctx context.Context) ([]admin.Category, error) {
//			return loadCategories(ctx)
//		})
//
// # Invalidation
//
// The Store treats invalidation as a generation drop: Clear removes every
// entry and advances Generation. Callers snapshot the generation before a
// slow fetch and compare afterwards, so a response that resolves across an
// invalidation is returned to its caller but never written back into the
// new generation.
//
// # Error Handling
//
// A Store miss is never an error; callers fall through to their provider.
// Constructors validate their configuration and return a descriptive error
// for out-of-range values instead of panicking.
package cache
