package admin

import (
	"context"
	"errors"

	"github.com/hanawi96/testiq-sub004/cache"
	"github.com/hanawi96/testiq-sub004/query"
	"github.com/hanawi96/testiq-sub004/remote"
)

// Reference data is small enough to fetch whole; one page covers it.
const referencePageLimit = 500

// Cache keys for the reference lookups.
const (
	categoriesKey = "categories"
	countriesKey  = "countries"
)

// Lookups serves the reference data the filter dropdowns are built from:
// the category tree and the country list. Both change rarely, so they live
// in the hour-scale reference cache instead of the page store, and hot
// entries refresh in the background before they expire.
type Lookups struct {
	ref        cache.ReferenceCache
	categories remote.ListProvider[Category]
	countries  remote.ListProvider[Country]
}

// NewLookups wires the lookup service over the shared reference cache and
// the providers for the two reference collections.
func NewLookups(ref cache.ReferenceCache, categories remote.ListProvider[Category], countries remote.ListProvider[Country]) (*Lookups, error) {
	if ref == nil {
		return nil, errors.New("admin: NewLookups requires a reference cache")
	}
	if categories == nil || countries == nil {
		return nil, errors.New("admin: NewLookups requires both reference providers")
	}
	return &Lookups{ref: ref, categories: categories, countries: countries}, nil
}

// Categories returns the category tree, cached for hours.
func (l *Lookups) Categories(ctx context.Context) ([]Category, error) {
	return cache.FetchReference(ctx, l.ref, categoriesKey, func(ctx context.Context) ([]Category, error) {
		return fetchAll(ctx, l.categories)
	})
}

// Countries returns the country list, cached for hours.
func (l *Lookups) Countries(ctx context.Context) ([]Country, error) {
	return cache.FetchReference(ctx, l.ref, countriesKey, func(ctx context.Context) ([]Country, error) {
		return fetchAll(ctx, l.countries)
	})
}

// InvalidateCategories drops the cached category tree so the next read
// refetches. Called after an editor changes the categories themselves.
func (l *Lookups) InvalidateCategories(ctx context.Context) error {
	return l.ref.Delete(ctx, categoriesKey)
}

// InvalidateCountries drops the cached country list.
func (l *Lookups) InvalidateCountries(ctx context.Context) error {
	return l.ref.Delete(ctx, countriesKey)
}

// fetchAll pulls a reference collection through the same provider boundary
// the paginated lists use, as a single unfiltered page.
func fetchAll[T any](ctx context.Context, provider remote.ListProvider[T]) ([]T, error) {
	res, err := provider.FetchPage(ctx, query.PageRequest{Page: 1, Limit: referencePageLimit})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}
