// Package remote defines the boundary between the list data layer and the
// backend that owns the records. The data layer never talks HTTP directly;
// it fetches pages, aggregate counters, and field mutations through a
// ListProvider and treats everything behind it as opaque.
package remote

import (
	"context"

	"github.com/hanawi96/testiq-sub004/query"
)

// ListProvider fetches paginated rows and applies single-field mutations
// for one list kind. Implementations must be safe for concurrent use; the
// controller, the prefetch scheduler, and the mutation executor all share
// one instance.
type ListProvider[T any] interface {
	// FetchPage returns one page of the filtered result set.
	FetchPage(ctx context.Context, req query.PageRequest) (PageResult[T], error)

	// FetchStats returns the aggregate counters shown above the list
	// (per-status totals and the like).
	FetchStats(ctx context.Context) (Stats, error)

	// MutateField sets a single field of a single entity. When the backend
	// returns the updated record (it may have derived fields the client
	// cannot compute, like a regenerated slug) the result is non-nil and
	// replaces the optimistic projection.
	MutateField(ctx context.Context, entityID, field string, value any) (*T, error)
}

// PageResult is one page of rows plus the pagination envelope derived from
// the total.
type PageResult[T any] struct {
	Items      []T  `json:"items"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPageResult assembles a PageResult, computing the derived pagination
// fields from total, page, and limit.
func NewPageResult[T any](items []T, total, page, limit int) PageResult[T] {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}
}

// Stats carries the aggregate counters for a list, keyed by counter name
// ("total", "draft", "published", ...). The set of keys is owned by the
// backend; consumers read the ones they know about.
type Stats map[string]int
