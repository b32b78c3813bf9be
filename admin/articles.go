package admin

import (
	"context"

	"github.com/hanawi96/testiq-sub004/listdata"
	"github.com/hanawi96/testiq-sub004/remote"
)

// ArticleList is the service behind the articles screen. Row-level edits
// (status, tags, category) apply optimistically and roll back if the
// backend rejects them.
type ArticleList struct {
	*List[Article]

	statusPending   *listdata.LoadingSet
	tagsPending     *listdata.LoadingSet
	categoryPending *listdata.LoadingSet
}

// NewArticleList builds the articles service over the given provider.
func NewArticleList(provider remote.ListProvider[Article], opts Options) (*ArticleList, error) {
	base, err := NewList("articles", provider, func(a Article) string { return a.ID }, opts)
	if err != nil {
		return nil, err
	}
	return &ArticleList{
		List:            base,
		statusPending:   listdata.NewLoadingSet(),
		tagsPending:     listdata.NewLoadingSet(),
		categoryPending: listdata.NewLoadingSet(),
	}, nil
}

// SetStatus moves an article through the publish workflow. The row shows
// the new status immediately; a confirmed change also refreshes the status
// counters above the list.
func (l *ArticleList) SetStatus(ctx context.Context, id, status string) error {
	return l.do(ctx, listdata.Update[Article]{
		EntityID: id,
		Field:    "status",
		Loading:  l.statusPending,
		Apply: func(a Article) Article {
			a.Status = status
			return a
		},
		Revert: func(cur, prev Article) Article {
			cur.Status = prev.Status
			return cur
		},
		Call: func(ctx context.Context) (*Article, error) {
			return l.core.provider.MutateField(ctx, id, "status", status)
		},
		AfterSuccess: l.refreshStats,
	})
}

// SetTags replaces an article's tag list.
func (l *ArticleList) SetTags(ctx context.Context, id string, tags []string) error {
	tags = append([]string(nil), tags...)
	return l.do(ctx, listdata.Update[Article]{
		EntityID: id,
		Field:    "tags",
		Loading:  l.tagsPending,
		Apply: func(a Article) Article {
			a.Tags = tags
			return a
		},
		Revert: func(cur, prev Article) Article {
			cur.Tags = prev.Tags
			return cur
		},
		Call: func(ctx context.Context) (*Article, error) {
			return l.core.provider.MutateField(ctx, id, "tags", tags)
		},
	})
}

// SetCategory moves an article to another category.
func (l *ArticleList) SetCategory(ctx context.Context, id, categoryID string) error {
	return l.do(ctx, listdata.Update[Article]{
		EntityID: id,
		Field:    "category_id",
		Loading:  l.categoryPending,
		Apply: func(a Article) Article {
			a.CategoryID = categoryID
			return a
		},
		Revert: func(cur, prev Article) Article {
			cur.CategoryID = prev.CategoryID
			return cur
		},
		Call: func(ctx context.Context) (*Article, error) {
			return l.core.provider.MutateField(ctx, id, "category_id", categoryID)
		},
	})
}

// FilterStatus narrows the list to one workflow status. An empty status
// shows everything.
func (l *ArticleList) FilterStatus(ctx context.Context, status string) error {
	return l.SetFilter(ctx, "status", status)
}

// FilterCategory narrows the list to one category.
func (l *ArticleList) FilterCategory(ctx context.Context, categoryID string) error {
	return l.SetFilter(ctx, "category_id", categoryID)
}

// IsStatusPending reports whether a status change for the article is still
// waiting on the backend. The screen disables the status control while it
// is.
func (l *ArticleList) IsStatusPending(id string) bool {
	return l.statusPending.Contains(id)
}

// IsTagsPending reports whether a tag edit for the article is in flight.
func (l *ArticleList) IsTagsPending(id string) bool {
	return l.tagsPending.Contains(id)
}

// IsCategoryPending reports whether a category move for the article is in
// flight.
func (l *ArticleList) IsCategoryPending(id string) bool {
	return l.categoryPending.Contains(id)
}
