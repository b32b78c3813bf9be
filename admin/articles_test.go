package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanawi96/testiq-sub004/remote"
)

func newArticleList(t *testing.T, rows []Article, opts Options) (*ArticleList, *fakeProvider[Article]) {
	t.Helper()

	provider := newRowProvider(rows)
	lst, err := NewArticleList(provider, opts)
	require.NoError(t, err)
	t.Cleanup(lst.Close)
	return lst, provider
}

func articleByID(t *testing.T, rows []Article, id string) Article {
	t.Helper()
	for _, a := range rows {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("article %q not rendered", id)
	return Article{}
}

func TestArticleList_SetStatusOptimisticThenConfirmed(t *testing.T) {
	rows := fixtureArticles(t)[:8]
	lst, provider := newArticleList(t, rows, fastOptions())

	hold := make(chan struct{})
	provider.onMutate = func() { <-hold }
	provider.mutate = func(id, field string, value any) (*Article, error) {
		for _, a := range rows {
			if a.ID != id {
				continue
			}
			confirmed := a
			confirmed.Status = value.(string)
			confirmed.Slug = confirmed.Slug + "-v2"
			return &confirmed, nil
		}
		return nil, nil
	}

	ctx := context.Background()
	require.NoError(t, lst.Load(ctx))
	require.NoError(t, lst.SetStatus(ctx, "a4", StatusPublished))

	// Before the backend answers: projection rendered, control disabled.
	got := articleByID(t, lst.Rows(), "a4")
	assert.Equal(t, StatusPublished, got.Status, "status should render before the backend confirms")
	assert.True(t, lst.IsStatusPending("a4"))

	close(hold)
	require.Eventually(t, func() bool {
		return !lst.IsStatusPending("a4")
	}, waitFor, 5*time.Millisecond)

	got = articleByID(t, lst.Rows(), "a4")
	assert.Equal(t, StatusPublished, got.Status)
	assert.Equal(t, "how-we-score-and-normalize-your-results-v2", got.Slug,
		"the confirmed document should replace the projection")

	// A confirmed status change refreshes the counters above the list.
	require.Eventually(t, func() bool {
		return provider.getCalls("FetchStats") == 1
	}, waitFor, 5*time.Millisecond)
}

func TestArticleList_SetStatusRollsBackOnRejection(t *testing.T) {
	opts := fastOptions()
	errs := make(chan error, 1)
	opts.OnError = func(err error) { errs <- err }

	rows := fixtureArticles(t)[:8]
	lst, provider := newArticleList(t, rows, opts)
	provider.mutate = func(id, field string, value any) (*Article, error) {
		return nil, remote.NewError(remote.OpMutateField, 422, "status transition not allowed", nil)
	}

	ctx := context.Background()
	require.NoError(t, lst.Load(ctx))

	before := articleByID(t, lst.Rows(), "a1")
	require.Equal(t, StatusPublished, before.Status)

	require.NoError(t, lst.SetStatus(ctx, "a1", StatusArchived))

	select {
	case err := <-errs:
		assert.Contains(t, err.Error(), "status transition not allowed")
	case <-time.After(waitFor):
		t.Fatal("rejection never reached the OnError sink")
	}

	require.Eventually(t, func() bool {
		return !lst.IsStatusPending("a1")
	}, waitFor, 5*time.Millisecond)

	after := articleByID(t, lst.Rows(), "a1")
	assert.Equal(t, before, after, "rollback should restore the row exactly")
	assert.Equal(t, 0, provider.getCalls("FetchStats"), "a rejected change must not refresh the counters")
}

func TestArticleList_SetTags(t *testing.T) {
	rows := fixtureArticles(t)[:8]
	lst, provider := newArticleList(t, rows, fastOptions())

	ctx := context.Background()
	require.NoError(t, lst.Load(ctx))

	tags := []string{"iq", "featured"}
	require.NoError(t, lst.SetTags(ctx, "a1", tags))

	// The caller's slice must not alias the rendered row.
	tags[0] = "mutated"

	require.Eventually(t, func() bool {
		return !lst.IsTagsPending("a1")
	}, waitFor, 5*time.Millisecond)

	got := articleByID(t, lst.Rows(), "a1")
	assert.Equal(t, []string{"iq", "featured"}, got.Tags)

	m, ok := provider.lastMutation()
	require.True(t, ok)
	assert.Equal(t, "tags", m.field)
	assert.Equal(t, "a1", m.entityID)
}

func TestArticleList_SetCategoryOnRowNotRendered(t *testing.T) {
	lst, provider := newArticleList(t, fixtureArticles(t)[:8], fastOptions())

	ctx := context.Background()
	require.NoError(t, lst.Load(ctx))

	// a11 exists in the backend but is not on the rendered page.
	require.NoError(t, lst.SetCategory(ctx, "a11", "c1"))

	assert.Equal(t, 0, provider.getCalls("MutateField"), "no backend call for a row that is not rendered")
	assert.False(t, lst.IsCategoryPending("a11"))
}

func TestArticleList_Filters(t *testing.T) {
	lst, provider := newArticleList(t, fixtureArticles(t)[:8], fastOptions())
	ctx := context.Background()

	require.NoError(t, lst.FilterStatus(ctx, StatusDraft))
	require.NoError(t, lst.FilterCategory(ctx, "c2"))

	assert.Equal(t, StatusDraft, lst.FilterValue("status"))
	assert.Equal(t, "c2", lst.FilterValue("category_id"))

	last := provider.lastRequest()
	assert.Equal(t, StatusDraft, last.Filters["status"])
	assert.Equal(t, "c2", last.Filters["category_id"])
}
