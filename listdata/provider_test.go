package listdata

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hanawi96/testiq-sub004/cache"
	"github.com/hanawi96/testiq-sub004/query"
	"github.com/hanawi96/testiq-sub004/remote"
)

type testArticle struct {
	ID     string
	Title  string
	Status string
}

func testArticleID(a testArticle) string {
	return a.ID
}

// fakeProvider serves a deterministic result set of p.total articles and
// records how often each method is called.
type fakeProvider struct {
	mu       sync.Mutex
	calls    map[string]int
	total    int
	stats    remote.Stats
	fetchErr error
	statsErr error

	// onFetch, when set, runs at the top of every FetchPage. Tests use it
	// to gate or observe in-flight fetches.
	onFetch func(page int)
}

func newFakeProvider(total int) *fakeProvider {
	return &fakeProvider{
		calls: make(map[string]int),
		total: total,
		stats: remote.Stats{"total": total},
	}
}

func (p *fakeProvider) recordCall(method string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[method]++
}

func (p *fakeProvider) getCalls(method string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[method]
}

func (p *fakeProvider) setFetchErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetchErr = err
}

func (p *fakeProvider) setStatsErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statsErr = err
}

func (p *fakeProvider) setStats(s remote.Stats) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats = s
}

func (p *fakeProvider) FetchPage(ctx context.Context, req query.PageRequest) (remote.PageResult[testArticle], error) {
	p.recordCall("FetchPage")
	if p.onFetch != nil {
		p.onFetch(req.Page)
	}

	p.mu.Lock()
	err := p.fetchErr
	total := p.total
	p.mu.Unlock()

	if err != nil {
		return remote.PageResult[testArticle]{}, err
	}
	if err := ctx.Err(); err != nil {
		return remote.PageResult[testArticle]{}, err
	}

	start := (req.Page - 1) * req.Limit
	var items []testArticle
	for i := start; i < total && i < start+req.Limit; i++ {
		items = append(items, testArticle{
			ID:     fmt.Sprintf("a%d", i+1),
			Title:  fmt.Sprintf("Article %d", i+1),
			Status: "draft",
		})
	}
	return remote.NewPageResult(items, total, req.Page, req.Limit), nil
}

func (p *fakeProvider) FetchStats(ctx context.Context) (remote.Stats, error) {
	p.recordCall("FetchStats")

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.statsErr != nil {
		return nil, p.statsErr
	}
	out := make(remote.Stats, len(p.stats))
	for k, v := range p.stats {
		out[k] = v
	}
	return out, nil
}

func (p *fakeProvider) MutateField(ctx context.Context, entityID, field string, value any) (*testArticle, error) {
	p.recordCall("MutateField")
	return nil, nil
}

// newListStore builds a page store with the janitor disabled so tests
// control expiry themselves.
func newListStore(t *testing.T) cache.Store {
	t.Helper()

	store, err := cache.NewMemoryStore(cache.Config{DefaultTTL: time.Minute})
	if err != nil {
		t.Fatalf("NewMemoryStore() error = %v", err)
	}
	t.Cleanup(store.Close)
	return store
}
