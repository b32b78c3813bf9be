package admin

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/hanawi96/testiq-sub004/pkg/testsupport"
	"github.com/hanawi96/testiq-sub004/query"
	"github.com/hanawi96/testiq-sub004/remote"
)

// mutation is one recorded MutateField call.
type mutation struct {
	entityID string
	field    string
	value    any
}

// fakeProvider serves pages sliced out of a fixed row set and records
// every request it sees. Filters are recorded, never applied, so call
// counts stay deterministic regardless of filter state.
type fakeProvider[T any] struct {
	mu        sync.Mutex
	rows      []T
	stats     remote.Stats
	calls     map[string]int
	requests  []query.PageRequest
	mutations []mutation
	fetchErr  error

	// mutate, when set, answers MutateField. The default confirms with
	// a nil document, which keeps the optimistic projection.
	mutate func(entityID, field string, value any) (*T, error)

	// onMutate, when set, runs at the top of every MutateField. Tests
	// use it to hold a mutation open while they inspect pending state.
	onMutate func()
}

func newRowProvider[T any](rows []T) *fakeProvider[T] {
	return &fakeProvider[T]{
		rows:  rows,
		stats: remote.Stats{"total": len(rows)},
		calls: make(map[string]int),
	}
}

func (p *fakeProvider[T]) getCalls(method string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[method]
}

func (p *fakeProvider[T]) setFetchErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetchErr = err
}

func (p *fakeProvider[T]) lastRequest() query.PageRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.requests) == 0 {
		return query.PageRequest{}
	}
	return p.requests[len(p.requests)-1]
}

func (p *fakeProvider[T]) lastMutation() (mutation, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.mutations) == 0 {
		return mutation{}, false
	}
	return p.mutations[len(p.mutations)-1], true
}

// requestsWithFilter returns the requests whose filter set carries the
// given name/value pair.
func (p *fakeProvider[T]) requestsWithFilter(name, value string) []query.PageRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []query.PageRequest
	for _, req := range p.requests {
		if req.Filters[name] == value {
			out = append(out, req)
		}
	}
	return out
}

func (p *fakeProvider[T]) FetchPage(ctx context.Context, req query.PageRequest) (remote.PageResult[T], error) {
	p.mu.Lock()
	p.calls["FetchPage"]++
	p.requests = append(p.requests, query.PageRequest{
		Page:    req.Page,
		Limit:   req.Limit,
		Filters: req.Filters.Clone(),
	})
	err := p.fetchErr
	rows := p.rows
	p.mu.Unlock()

	if err != nil {
		return remote.PageResult[T]{}, err
	}
	if err := ctx.Err(); err != nil {
		return remote.PageResult[T]{}, err
	}

	start := (req.Page - 1) * req.Limit
	var items []T
	for i := start; i < len(rows) && i < start+req.Limit; i++ {
		items = append(items, rows[i])
	}
	return remote.NewPageResult(items, len(rows), req.Page, req.Limit), nil
}

func (p *fakeProvider[T]) FetchStats(ctx context.Context) (remote.Stats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls["FetchStats"]++

	out := make(remote.Stats, len(p.stats))
	for k, v := range p.stats {
		out[k] = v
	}
	return out, nil
}

func (p *fakeProvider[T]) MutateField(ctx context.Context, entityID, field string, value any) (*T, error) {
	p.mu.Lock()
	p.calls["MutateField"]++
	p.mutations = append(p.mutations, mutation{entityID: entityID, field: field, value: value})
	fn := p.mutate
	hook := p.onMutate
	p.mu.Unlock()

	if hook != nil {
		hook()
	}
	if fn != nil {
		return fn(entityID, field, value)
	}
	return nil, nil
}

// fixtureArticles loads the twelve-article fixture shared across the
// admin tests. Two pages at the default page size of ten.
func fixtureArticles(t *testing.T) []Article {
	t.Helper()

	var articles []Article
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath("articles.json"), &articles)
	if len(articles) != 12 {
		t.Fatalf("fixture holds %d articles, want 12", len(articles))
	}
	return articles
}

func makeUsers(n int) []User {
	users := make([]User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, User{
			ID:          fmt.Sprintf("u%d", i+1),
			Email:       fmt.Sprintf("user%d@testiq.dev", i+1),
			DisplayName: fmt.Sprintf("User %d", i+1),
			Role:        RoleViewer,
			Status:      UserActive,
			CountryCode: "vn",
			TestsTaken:  i,
		})
	}
	return users
}

func makeMedia(n int) []MediaFile {
	files := make([]MediaFile, 0, n)
	for i := 0; i < n; i++ {
		files = append(files, MediaFile{
			ID:       fmt.Sprintf("m%d", i+1),
			FileName: fmt.Sprintf("chart-%d.png", i+1),
			MimeType: "image/png",
			AltText:  fmt.Sprintf("Score chart %d", i+1),
			Tags:     []string{"charts"},
		})
	}
	return files
}
