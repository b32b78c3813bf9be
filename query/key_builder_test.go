package query

import (
	"strings"
	"testing"

	"github.com/hanawi96/testiq-sub004/pkg/testsupport"
)

func TestKeyBuilder_PageKey(t *testing.T) {
	kb := NewKeyBuilder()

	tests := []struct {
		name string
		kind string
		req  PageRequest
		want string
	}{
		{
			name: "no filters",
			kind: "articles",
			req:  PageRequest{Page: 1, Limit: 10},
			want: "articles::page=1::limit=10",
		},
		{
			name: "single filter",
			kind: "articles",
			req:  PageRequest{Page: 2, Limit: 10, Filters: Filters{"status": "published"}},
			want: "articles::page=2::limit=10::status=published",
		},
		{
			name: "empty filter values dropped",
			kind: "articles",
			req:  PageRequest{Page: 2, Limit: 10, Filters: Filters{"status": "active", "search": ""}},
			want: "articles::page=2::limit=10::status=active",
		},
		{
			name: "all filter values empty",
			kind: "users",
			req:  PageRequest{Page: 1, Limit: 25, Filters: Filters{"role": "", "search": ""}},
			want: "users::page=1::limit=25",
		},
		{
			name: "filter values escaped",
			kind: "articles",
			req:  PageRequest{Page: 1, Limit: 10, Filters: Filters{"search": "go tips"}},
			want: "articles::page=1::limit=10::search=go+tips",
		},
		{
			name: "filter names normalized",
			kind: "media",
			req:  PageRequest{Page: 3, Limit: 50, Filters: Filters{"mimeType": "image/png"}},
			want: "media::page=3::limit=50::mime_type=image%2Fpng",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kb.PageKey(tt.kind, tt.req)
			if got != tt.want {
				t.Errorf("PageKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyBuilder_PageKeyOrderIndependent(t *testing.T) {
	kb := NewKeyBuilder()

	a := PageRequest{Page: 2, Limit: 10, Filters: Filters{"status": "active", "search": ""}}
	b := PageRequest{Page: 2, Limit: 10, Filters: Filters{"search": "", "status": "active"}}

	// Repeat to shake out map iteration order effects.
	for i := 0; i < 50; i++ {
		ka := kb.PageKey("articles", a)
		kc := kb.PageKey("articles", b)
		if ka != kc {
			t.Fatalf("keys diverge for equivalent filter sets: %q vs %q", ka, kc)
		}
	}
}

func TestKeyBuilder_StatsKey(t *testing.T) {
	kb := NewKeyBuilder()

	if got, want := kb.StatsKey("articles"), "articles::stats"; got != want {
		t.Errorf("StatsKey() = %v, want %v", got, want)
	}
}

func TestKeyBuilder_Signature(t *testing.T) {
	kb := NewKeyBuilder()

	t.Run("stable across orderings", func(t *testing.T) {
		a := kb.Signature(Filters{"status": "active", "category_id": "c9"})
		b := kb.Signature(Filters{"category_id": "c9", "status": "active"})
		if a != b {
			t.Errorf("signatures diverge: %q vs %q", a, b)
		}
	})

	t.Run("stable across name spellings", func(t *testing.T) {
		a := kb.Signature(Filters{"categoryId": "c9"})
		b := kb.Signature(Filters{"category_id": "c9"})
		if a != b {
			t.Errorf("signatures diverge: %q vs %q", a, b)
		}
	})

	t.Run("distinct filters distinct signatures", func(t *testing.T) {
		a := kb.Signature(Filters{"status": "active"})
		b := kb.Signature(Filters{"status": "draft"})
		if a == b {
			t.Errorf("signature collision for different filters: %q", a)
		}
	})

	t.Run("empty equals nil", func(t *testing.T) {
		if kb.Signature(nil) != kb.Signature(Filters{}) {
			t.Error("nil and empty filter sets should share a signature")
		}
	})
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    string
	}{
		{name: "nil", filters: nil, want: ""},
		{name: "empty", filters: Filters{}, want: ""},
		{name: "only empty values", filters: Filters{"status": ""}, want: ""},
		{name: "single", filters: Filters{"status": "active"}, want: "status=active"},
		{name: "sorted pairs", filters: Filters{"b": "2", "a": "1"}, want: "a=1&b=2"},
		{name: "escaped comma", filters: Filters{"tags": "a,b"}, want: "tags=a%2Cb"},
		{name: "normalized name", filters: Filters{"categoryId": "c9"}, want: "category_id=c9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Canonical(tt.filters)
			if got != tt.want {
				t.Errorf("Canonical() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"status", "status"},
		{"categoryId", "category_id"},
		{"CategoryID", "category_id"},
		{"mimeType", "mime_type"},
		{"country-code", "country_code"},
		{"search term", "search_term"},
		{"HTTPStatus", "http_status"},
		{"__weird__", "weird"},
		{"page2", "page2"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := toSnake(tt.in); got != tt.want {
				t.Errorf("toSnake(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestKeyBuilder_Golden pins the full key format so accidental format changes
// show up as a diff instead of silently orphaning every cached entry.
func TestKeyBuilder_Golden(t *testing.T) {
	kb := NewKeyBuilder()

	inputs := []struct {
		kind string
		req  PageRequest
	}{
		{"articles", PageRequest{Page: 1, Limit: 10}},
		{"articles", PageRequest{Page: 2, Limit: 10, Filters: Filters{"status": "published"}}},
		{"articles", PageRequest{Page: 2, Limit: 10, Filters: Filters{"status": "published", "search": "go tips"}}},
		{"users", PageRequest{Page: 1, Limit: 25, Filters: Filters{"role": "", "countryCode": "VN"}}},
		{"media", PageRequest{Page: 3, Limit: 50, Filters: Filters{"mimeType": "image/png", "tags": "hero,banner"}}},
	}

	var b strings.Builder
	for _, in := range inputs {
		b.WriteString(kb.PageKey(in.kind, in.req))
		b.WriteByte('\n')
	}

	testsupport.CompareWithGolden(t, testsupport.GoldenPath("page_keys.golden"), []byte(b.String()))
}
