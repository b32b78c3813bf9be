// Package query models the state that identifies one page of a filtered
// admin list and turns that state into canonical cache keys.
//
// Two requests that describe the same logical query must always map to the
// same key, regardless of filter ordering, name spelling, or empty entries.
// Everything downstream (the page cache, the prefetch ledger, request
// deduplication) relies on that property.
package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator delimits the segments of a cache key.
const KeySeparator = "::"

// KeyBuilder produces cache keys and filter signatures for paginated list
// state. It is stateless and safe for concurrent use.
type KeyBuilder struct{}

// NewKeyBuilder creates a key builder.
func NewKeyBuilder() *KeyBuilder {
	return &KeyBuilder{}
}

// PageKey returns the cache key for one page of a filtered list.
// The key embeds the list kind, page number, page size, and the canonical
// form of the filters.
func (b *KeyBuilder) PageKey(kind string, req PageRequest) string {
	parts := make([]string, 0, 4)
	parts = append(parts, kind, "page="+strconv.Itoa(req.Page), "limit="+strconv.Itoa(req.Limit))
	if canon := Canonical(req.Filters); canon != "" {
		parts = append(parts, canon)
	}
	return strings.Join(parts, KeySeparator)
}

// StatsKey returns the cache key for the aggregate counters of a list kind.
func (b *KeyBuilder) StatsKey(kind string) string {
	return kind + KeySeparator + "stats"
}

// Signature condenses a filter set into a short stable token. The prefetch
// ledger keys on it so the page sweep runs once per distinct filter
// combination rather than once per page view.
func (b *KeyBuilder) Signature(f Filters) string {
	return strconv.FormatUint(xxhash.Sum64String(Canonical(f)), 16)
}

// Canonical returns the deterministic textual form of a filter set: names
// normalized to snake_case, empty values dropped, values escaped so user
// input cannot collide with key syntax, pairs sorted. The empty filter set
// canonicalizes to "".
func Canonical(f Filters) string {
	if len(f) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(f))
	for name, value := range f {
		if value == "" {
			continue
		}
		pairs = append(pairs, toSnake(name)+"="+url.QueryEscape(value))
	}
	if len(pairs) == 0 {
		return ""
	}

	sort.Strings(pairs)
	return strings.Join(pairs, "&")
}
