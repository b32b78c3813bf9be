package query

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Filters holds the active filter selections for one list view, keyed by
// filter name. An empty value means the filter is not applied; callers do
// not need to strip those entries, canonicalization drops them.
type Filters map[string]string

// Clone returns an independent copy of the filter set.
func (f Filters) Clone() Filters {
	if f == nil {
		return nil
	}
	out := make(Filters, len(f))
	for name, value := range f {
		out[name] = value
	}
	return out
}

// With returns a copy of the filter set with name set to value.
func (f Filters) With(name, value string) Filters {
	out := f.Clone()
	if out == nil {
		out = make(Filters, 1)
	}
	out[name] = value
	return out
}

// PageRequest identifies one page of a filtered list.
type PageRequest struct {
	Page    int
	Limit   int
	Filters Filters
}

// Validate reports whether the request addresses a real page.
func (r PageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page, validation.Min(1)),
		validation.Field(&r.Limit, validation.Min(1)),
	)
}

// WithPage returns a copy of the request addressing a different page of the
// same filtered result set.
func (r PageRequest) WithPage(page int) PageRequest {
	r.Page = page
	return r
}
