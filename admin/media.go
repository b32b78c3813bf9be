package admin

import (
	"context"

	"github.com/hanawi96/testiq-sub004/listdata"
	"github.com/hanawi96/testiq-sub004/remote"
)

// MediaList is the service behind the media library screen. Media edits
// never touch the aggregate counters, so no mutation here refreshes stats.
type MediaList struct {
	*List[MediaFile]

	altTextPending *listdata.LoadingSet
	tagsPending    *listdata.LoadingSet
}

// NewMediaList builds the media service over the given provider.
func NewMediaList(provider remote.ListProvider[MediaFile], opts Options) (*MediaList, error) {
	base, err := NewList("media", provider, func(m MediaFile) string { return m.ID }, opts)
	if err != nil {
		return nil, err
	}
	return &MediaList{
		List:           base,
		altTextPending: listdata.NewLoadingSet(),
		tagsPending:    listdata.NewLoadingSet(),
	}, nil
}

// SetAltText updates a file's alternative text.
func (l *MediaList) SetAltText(ctx context.Context, id, altText string) error {
	return l.do(ctx, listdata.Update[MediaFile]{
		EntityID: id,
		Field:    "alt_text",
		Loading:  l.altTextPending,
		Apply: func(m MediaFile) MediaFile {
			m.AltText = altText
			return m
		},
		Revert: func(cur, prev MediaFile) MediaFile {
			cur.AltText = prev.AltText
			return cur
		},
		Call: func(ctx context.Context) (*MediaFile, error) {
			return l.core.provider.MutateField(ctx, id, "alt_text", altText)
		},
	})
}

// SetTags replaces a file's tag list.
func (l *MediaList) SetTags(ctx context.Context, id string, tags []string) error {
	tags = append([]string(nil), tags...)
	return l.do(ctx, listdata.Update[MediaFile]{
		EntityID: id,
		Field:    "tags",
		Loading:  l.tagsPending,
		Apply: func(m MediaFile) MediaFile {
			m.Tags = tags
			return m
		},
		Revert: func(cur, prev MediaFile) MediaFile {
			cur.Tags = prev.Tags
			return cur
		},
		Call: func(ctx context.Context) (*MediaFile, error) {
			return l.core.provider.MutateField(ctx, id, "tags", tags)
		},
	})
}

// FilterMimeType narrows the list to one MIME type.
func (l *MediaList) FilterMimeType(ctx context.Context, mimeType string) error {
	return l.SetFilter(ctx, "mime_type", mimeType)
}

// IsAltTextPending reports whether an alt text edit for the file is in
// flight.
func (l *MediaList) IsAltTextPending(id string) bool {
	return l.altTextPending.Contains(id)
}

// IsTagsPending reports whether a tag edit for the file is in flight.
func (l *MediaList) IsTagsPending(id string) bool {
	return l.tagsPending.Contains(id)
}
