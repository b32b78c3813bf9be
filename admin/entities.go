package admin

import "time"

// Article workflow statuses.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
	StatusArchived  = "archived"
)

// User roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// User account states.
const (
	UserActive    = "active"
	UserSuspended = "suspended"
)

// Article is one row of the articles list.
type Article struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Status     string    `json:"status"`
	CategoryID string    `json:"category_id"`
	Tags       []string  `json:"tags"`
	AuthorID   string    `json:"author_id"`
	ViewCount  int       `json:"view_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// User is one row of the user management list.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CountryCode string    `json:"country_code"`
	TestsTaken  int       `json:"tests_taken"`
	CreatedAt   time.Time `json:"created_at"`
}

// MediaFile is one row of the media library list.
type MediaFile struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	AltText    string    `json:"alt_text"`
	Tags       []string  `json:"tags"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Category is reference data for the article filter dropdowns.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Country is reference data for the user list filters.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
