package blog

import (
	"database/sql"
	"time"
)

// PostStatus is the publication state of a blog post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
	PostArchived  PostStatus = "archived"
)

// Author writes blog posts.
type Author struct {
	ID        int64
	Name      string
	AvatarURL sql.NullString
	Bio       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Category groups posts. Slug is derived from the name when absent.
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	CreatedAt   time.Time
}

// Tag labels posts.
type Tag struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
}

// Post is a blog entry with its denormalized view/like counters.
type Post struct {
	ID          int64
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	AuthorID    int64
	CategoryID  sql.NullInt64
	Tags        []Tag
	ImageURL    sql.NullString
	ReadTime    int
	Featured    bool
	Likes       int64
	Views       int64
	Status      PostStatus
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsPublished reports whether the post is publicly visible.
func (p *Post) IsPublished() bool {
	return p.Status == PostPublished && p.PublishedAt.Valid
}
