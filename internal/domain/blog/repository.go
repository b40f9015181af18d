package blog

import "context"

// PostFilter narrows post listings. Zero values mean "no filter".
type PostFilter struct {
	PublishedOnly bool
	FeaturedOnly  bool
	CategorySlug  string
	TagSlug       string
	Search        string // matched against title and excerpt
	Limit         int
}

// Repository defines persistence operations for blog content.
type Repository interface {
	CreatePost(ctx context.Context, p *Post) error
	GetPostByID(ctx context.Context, id int64) (*Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)
	UpdatePost(ctx context.Context, p *Post) error
	DeletePost(ctx context.Context, id int64) error
	ListPosts(ctx context.Context, filter PostFilter) ([]*Post, error)

	// IncrementViews / IncrementLikes bump the denormalized counters and
	// return the new value.
	IncrementViews(ctx context.Context, id int64) (int64, error)
	IncrementLikes(ctx context.Context, id int64) (int64, error)

	CountPublished(ctx context.Context) (int, error)
	SumPublishedViews(ctx context.Context) (int64, error)

	ListAuthors(ctx context.Context) ([]*Author, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	ListTags(ctx context.Context) ([]*Tag, error)
}
