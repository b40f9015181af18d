// internal/app/blog_service.go
package app

import (
	"context"
	"regexp"
	"strings"

	"company_site_backend/internal/domain/blog"

	"github.com/sirupsen/logrus"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a title into a URL-safe slug: lowercase, hyphen-separated,
// no leading or trailing hyphens.
func slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

type BlogService struct {
	posts  blog.Repository
	logger *logrus.Logger
}

func NewBlogService(posts blog.Repository, logger *logrus.Logger) *BlogService {
	return &BlogService{posts: posts, logger: logger}
}

func (s *BlogService) ListPosts(ctx context.Context, filter blog.PostFilter) ([]*blog.Post, error) {
	return s.posts.ListPosts(ctx, filter)
}

// GetPostBySlug fetches one post for display and bumps its view counter.
// A failed increment is logged and ignored: the read still succeeds.
func (s *BlogService) GetPostBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	p, err := s.posts.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	views, err := s.posts.IncrementViews(ctx, p.ID)
	if err != nil {
		s.logger.Warnf("Failed to increment views for post %d: %v", p.ID, err)
	} else {
		p.Views = views
	}
	return p, nil
}

func (s *BlogService) GetPost(ctx context.Context, id int64) (*blog.Post, error) {
	return s.posts.GetPostByID(ctx, id)
}

// LikePost bumps the like counter and returns the new total.
func (s *BlogService) LikePost(ctx context.Context, id int64) (int64, error) {
	return s.posts.IncrementLikes(ctx, id)
}

// FeaturedPosts returns up to five published posts marked as featured.
func (s *BlogService) FeaturedPosts(ctx context.Context) ([]*blog.Post, error) {
	return s.posts.ListPosts(ctx, blog.PostFilter{PublishedOnly: true, FeaturedOnly: true, Limit: 5})
}

func (s *BlogService) CreatePost(ctx context.Context, p *blog.Post) error {
	if p.Slug == "" {
		p.Slug = slugify(p.Title)
	}
	if p.Status == "" {
		p.Status = blog.PostDraft
	}
	return s.posts.CreatePost(ctx, p)
}

func (s *BlogService) UpdatePost(ctx context.Context, p *blog.Post) error {
	if p.Slug == "" {
		p.Slug = slugify(p.Title)
	}
	return s.posts.UpdatePost(ctx, p)
}

func (s *BlogService) DeletePost(ctx context.Context, id int64) error {
	return s.posts.DeletePost(ctx, id)
}

func (s *BlogService) ListAuthors(ctx context.Context) ([]*blog.Author, error) {
	return s.posts.ListAuthors(ctx)
}

func (s *BlogService) ListCategories(ctx context.Context) ([]*blog.Category, error) {
	return s.posts.ListCategories(ctx)
}

func (s *BlogService) ListTags(ctx context.Context) ([]*blog.Tag, error) {
	return s.posts.ListTags(ctx)
}
