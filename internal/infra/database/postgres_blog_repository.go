// internal/infra/database/postgres_blog_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"company_site_backend/internal/domain/blog"

	"github.com/lib/pq"
)

// Custom errors specific to the blog repository
var ErrPostNotFound = fmt.Errorf("blog post not found")

type PostgresBlogRepository struct {
	db *sql.DB
}

func NewPostgresBlogRepository(db *sql.DB) *PostgresBlogRepository {
	return &PostgresBlogRepository{db: db}
}

const postColumns = `p.id, p.title, p.slug, p.excerpt, p.content, p.author_id, p.category_id,
	p.image_url, p.read_time, p.featured, p.likes, p.views, p.status, p.published_at,
	p.created_at, p.updated_at`

func scanPost(row interface{ Scan(...any) error }) (*blog.Post, error) {
	p := &blog.Post{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.AuthorID, &p.CategoryID,
		&p.ImageURL, &p.ReadTime, &p.Featured, &p.Likes, &p.Views, &p.Status, &p.PublishedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresBlogRepository) CreatePost(ctx context.Context, p *blog.Post) error {
	query := `INSERT INTO blog_posts (title, slug, excerpt, content, author_id, category_id,
	               image_url, read_time, featured, status, published_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	           RETURNING id, likes, views, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		p.Title, p.Slug, p.Excerpt, p.Content, p.AuthorID, p.CategoryID,
		p.ImageURL, p.ReadTime, p.Featured, p.Status, p.PublishedAt,
	).Scan(&p.ID, &p.Likes, &p.Views, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating blog post: %w", err)
	}
	if err := r.replacePostTags(ctx, p); err != nil {
		return err
	}
	return nil
}

func (r *PostgresBlogRepository) replacePostTags(ctx context.Context, p *blog.Post) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM blog_post_tags WHERE post_id = $1`, p.ID); err != nil {
		return fmt.Errorf("error clearing post tags: %w", err)
	}
	for _, t := range p.Tags {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO blog_post_tags (post_id, tag_id) VALUES ($1, $2)`, p.ID, t.ID); err != nil {
			return fmt.Errorf("error attaching tag %d to post %d: %w", t.ID, p.ID, err)
		}
	}
	return nil
}

// loadTags fills Tags for the given posts with a single query.
func (r *PostgresBlogRepository) loadTags(ctx context.Context, posts []*blog.Post) error {
	if len(posts) == 0 {
		return nil
	}
	byID := make(map[int64]*blog.Post, len(posts))
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	query := `SELECT pt.post_id, t.id, t.name, t.slug, t.created_at
	           FROM blog_post_tags pt
	           JOIN blog_tags t ON t.id = pt.tag_id
	           WHERE pt.post_id = ANY($1::bigint[])
	           ORDER BY t.name`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error loading post tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID int64
		t := blog.Tag{}
		if err := rows.Scan(&postID, &t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return fmt.Errorf("error scanning post tag row: %w", err)
		}
		if p, ok := byID[postID]; ok {
			p.Tags = append(p.Tags, t)
		}
	}
	return rows.Err()
}

func (r *PostgresBlogRepository) getPost(ctx context.Context, where string, arg any) (*blog.Post, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts p WHERE ` + where
	p, err := scanPost(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("error getting blog post: %w", err)
	}
	if err := r.loadTags(ctx, []*blog.Post{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresBlogRepository) GetPostByID(ctx context.Context, id int64) (*blog.Post, error) {
	return r.getPost(ctx, `p.id = $1`, id)
}

func (r *PostgresBlogRepository) GetPostBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	return r.getPost(ctx, `p.slug = $1`, slug)
}

func (r *PostgresBlogRepository) UpdatePost(ctx context.Context, p *blog.Post) error {
	query := `UPDATE blog_posts
	           SET title = $1, slug = $2, excerpt = $3, content = $4, author_id = $5,
	               category_id = $6, image_url = $7, read_time = $8, featured = $9,
	               status = $10, published_at = $11, updated_at = NOW()
	           WHERE id = $12
	           RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		p.Title, p.Slug, p.Excerpt, p.Content, p.AuthorID, p.CategoryID,
		p.ImageURL, p.ReadTime, p.Featured, p.Status, p.PublishedAt, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrPostNotFound
		}
		return fmt.Errorf("error updating blog post: %w", err)
	}
	return r.replacePostTags(ctx, p)
}

func (r *PostgresBlogRepository) DeletePost(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting blog post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted post rows: %w", err)
	}
	if affected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PostgresBlogRepository) ListPosts(ctx context.Context, filter blog.PostFilter) ([]*blog.Post, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts p`
	joins := ``
	where := ` WHERE 1=1`
	args := make([]any, 0, 4)

	if filter.PublishedOnly {
		where += ` AND p.status = 'published' AND p.published_at IS NOT NULL AND p.published_at <= NOW()`
	}
	if filter.FeaturedOnly {
		where += ` AND p.featured = TRUE`
	}
	if filter.CategorySlug != "" {
		joins += ` JOIN blog_categories c ON c.id = p.category_id`
		args = append(args, filter.CategorySlug)
		where += fmt.Sprintf(` AND c.slug = $%d`, len(args))
	}
	if filter.TagSlug != "" {
		joins += ` JOIN blog_post_tags fpt ON fpt.post_id = p.id JOIN blog_tags ft ON ft.id = fpt.tag_id`
		args = append(args, filter.TagSlug)
		where += fmt.Sprintf(` AND ft.slug = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND (p.title ILIKE $%d OR p.excerpt ILIKE $%d)`, len(args), len(args))
	}

	query += joins + where + ` ORDER BY p.published_at DESC NULLS LAST, p.created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing blog posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*blog.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning blog post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog post rows: %w", err)
	}
	if err := r.loadTags(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostgresBlogRepository) IncrementViews(ctx context.Context, id int64) (int64, error) {
	var views int64
	err := r.db.QueryRowContext(ctx,
		`UPDATE blog_posts SET views = views + 1 WHERE id = $1 RETURNING views`, id).Scan(&views)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrPostNotFound
		}
		return 0, fmt.Errorf("error incrementing post views: %w", err)
	}
	return views, nil
}

func (r *PostgresBlogRepository) IncrementLikes(ctx context.Context, id int64) (int64, error) {
	var likes int64
	err := r.db.QueryRowContext(ctx,
		`UPDATE blog_posts SET likes = likes + 1 WHERE id = $1 RETURNING likes`, id).Scan(&likes)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrPostNotFound
		}
		return 0, fmt.Errorf("error incrementing post likes: %w", err)
	}
	return likes, nil
}

func (r *PostgresBlogRepository) CountPublished(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blog_posts WHERE status = 'published'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting published posts: %w", err)
	}
	return n, nil
}

func (r *PostgresBlogRepository) SumPublishedViews(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(views), 0) FROM blog_posts WHERE status = 'published'`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing published post views: %w", err)
	}
	return total, nil
}

func (r *PostgresBlogRepository) ListAuthors(ctx context.Context) ([]*blog.Author, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, avatar_url, bio, created_at, updated_at FROM blog_authors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing authors: %w", err)
	}
	defer rows.Close()

	authors := make([]*blog.Author, 0)
	for rows.Next() {
		a := &blog.Author{}
		if err := rows.Scan(&a.ID, &a.Name, &a.AvatarURL, &a.Bio, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning author row: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (r *PostgresBlogRepository) ListCategories(ctx context.Context) ([]*blog.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, description, created_at FROM blog_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*blog.Category, 0)
	for rows.Next() {
		c := &blog.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning category row: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresBlogRepository) ListTags(ctx context.Context) ([]*blog.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, created_at FROM blog_tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing tags: %w", err)
	}
	defer rows.Close()

	tags := make([]*blog.Tag, 0)
	for rows.Next() {
		t := &blog.Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
