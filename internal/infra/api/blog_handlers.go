package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"company_site_backend/internal/app"
	"company_site_backend/internal/domain/blog"
	idb "company_site_backend/internal/infra/database"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type BlogHandler struct {
	blog   *app.BlogService
	logger *logrus.Logger
}

func NewBlogHandler(blog *app.BlogService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{blog: blog, logger: logger}
}

type tagPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type postResponse struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Excerpt     string       `json:"excerpt"`
	Content     string       `json:"content,omitempty"`
	AuthorID    int64        `json:"author_id"`
	CategoryID  *int64       `json:"category_id,omitempty"`
	Tags        []tagPayload `json:"tags"`
	ImageURL    string       `json:"image_url,omitempty"`
	ReadTime    int          `json:"read_time"`
	Featured    bool         `json:"featured"`
	Likes       int64        `json:"likes"`
	Views       int64        `json:"views"`
	Status      string       `json:"status"`
	PublishedAt *time.Time   `json:"published_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func toPostResponse(p *blog.Post, includeContent bool) postResponse {
	resp := postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Excerpt:   p.Excerpt,
		AuthorID:  p.AuthorID,
		Tags:      make([]tagPayload, 0, len(p.Tags)),
		ImageURL:  p.ImageURL.String,
		ReadTime:  p.ReadTime,
		Featured:  p.Featured,
		Likes:     p.Likes,
		Views:     p.Views,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if includeContent {
		resp.Content = p.Content
	}
	if p.CategoryID.Valid {
		resp.CategoryID = &p.CategoryID.Int64
	}
	if p.PublishedAt.Valid {
		t := p.PublishedAt.Time
		resp.PublishedAt = &t
	}
	for _, tag := range p.Tags {
		resp.Tags = append(resp.Tags, tagPayload{ID: tag.ID, Name: tag.Name, Slug: tag.Slug})
	}
	return resp
}

func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := blog.PostFilter{
		PublishedOnly: q.Get("include_drafts") != "true",
		FeaturedOnly:  q.Get("featured") == "true",
		CategorySlug:  q.Get("category"),
		TagSlug:       q.Get("tag"),
		Search:        q.Get("q"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	posts, err := h.blog.ListPosts(r.Context(), filter)
	if err != nil {
		h.logger.Errorf("Failed to list posts: %v", err)
		respondError(w, http.StatusInternalServerError, "could not list posts")
		return
	}

	resp := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, toPostResponse(p, false))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *BlogHandler) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.blog.GetPostBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, idb.ErrPostNotFound) {
			respondError(w, http.StatusNotFound, "post not found")
			return
		}
		h.logger.Errorf("Failed to get post: %v", err)
		respondError(w, http.StatusInternalServerError, "could not fetch post")
		return
	}
	respondJSON(w, http.StatusOK, toPostResponse(p, true))
}

func (h *BlogHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	likes, err := h.blog.LikePost(r.Context(), id)
	if err != nil {
		if errors.Is(err, idb.ErrPostNotFound) {
			respondError(w, http.StatusNotFound, "post not found")
			return
		}
		h.logger.Errorf("Failed to like post: %v", err)
		respondError(w, http.StatusInternalServerError, "could not like post")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"likes": likes})
}

func (h *BlogHandler) FeaturedPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blog.FeaturedPosts(r.Context())
	if err != nil {
		h.logger.Errorf("Failed to list featured posts: %v", err)
		respondError(w, http.StatusInternalServerError, "could not list featured posts")
		return
	}

	resp := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, toPostResponse(p, false))
	}
	respondJSON(w, http.StatusOK, resp)
}

type postRequest struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	AuthorID   int64    `json:"author_id"`
	CategoryID *int64   `json:"category_id"`
	TagIDs     []int64  `json:"tag_ids"`
	ImageURL   string   `json:"image_url"`
	ReadTime   int      `json:"read_time"`
	Featured   bool     `json:"featured"`
	Status     string   `json:"status"`
	Publish    bool     `json:"publish"`
}

func (req postRequest) toDomain(now time.Time) *blog.Post {
	p := &blog.Post{
		Title:    req.Title,
		Slug:     req.Slug,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		AuthorID: req.AuthorID,
		ImageURL: nullStringOf(req.ImageURL),
		ReadTime: req.ReadTime,
		Featured: req.Featured,
		Status:   blog.PostStatus(req.Status),
	}
	if req.CategoryID != nil {
		p.CategoryID.Int64 = *req.CategoryID
		p.CategoryID.Valid = true
	}
	for _, id := range req.TagIDs {
		p.Tags = append(p.Tags, blog.Tag{ID: id})
	}
	if req.Publish || p.Status == blog.PostPublished {
		p.Status = blog.PostPublished
		p.PublishedAt.Time = now
		p.PublishedAt.Valid = true
	}
	return p
}

func (h *BlogHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.AuthorID == 0 {
		respondError(w, http.StatusBadRequest, "title and author_id are required")
		return
	}

	p := req.toDomain(time.Now())
	if err := h.blog.CreatePost(r.Context(), p); err != nil {
		h.logger.Errorf("Failed to create post: %v", err)
		respondError(w, http.StatusInternalServerError, "could not create post")
		return
	}
	respondJSON(w, http.StatusCreated, toPostResponse(p, true))
}

func (h *BlogHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p := req.toDomain(time.Now())
	p.ID = id
	if err := h.blog.UpdatePost(r.Context(), p); err != nil {
		if errors.Is(err, idb.ErrPostNotFound) {
			respondError(w, http.StatusNotFound, "post not found")
			return
		}
		h.logger.Errorf("Failed to update post: %v", err)
		respondError(w, http.StatusInternalServerError, "could not update post")
		return
	}
	respondJSON(w, http.StatusOK, toPostResponse(p, true))
}

func (h *BlogHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	if err := h.blog.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, idb.ErrPostNotFound) {
			respondError(w, http.StatusNotFound, "post not found")
			return
		}
		h.logger.Errorf("Failed to delete post: %v", err)
		respondError(w, http.StatusInternalServerError, "could not delete post")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BlogHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.blog.ListAuthors(r.Context())
	if err != nil {
		h.logger.Errorf("Failed to list authors: %v", err)
		respondError(w, http.StatusInternalServerError, "could not list authors")
		return
	}

	type authorPayload struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url,omitempty"`
		Bio       string `json:"bio"`
	}
	resp := make([]authorPayload, 0, len(authors))
	for _, a := range authors {
		resp = append(resp, authorPayload{ID: a.ID, Name: a.Name, AvatarURL: a.AvatarURL.String, Bio: a.Bio})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *BlogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.blog.ListCategories(r.Context())
	if err != nil {
		h.logger.Errorf("Failed to list categories: %v", err)
		respondError(w, http.StatusInternalServerError, "could not list categories")
		return
	}

	type categoryPayload struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	resp := make([]categoryPayload, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, categoryPayload{ID: c.ID, Name: c.Name, Slug: c.Slug, Description: c.Description})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *BlogHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.blog.ListTags(r.Context())
	if err != nil {
		h.logger.Errorf("Failed to list tags: %v", err)
		respondError(w, http.StatusInternalServerError, "could not list tags")
		return
	}

	resp := make([]tagPayload, 0, len(tags))
	for _, t := range tags {
		resp = append(resp, tagPayload{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	respondJSON(w, http.StatusOK, resp)
}
