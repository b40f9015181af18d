package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// NewRouter wires every handler into the HTTP surface.
func NewRouter(
	jobs *JobHandler,
	blog *BlogHandler,
	newsletter *NewsletterHandler,
	contentH *ContentHandler,
	logger *logrus.Logger,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", jobs.ListJobs)
		r.Post("/", jobs.CreateJob)
		r.Get("/{id}", jobs.GetJob)
		r.Put("/{id}", jobs.UpdateJob)
		r.Delete("/{id}", jobs.DeleteJob)
		r.Post("/{id}/apply", jobs.Apply)
	})

	r.Route("/applications", func(r chi.Router) {
		r.Get("/", jobs.ListApplications)
		r.Get("/{id}", jobs.GetApplication)
		r.Patch("/{id}/status", jobs.UpdateApplicationStatus)
	})

	r.Route("/newsletter", func(r chi.Router) {
		r.Post("/subscribe", newsletter.Subscribe)
		r.Post("/unsubscribe", newsletter.Unsubscribe)
		r.Get("/unsubscribe/{token}", newsletter.UnsubscribeByLink)
		r.Post("/send", newsletter.Send)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", blog.ListPosts)
		r.Post("/", blog.CreatePost)
		r.Get("/featured", blog.FeaturedPosts)
		// Numeric segments route to the id-based admin operations; anything
		// else is treated as a slug.
		r.Put("/{id:[0-9]+}", blog.UpdatePost)
		r.Delete("/{id:[0-9]+}", blog.DeletePost)
		r.Post("/{id:[0-9]+}/like", blog.LikePost)
		r.Get("/{slug}", blog.GetPostBySlug)
	})

	r.Get("/authors", blog.ListAuthors)
	r.Get("/categories", blog.ListCategories)
	r.Get("/tags", blog.ListTags)

	r.Get("/testimonials", contentH.ListTestimonials)
	r.Get("/projects", contentH.ListProjects)
	r.Get("/projects/count", contentH.CountProjects)

	r.Route("/messages", func(r chi.Router) {
		r.Post("/", contentH.SubmitMessage)
		r.Get("/", contentH.ListMessages)
		r.Patch("/{id}/read", contentH.MarkMessageRead)
	})

	r.Get("/organization", contentH.GetOrganization)
	r.Get("/stats", contentH.ListCompanyStats)

	return r
}
