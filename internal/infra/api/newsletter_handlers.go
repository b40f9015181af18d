package api

import (
	"errors"
	"net/http"

	"company_site_backend/internal/app"
	idb "company_site_backend/internal/infra/database"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type NewsletterHandler struct {
	newsletter *app.NewsletterService
	logger     *logrus.Logger
}

func NewNewsletterHandler(newsletter *app.NewsletterService, logger *logrus.Logger) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter, logger: logger}
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	status, sub, err := h.newsletter.Subscribe(r.Context(), req.Email)
	if err != nil {
		h.logger.Errorf("Failed to subscribe %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "could not process subscription")
		return
	}

	httpStatus := http.StatusOK
	if status == app.SubscribeStatusNew {
		httpStatus = http.StatusCreated
	}
	respondJSON(w, httpStatus, map[string]string{
		"status": string(status),
		"email":  sub.Email,
	})
}

type unsubscribeRequest struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req unsubscribeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var err error
	switch {
	case req.Token != "":
		err = h.newsletter.UnsubscribeByToken(r.Context(), req.Token)
	case req.Email != "":
		err = h.newsletter.UnsubscribeByEmail(r.Context(), req.Email)
	default:
		respondError(w, http.StatusBadRequest, "token or email is required")
		return
	}

	if err != nil {
		if errors.Is(err, idb.ErrSubscriberNotFound) {
			respondError(w, http.StatusNotFound, "subscriber not found")
			return
		}
		h.logger.Errorf("Failed to unsubscribe: %v", err)
		respondError(w, http.StatusInternalServerError, "could not process unsubscription")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "unsubscribed"})
}

// UnsubscribeByLink serves the one-click link embedded in every email.
func (h *NewsletterHandler) UnsubscribeByLink(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if err := h.newsletter.UnsubscribeByToken(r.Context(), token); err != nil {
		if errors.Is(err, idb.ErrSubscriberNotFound) {
			respondError(w, http.StatusNotFound, "subscriber not found")
			return
		}
		h.logger.Errorf("Failed to unsubscribe by link: %v", err)
		respondError(w, http.StatusInternalServerError, "could not process unsubscription")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "unsubscribed"})
}

type sendNewsletterRequest struct {
	Subject            string `json:"subject"`
	Content            string `json:"content"`
	FeaturedPostID     int64  `json:"featured_post_id"`
	IncludeRecentPosts bool   `json:"include_recent_posts"`
	ShowStats          bool   `json:"show_stats"`
}

func (h *NewsletterHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendNewsletterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Subject == "" || req.Content == "" {
		respondError(w, http.StatusBadRequest, "subject and content are required")
		return
	}

	outcome, err := h.newsletter.SendNewsletter(r.Context(), app.SendNewsletterInput{
		Subject:            req.Subject,
		Content:            req.Content,
		FeaturedPostID:     req.FeaturedPostID,
		IncludeRecentPosts: req.IncludeRecentPosts,
		ShowStats:          req.ShowStats,
	})
	if err != nil {
		h.logger.Errorf("Failed to send newsletter: %v", err)
		respondError(w, http.StatusBadGateway, "newsletter delivery failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":      string(outcome.Status),
		"subscribers": outcome.Subscribers,
	})
}
