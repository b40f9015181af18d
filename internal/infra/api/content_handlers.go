package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"company_site_backend/internal/app"
	"company_site_backend/internal/domain/content"
	idb "company_site_backend/internal/infra/database"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type ContentHandler struct {
	content *app.ContentService
	logger  *logrus.Logger
}

func NewContentHandler(content *app.ContentService, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{content: content, logger: logger}
}

func (h *ContentHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.content.ListTestimonials(r.Context())
	if err != nil {
		h.logger.Errorf("Failed to list testimonials: %v", err)
		respondError(w, http.StatusInternalServerError, "could not list testimonials")
		return
	}

	type testimonialPayload struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		Rate      int    `json:"rate"`
		Comment   string `json:"comment"`
		AvatarURL string `json:"avatar_url,omitempty"`
		Position  string `json:"position,omitempty"`
	}
	resp := make([]testimonialPayload, 0, len(testimonials))
	for _, t := range testimonials {
		resp = append(resp, testimonialPayload{
			ID:        t.ID,
			Name:      t.Name,
			Rate:      t.Rate,
			Comment:   t.Comment,
			AvatarURL: t.AvatarURL.String,
			Position:  t.Position.String,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *ContentHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.content.ListProjects(r.Context())
	if err != nil {
		h.logger.Errorf("Failed to list projects: %v", err)
		respondError(w, http.StatusInternalServerError, "could not list projects")
		return
	}

	type projectPayload struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		PictureURL  string `json:"picture_url"`
		Description string `json:"description"`
		Status      string `json:"status"`
		IsCompleted bool   `json:"is_completed"`
	}
	resp := make([]projectPayload, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, projectPayload{
			ID:          p.ID,
			Title:       p.Title,
			PictureURL:  p.PictureURL,
			Description: p.Description,
			Status:      p.Status,
			IsCompleted: p.IsCompleted,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *ContentHandler) CountProjects(w http.ResponseWriter, r *http.Request) {
	count, err := h.content.CountProjects(r.Context())
	if err != nil {
		h.logger.Errorf("Failed to count projects: %v", err)
		respondError(w, http.StatusInternalServerError, "could not count projects")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

type messageRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Content  string `json:"content"`
}

type messageResponse struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func toMessageResponse(m *content.Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		FullName:  m.FullName,
		Email:     m.Email,
		Content:   m.Content,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

func (h *ContentHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.content.SubmitMessage(r.Context(), app.MessageInput{
		FullName: req.FullName,
		Email:    req.Email,
		Content:  req.Content,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, toMessageResponse(m))
}

func (h *ContentHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"

	messages, err := h.content.ListMessages(r.Context(), unreadOnly)
	if err != nil {
		h.logger.Errorf("Failed to list messages: %v", err)
		respondError(w, http.StatusInternalServerError, "could not list messages")
		return
	}

	resp := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, toMessageResponse(m))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *ContentHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	if err := h.content.MarkMessageRead(r.Context(), id); err != nil {
		if errors.Is(err, idb.ErrMessageNotFound) {
			respondError(w, http.StatusNotFound, "message not found")
			return
		}
		h.logger.Errorf("Failed to mark message read: %v", err)
		respondError(w, http.StatusInternalServerError, "could not update message")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContentHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	org, err := h.content.GetOrganization(r.Context())
	if err != nil {
		if errors.Is(err, idb.ErrOrganizationNotFound) {
			respondError(w, http.StatusNotFound, "organization not configured")
			return
		}
		h.logger.Errorf("Failed to get organization: %v", err)
		respondError(w, http.StatusInternalServerError, "could not fetch organization")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"id":                       org.ID,
		"company_name":             org.CompanyName,
		"email":                    org.Email,
		"phone":                    org.Phone,
		"address":                  org.Address,
		"years_of_experience":      org.YearsOfExperience,
		"projects_completed":       org.ProjectsCompleted,
		"happy_clients":            org.HappyClients,
		"client_satisfaction_rate": org.ClientSatisfactionRate,
		"years_in_business":        org.YearsInBusiness,
		"schedule_url":             org.ScheduleURL.String,
		"linkedin_url":             org.LinkedInURL.String,
		"github_url":               org.GitHubURL.String,
		"telegram_url":             org.TelegramURL.String,
		"facebook_url":             org.FacebookURL.String,
		"instagram_url":            org.InstagramURL.String,
		"whatsapp_url":             org.WhatsAppURL.String,
		"youtube_url":              org.YouTubeURL.String,
		"number_of_employees":      org.NumberOfEmployees,
		"number_of_services":       org.NumberOfServices,
	})
}

func (h *ContentHandler) ListCompanyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.content.ListCompanyStats(r.Context())
	if err != nil {
		h.logger.Errorf("Failed to list company stats: %v", err)
		respondError(w, http.StatusInternalServerError, "could not list company stats")
		return
	}

	type statsPayload struct {
		ID                     int64  `json:"id"`
		CompanyName            string `json:"company_name"`
		NumberOfEmployees      int64  `json:"number_of_employees"`
		ProjectsCompleted      int64  `json:"projects_completed"`
		ClientSatisfactionRate int64  `json:"client_satisfaction_rate"`
		HappyClients           int64  `json:"happy_clients"`
		YearsInBusiness        int64  `json:"years_in_business"`
		CompanyLocation        string `json:"company_location"`
	}
	resp := make([]statsPayload, 0, len(stats))
	for _, s := range stats {
		resp = append(resp, statsPayload{
			ID:                     s.ID,
			CompanyName:            s.CompanyName,
			NumberOfEmployees:      s.NumberOfEmployees,
			ProjectsCompleted:      s.ProjectsCompleted,
			ClientSatisfactionRate: s.ClientSatisfactionRate,
			HappyClients:           s.HappyClients,
			YearsInBusiness:        s.YearsInBusiness,
			CompanyLocation:        s.CompanyLocation,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}
