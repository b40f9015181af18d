package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"company_site_backend/internal/app"
	"company_site_backend/internal/domain/job"
	idb "company_site_backend/internal/infra/database"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type JobHandler struct {
	jobs   *app.JobService
	logger *logrus.Logger
}

func NewJobHandler(jobs *app.JobService, logger *logrus.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, logger: logger}
}

type salaryPayload struct {
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Currency string `json:"currency"`
}

type jobResponse struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Category         string         `json:"category"`
	Description      string         `json:"description"`
	Type             string         `json:"type"`
	TypeDisplay      string         `json:"type_display"`
	Location         string         `json:"location"`
	Experience       string         `json:"experience"`
	Requirements     []string       `json:"requirements"`
	Responsibilities []string       `json:"responsibilities"`
	Benefits         []string       `json:"benefits"`
	Salary           *salaryPayload `json:"salary,omitempty"`
	IsActive         bool           `json:"is_active"`
	Deadline         *string        `json:"deadline,omitempty"`
	PostedAt         time.Time      `json:"posted_at"`
}

func toJobResponse(j *job.Job) jobResponse {
	resp := jobResponse{
		ID:               j.ID,
		Title:            j.Title,
		Category:         j.Category,
		Description:      j.Description,
		Type:             string(j.Type),
		TypeDisplay:      j.Type.DisplayName(),
		Location:         j.Location,
		Experience:       j.Experience,
		Requirements:     j.Requirements,
		Responsibilities: j.Responsibilities,
		Benefits:         j.Benefits,
		IsActive:         j.IsActive,
		PostedAt:         j.PostedAt,
	}
	if j.Salary != nil {
		resp.Salary = &salaryPayload{Min: j.Salary.Min, Max: j.Salary.Max, Currency: j.Salary.Currency}
	}
	if j.Deadline.Valid {
		d := j.Deadline.Time.Format("2006-01-02")
		resp.Deadline = &d
	}
	return resp
}

type jobRequest struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Category         string         `json:"category"`
	Description      string         `json:"description"`
	Type             string         `json:"type"`
	Location         string         `json:"location"`
	Experience       string         `json:"experience"`
	Requirements     []string       `json:"requirements"`
	Responsibilities []string       `json:"responsibilities"`
	Benefits         []string       `json:"benefits"`
	Salary           *salaryPayload `json:"salary"`
	IsActive         *bool          `json:"is_active"`
	Deadline         string         `json:"deadline"`
}

func (req jobRequest) toDomain() (*job.Job, error) {
	j := &job.Job{
		ID:               req.ID,
		Title:            req.Title,
		Category:         req.Category,
		Description:      req.Description,
		Type:             job.EmploymentType(req.Type),
		Location:         req.Location,
		Experience:       req.Experience,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Benefits:         req.Benefits,
		IsActive:         true,
	}
	if req.IsActive != nil {
		j.IsActive = *req.IsActive
	}
	if req.Salary != nil {
		j.Salary = &job.Salary{Min: req.Salary.Min, Max: req.Salary.Max, Currency: req.Salary.Currency}
	}
	if req.Deadline != "" {
		d, err := time.ParseInLocation("2006-01-02", req.Deadline, time.Local)
		if err != nil {
			return nil, errors.New("deadline must be formatted YYYY-MM-DD")
		}
		j.Deadline = sql.NullTime{Time: d, Valid: true}
	}
	return j, nil
}

func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	jobs, err := h.jobs.ListJobs(r.Context(), includeInactive)
	if err != nil {
		h.logger.Errorf("Failed to list jobs: %v", err)
		respondError(w, http.StatusInternalServerError, "could not list jobs")
		return
	}

	resp := make([]jobResponse, 0, len(jobs))
	for _, j := range jobs {
		resp = append(resp, toJobResponse(j))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	j, err := h.jobs.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, idb.ErrJobNotFound) {
			respondError(w, http.StatusNotFound, "job not found")
			return
		}
		h.logger.Errorf("Failed to get job: %v", err)
		respondError(w, http.StatusInternalServerError, "could not fetch job")
		return
	}
	respondJSON(w, http.StatusOK, toJobResponse(j))
}

func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	j, err := req.toDomain()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.jobs.CreateJob(r.Context(), j); err != nil {
		h.logger.Errorf("Failed to create job: %v", err)
		respondError(w, http.StatusInternalServerError, "could not create job")
		return
	}
	respondJSON(w, http.StatusCreated, toJobResponse(j))
}

func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	j, err := req.toDomain()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	j.ID = chi.URLParam(r, "id")
	if err := h.jobs.UpdateJob(r.Context(), j); err != nil {
		if errors.Is(err, idb.ErrJobNotFound) {
			respondError(w, http.StatusNotFound, "job not found")
			return
		}
		h.logger.Errorf("Failed to update job: %v", err)
		respondError(w, http.StatusInternalServerError, "could not update job")
		return
	}
	respondJSON(w, http.StatusOK, toJobResponse(j))
}

func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := h.jobs.DeleteJob(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, idb.ErrJobNotFound) {
			respondError(w, http.StatusNotFound, "job not found")
			return
		}
		h.logger.Errorf("Failed to delete job: %v", err)
		respondError(w, http.StatusInternalServerError, "could not delete job")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type applyRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	ResumeURL   string `json:"resume_url"`
	CoverLetter string `json:"cover_letter"`
	LinkedIn    string `json:"linkedin"`
}

type applicationResponse struct {
	ID          int64     `json:"id"`
	JobID       string    `json:"job_id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	ResumeURL   string    `json:"resume_url"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	LinkedIn    string    `json:"linkedin,omitempty"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}

func toApplicationResponse(a *job.Application) applicationResponse {
	return applicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		FullName:    a.FullName,
		Email:       a.Email,
		ResumeURL:   a.ResumeURL,
		CoverLetter: a.CoverLetter.String,
		LinkedIn:    a.LinkedIn.String,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
	}
}

func (h *JobHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FullName == "" || req.Email == "" || req.ResumeURL == "" {
		respondError(w, http.StatusBadRequest, "full_name, email and resume_url are required")
		return
	}

	a, err := h.jobs.Apply(r.Context(), chi.URLParam(r, "id"), app.ApplicationInput{
		FullName:    req.FullName,
		Email:       req.Email,
		ResumeURL:   req.ResumeURL,
		CoverLetter: req.CoverLetter,
		LinkedIn:    req.LinkedIn,
	})
	if err != nil {
		switch {
		case errors.Is(err, idb.ErrJobNotFound):
			respondError(w, http.StatusNotFound, "job not found")
		case errors.Is(err, app.ErrJobInactive):
			respondError(w, http.StatusUnprocessableEntity, "job posting is no longer active")
		default:
			h.logger.Errorf("Failed to store application: %v", err)
			respondError(w, http.StatusInternalServerError, "could not submit application")
		}
		return
	}
	respondJSON(w, http.StatusCreated, toApplicationResponse(a))
}

func (h *JobHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	filter := job.ApplicationFilter{
		JobID:  r.URL.Query().Get("job_id"),
		Status: job.ApplicationStatus(r.URL.Query().Get("status")),
	}
	if filter.Status != "" && !filter.Status.IsKnown() {
		respondError(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	apps, err := h.jobs.ListApplications(r.Context(), filter)
	if err != nil {
		h.logger.Errorf("Failed to list applications: %v", err)
		respondError(w, http.StatusInternalServerError, "could not list applications")
		return
	}

	resp := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		resp = append(resp, toApplicationResponse(a))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *JobHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	a, err := h.jobs.GetApplication(r.Context(), id)
	if err != nil {
		if errors.Is(err, idb.ErrApplicationNotFound) {
			respondError(w, http.StatusNotFound, "application not found")
			return
		}
		h.logger.Errorf("Failed to get application: %v", err)
		respondError(w, http.StatusInternalServerError, "could not fetch application")
		return
	}
	respondJSON(w, http.StatusOK, toApplicationResponse(a))
}

type statusUpdateRequest struct {
	Status    string                `json:"status"`
	Interview *app.InterviewDetails `json:"interview"`
	Offer     *app.OfferDetails     `json:"offer"`
}

func (h *JobHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	var req statusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.jobs.UpdateApplicationStatus(r.Context(), id, job.ApplicationStatus(req.Status), app.StatusDetails{
		Interview: req.Interview,
		Offer:     req.Offer,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidStatus):
			respondError(w, http.StatusBadRequest, "invalid application status")
		case errors.Is(err, idb.ErrApplicationNotFound):
			respondError(w, http.StatusNotFound, "application not found")
		default:
			h.logger.Errorf("Failed to update application status: %v", err)
			respondError(w, http.StatusInternalServerError, "could not update application status")
		}
		return
	}
	respondJSON(w, http.StatusOK, toApplicationResponse(a))
}
