// internal/app/job_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"company_site_backend/internal/domain/job"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Custom application-level errors for the job service
var ErrJobInactive = fmt.Errorf("job posting is no longer active")
var ErrInvalidStatus = fmt.Errorf("invalid application status")

// ApplicationInput is a candidate's submission payload. The resume is a
// reference to an already-stored file; storage itself lives elsewhere.
type ApplicationInput struct {
	FullName    string
	Email       string
	ResumeURL   string
	CoverLetter string
	LinkedIn    string
}

type JobService struct {
	jobs         job.Repository
	applications job.ApplicationRepository
	notifier     Notifier
	logger       *logrus.Logger
	now          func() time.Time
}

func NewJobService(jobs job.Repository, applications job.ApplicationRepository, notifier Notifier, logger *logrus.Logger) *JobService {
	return &JobService{jobs: jobs, applications: applications, notifier: notifier, logger: logger, now: time.Now}
}

func (s *JobService) ListJobs(ctx context.Context, includeInactive bool) ([]*job.Job, error) {
	return s.jobs.List(ctx, includeInactive)
}

func (s *JobService) GetJob(ctx context.Context, id string) (*job.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

func (s *JobService) CreateJob(ctx context.Context, j *job.Job) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return s.jobs.Create(ctx, j)
}

func (s *JobService) UpdateJob(ctx context.Context, j *job.Job) error {
	return s.jobs.Update(ctx, j)
}

func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	return s.jobs.Delete(ctx, id)
}

// Apply validates and stores a new application, then dispatches the
// confirmation and admin notice. The dispatch runs after the row is
// committed; its failures are logged per job and never undo the write.
func (s *JobService) Apply(ctx context.Context, jobID string, input ApplicationInput) (*job.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !j.IsActive {
		return nil, ErrJobInactive
	}

	a := &job.Application{
		JobID:       j.ID,
		FullName:    input.FullName,
		Email:       input.Email,
		ResumeURL:   input.ResumeURL,
		CoverLetter: nullString(input.CoverLetter),
		LinkedIn:    nullString(input.LinkedIn),
		Status:      job.StatusPending,
	}
	if err := s.applications.Create(ctx, a); err != nil {
		return nil, err
	}

	results := s.notifier.ApplicationSubmitted(ctx, j, a)
	logDispatchOutcome(s.logger, "application submitted", results)
	return a, nil
}

func (s *JobService) ListApplications(ctx context.Context, filter job.ApplicationFilter) ([]*job.Application, error) {
	return s.applications.List(ctx, filter)
}

func (s *JobService) GetApplication(ctx context.Context, id int64) (*job.Application, error) {
	return s.applications.GetByID(ctx, id)
}

// UpdateApplicationStatus moves an application to a new status and, when the
// status actually changed, hands the before/after pair plus any
// caller-supplied interview/offer details to the notifier.
func (s *JobService) UpdateApplicationStatus(ctx context.Context, id int64, newStatus job.ApplicationStatus, details StatusDetails) (*job.Application, error) {
	if !newStatus.IsKnown() {
		return nil, ErrInvalidStatus
	}

	a, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := a.Status

	if err := s.applications.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	a.Status = newStatus

	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		// The write succeeded; a missing job only costs the notification.
		s.logger.Errorf("Could not load job %s for status notification of application %d: %v", a.JobID, a.ID, err)
		return a, nil
	}

	results := s.notifier.ApplicationStatusChanged(ctx, j, a, previous, details)
	logDispatchOutcome(s.logger, "application status changed", results)
	return a, nil
}

// DeactivateExpiredJobs flips off jobs whose deadline has passed. Invoked by
// the daily scheduler sweep.
func (s *JobService) DeactivateExpiredJobs(ctx context.Context) (int64, error) {
	n, err := s.jobs.DeactivateExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Infof("Deactivated %d jobs past their deadline", n)
	}
	return n, nil
}
