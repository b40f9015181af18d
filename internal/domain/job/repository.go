package job

import (
	"context"
	"time"
)

// Repository defines persistence operations for jobs.
type Repository interface {
	Create(ctx context.Context, j *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	Update(ctx context.Context, j *Job) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, includeInactive bool) ([]*Job, error)
	// DeactivateExpired flips is_active off for jobs whose deadline has
	// passed and returns how many rows changed.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// ApplicationFilter narrows application listings.
type ApplicationFilter struct {
	JobID  string
	Status ApplicationStatus
}

// ApplicationRepository defines persistence operations for job applications,
// including the filtered counts the admin notices are built from.
type ApplicationRepository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	UpdateStatus(ctx context.Context, id int64, status ApplicationStatus) error
	List(ctx context.Context, filter ApplicationFilter) ([]*Application, error)

	CountAll(ctx context.Context) (int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	CountForJob(ctx context.Context, jobID string) (int, error)
	CountByStatus(ctx context.Context, status ApplicationStatus) (int, error)
}
