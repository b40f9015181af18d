// internal/infra/database/postgres_application_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"company_site_backend/internal/domain/job"
)

type PostgresApplicationRepository struct {
	db *sql.DB
}

func NewPostgresApplicationRepository(db *sql.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, full_name, email, resume_url, cover_letter, linkedin, status, applied_at`

func scanApplication(row interface{ Scan(...any) error }) (*job.Application, error) {
	a := &job.Application{}
	err := row.Scan(
		&a.ID, &a.JobID, &a.FullName, &a.Email, &a.ResumeURL,
		&a.CoverLetter, &a.LinkedIn, &a.Status, &a.AppliedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a *job.Application) error {
	query := `INSERT INTO job_applications (job_id, full_name, email, resume_url, cover_letter, linkedin, status)
	           VALUES ($1, $2, $3, $4, $5, $6, $7)
	           RETURNING id, applied_at`
	if a.Status == "" {
		a.Status = job.StatusPending
	}
	err := r.db.QueryRowContext(ctx, query,
		a.JobID, a.FullName, a.Email, a.ResumeURL, a.CoverLetter, a.LinkedIn, a.Status,
	).Scan(&a.ID, &a.AppliedAt)
	if err != nil {
		return fmt.Errorf("error creating job application: %w", err)
	}
	return nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id int64) (*job.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM job_applications WHERE id = $1`
	a, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error getting job application by ID: %w", err)
	}
	return a, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id int64, status job.ApplicationStatus) error {
	query := `UPDATE job_applications SET status = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error updating job application status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking updated application rows: %w", err)
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) List(ctx context.Context, filter job.ApplicationFilter) ([]*job.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM job_applications WHERE 1=1`
	args := make([]any, 0, 2)
	if filter.JobID != "" {
		args = append(args, filter.JobID)
		query += fmt.Sprintf(" AND job_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += ` ORDER BY applied_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing job applications: %w", err)
	}
	defer rows.Close()

	apps := make([]*job.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning job application row: %w", err)
		}
		apps = append(apps, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job application rows: %w", err)
	}
	return apps, nil
}

func (r *PostgresApplicationRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_applications`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting job applications: %w", err)
	}
	return n, nil
}

func (r *PostgresApplicationRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_applications WHERE applied_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting job applications since %s: %w", since.Format(time.RFC3339), err)
	}
	return n, nil
}

func (r *PostgresApplicationRepository) CountForJob(ctx context.Context, jobID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_applications WHERE job_id = $1`, jobID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting job applications for job %s: %w", jobID, err)
	}
	return n, nil
}

func (r *PostgresApplicationRepository) CountByStatus(ctx context.Context, status job.ApplicationStatus) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_applications WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting job applications by status: %w", err)
	}
	return n, nil
}
