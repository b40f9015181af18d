// internal/infra/database/postgres_job_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"company_site_backend/internal/domain/job"

	"github.com/lib/pq" // For pq.Array and driver registration
)

// Custom errors specific to the job repository
var ErrJobNotFound = fmt.Errorf("job not found")
var ErrApplicationNotFound = fmt.Errorf("job application not found")

type PostgresJobRepository struct {
	db *sql.DB
}

func NewPostgresJobRepository(db *sql.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, title, category, description, type, location, experience,
	requirements, responsibilities, benefits,
	salary_min, salary_max, salary_currency,
	is_active, deadline, posted_at`

func scanJob(row interface{ Scan(...any) error }) (*job.Job, error) {
	j := &job.Job{}
	var salaryMin, salaryMax sql.NullInt64
	var salaryCurrency sql.NullString
	err := row.Scan(
		&j.ID, &j.Title, &j.Category, &j.Description, &j.Type, &j.Location, &j.Experience,
		pq.Array(&j.Requirements), pq.Array(&j.Responsibilities), pq.Array(&j.Benefits),
		&salaryMin, &salaryMax, &salaryCurrency,
		&j.IsActive, &j.Deadline, &j.PostedAt,
	)
	if err != nil {
		return nil, err
	}
	if salaryMin.Valid && salaryMax.Valid && salaryCurrency.Valid {
		j.Salary = &job.Salary{Min: salaryMin.Int64, Max: salaryMax.Int64, Currency: salaryCurrency.String}
	}
	return j, nil
}

func salaryFields(j *job.Job) (sql.NullInt64, sql.NullInt64, sql.NullString) {
	if j.Salary == nil {
		return sql.NullInt64{}, sql.NullInt64{}, sql.NullString{}
	}
	return sql.NullInt64{Int64: j.Salary.Min, Valid: true},
		sql.NullInt64{Int64: j.Salary.Max, Valid: true},
		sql.NullString{String: j.Salary.Currency, Valid: true}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j *job.Job) error {
	query := `INSERT INTO jobs (id, title, category, description, type, location, experience,
	               requirements, responsibilities, benefits,
	               salary_min, salary_max, salary_currency, is_active, deadline)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	           RETURNING posted_at`
	salMin, salMax, salCur := salaryFields(j)
	err := r.db.QueryRowContext(ctx, query,
		j.ID, j.Title, j.Category, j.Description, j.Type, j.Location, j.Experience,
		pq.Array(j.Requirements), pq.Array(j.Responsibilities), pq.Array(j.Benefits),
		salMin, salMax, salCur, j.IsActive, j.Deadline,
	).Scan(&j.PostedAt)
	if err != nil {
		return fmt.Errorf("error creating job: %w", err)
	}
	return nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id string) (*job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	j, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("error getting job by ID: %w", err)
	}
	return j, nil
}

func (r *PostgresJobRepository) Update(ctx context.Context, j *job.Job) error {
	query := `UPDATE jobs
	           SET title = $1, category = $2, description = $3, type = $4, location = $5,
	               experience = $6, requirements = $7, responsibilities = $8, benefits = $9,
	               salary_min = $10, salary_max = $11, salary_currency = $12,
	               is_active = $13, deadline = $14
	           WHERE id = $15
	           RETURNING posted_at`
	salMin, salMax, salCur := salaryFields(j)
	err := r.db.QueryRowContext(ctx, query,
		j.Title, j.Category, j.Description, j.Type, j.Location, j.Experience,
		pq.Array(j.Requirements), pq.Array(j.Responsibilities), pq.Array(j.Benefits),
		salMin, salMax, salCur, j.IsActive, j.Deadline, j.ID,
	).Scan(&j.PostedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrJobNotFound
		}
		return fmt.Errorf("error updating job: %w", err)
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted job rows: %w", err)
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) List(ctx context.Context, includeInactive bool) ([]*job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY posted_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]*job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning job row: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", err)
	}
	return jobs, nil
}

func (r *PostgresJobRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE jobs SET is_active = FALSE WHERE is_active = TRUE AND deadline IS NOT NULL AND deadline < $1`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("error deactivating expired jobs: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error counting deactivated jobs: %w", err)
	}
	return affected, nil
}
