// internal/infra/database/postgres_content_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"company_site_backend/internal/domain/content"
)

// Custom errors specific to the content repository
var ErrMessageNotFound = fmt.Errorf("message not found")
var ErrOrganizationNotFound = fmt.Errorf("default organization not found")

type PostgresContentRepository struct {
	db *sql.DB
}

func NewPostgresContentRepository(db *sql.DB) *PostgresContentRepository {
	return &PostgresContentRepository{db: db}
}

func (r *PostgresContentRepository) CreateMessage(ctx context.Context, m *content.Message) error {
	query := `INSERT INTO messages (full_name, email, content)
	           VALUES ($1, $2, $3)
	           RETURNING id, is_read, created_at`
	err := r.db.QueryRowContext(ctx, query, m.FullName, m.Email, m.Content).
		Scan(&m.ID, &m.IsRead, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating message: %w", err)
	}
	return nil
}

func (r *PostgresContentRepository) ListMessages(ctx context.Context, unreadOnly bool) ([]*content.Message, error) {
	query := `SELECT id, full_name, email, content, is_read, created_at FROM messages`
	if unreadOnly {
		query += ` WHERE is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*content.Message, 0)
	for rows.Next() {
		m := &content.Message{}
		if err := rows.Scan(&m.ID, &m.FullName, &m.Email, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *PostgresContentRepository) MarkMessageRead(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE messages SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking message read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking updated message rows: %w", err)
	}
	if affected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *PostgresContentRepository) ListTestimonials(ctx context.Context) ([]*content.Testimonial, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, rate, comment, avatar_url, position FROM testimonials ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing testimonials: %w", err)
	}
	defer rows.Close()

	testimonials := make([]*content.Testimonial, 0)
	for rows.Next() {
		t := &content.Testimonial{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Rate, &t.Comment, &t.AvatarURL, &t.Position); err != nil {
			return nil, fmt.Errorf("error scanning testimonial row: %w", err)
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}

func (r *PostgresContentRepository) ListProjects(ctx context.Context) ([]*content.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, picture_url, description, status, is_completed FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*content.Project, 0)
	for rows.Next() {
		p := &content.Project{}
		if err := rows.Scan(&p.ID, &p.Title, &p.PictureURL, &p.Description, &p.Status, &p.IsCompleted); err != nil {
			return nil, fmt.Errorf("error scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *PostgresContentRepository) CountProjects(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting projects: %w", err)
	}
	return n, nil
}

func (r *PostgresContentRepository) GetDefaultOrganization(ctx context.Context) (*content.Organization, error) {
	query := `SELECT id, company_name, email, phone, address,
	               years_of_experience, projects_completed, happy_clients,
	               client_satisfaction_rate, years_in_business,
	               schedule_url, linkedin_url, github_url, telegram_url,
	               facebook_url, instagram_url, whatsapp_url, youtube_url,
	               number_of_employees, number_of_services, is_default
	           FROM organizations WHERE is_default = TRUE LIMIT 1`
	o := &content.Organization{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&o.ID, &o.CompanyName, &o.Email, &o.Phone, &o.Address,
		&o.YearsOfExperience, &o.ProjectsCompleted, &o.HappyClients,
		&o.ClientSatisfactionRate, &o.YearsInBusiness,
		&o.ScheduleURL, &o.LinkedInURL, &o.GitHubURL, &o.TelegramURL,
		&o.FacebookURL, &o.InstagramURL, &o.WhatsAppURL, &o.YouTubeURL,
		&o.NumberOfEmployees, &o.NumberOfServices, &o.IsDefault,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("error getting default organization: %w", err)
	}
	return o, nil
}

func (r *PostgresContentRepository) ListCompanyStats(ctx context.Context) ([]*content.CompanyStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_name, number_of_employees, projects_completed,
		        client_satisfaction_rate, happy_clients, years_in_business, company_location
		 FROM company_stats ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing company stats: %w", err)
	}
	defer rows.Close()

	stats := make([]*content.CompanyStats, 0)
	for rows.Next() {
		s := &content.CompanyStats{}
		if err := rows.Scan(&s.ID, &s.CompanyName, &s.NumberOfEmployees, &s.ProjectsCompleted,
			&s.ClientSatisfactionRate, &s.HappyClients, &s.YearsInBusiness, &s.CompanyLocation); err != nil {
			return nil, fmt.Errorf("error scanning company stats row: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
