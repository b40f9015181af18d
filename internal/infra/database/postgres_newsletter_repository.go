// internal/infra/database/postgres_newsletter_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"company_site_backend/internal/domain/newsletter"
)

// Custom errors specific to the newsletter repository
var ErrSubscriberNotFound = fmt.Errorf("newsletter subscriber not found")

type PostgresNewsletterRepository struct {
	db *sql.DB
}

func NewPostgresNewsletterRepository(db *sql.DB) *PostgresNewsletterRepository {
	return &PostgresNewsletterRepository{db: db}
}

const subscriberColumns = `id, email, is_active, unsubscribe_token, created_at, updated_at`

func scanSubscriber(row interface{ Scan(...any) error }) (*newsletter.Subscriber, error) {
	s := &newsletter.Subscriber{}
	err := row.Scan(&s.ID, &s.Email, &s.IsActive, &s.UnsubscribeToken, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresNewsletterRepository) Create(ctx context.Context, s *newsletter.Subscriber) error {
	query := `INSERT INTO newsletter_subscribers (email, is_active, unsubscribe_token)
	           VALUES ($1, $2, $3)
	           RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, s.Email, s.IsActive, s.UnsubscribeToken).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating newsletter subscriber: %w", err)
	}
	return nil
}

// GetByEmail returns the most recent row for an email. Email carries no
// unique constraint; deduplication happens in the application layer.
func (r *PostgresNewsletterRepository) GetByEmail(ctx context.Context, email string) (*newsletter.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM newsletter_subscribers
	           WHERE email = $1 ORDER BY created_at DESC LIMIT 1`
	s, err := scanSubscriber(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("error getting subscriber by email: %w", err)
	}
	return s, nil
}

func (r *PostgresNewsletterRepository) GetByToken(ctx context.Context, token string) (*newsletter.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM newsletter_subscribers WHERE unsubscribe_token = $1`
	s, err := scanSubscriber(r.db.QueryRowContext(ctx, query, token))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("error getting subscriber by token: %w", err)
	}
	return s, nil
}

func (r *PostgresNewsletterRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE newsletter_subscribers SET is_active = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("error updating subscriber active flag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking updated subscriber rows: %w", err)
	}
	if affected == 0 {
		return ErrSubscriberNotFound
	}
	return nil
}

func (r *PostgresNewsletterRepository) ListActive(ctx context.Context) ([]*newsletter.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM newsletter_subscribers
	           WHERE is_active = TRUE ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing active subscribers: %w", err)
	}
	defer rows.Close()

	subs := make([]*newsletter.Subscriber, 0)
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning subscriber row: %w", err)
		}
		subs = append(subs, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriber rows: %w", err)
	}
	return subs, nil
}

func (r *PostgresNewsletterRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM newsletter_subscribers`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting subscribers: %w", err)
	}
	return n, nil
}

func (r *PostgresNewsletterRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM newsletter_subscribers WHERE created_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting subscribers since %s: %w", since.Format(time.RFC3339), err)
	}
	return n, nil
}
