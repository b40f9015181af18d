package newsletter

import (
	"context"
	"time"
)

// Repository defines persistence operations for newsletter subscribers.
//
// Email is not unique at the database level; callers deduplicate with
// GetByEmail before creating a new row. Two concurrent subscribes for the
// same address can therefore still race into two rows; accepted behavior.
type Repository interface {
	Create(ctx context.Context, s *Subscriber) error
	GetByEmail(ctx context.Context, email string) (*Subscriber, error)
	GetByToken(ctx context.Context, token string) (*Subscriber, error)
	SetActive(ctx context.Context, id int64, active bool) error
	ListActive(ctx context.Context) ([]*Subscriber, error)

	CountAll(ctx context.Context) (int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}
