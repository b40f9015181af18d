package newsletter

import "time"

// Subscriber is a newsletter recipient. Rows are never hard-deleted;
// unsubscribing flips IsActive off so a later subscribe can reactivate it.
type Subscriber struct {
	ID               int64
	Email            string
	IsActive         bool
	UnsubscribeToken string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
