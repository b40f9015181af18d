package content

import "context"

// Repository defines persistence operations for the site's static-ish
// content: contact messages, testimonials, portfolio projects and the
// organization profile.
type Repository interface {
	CreateMessage(ctx context.Context, m *Message) error
	ListMessages(ctx context.Context, unreadOnly bool) ([]*Message, error)
	MarkMessageRead(ctx context.Context, id int64) error

	ListTestimonials(ctx context.Context) ([]*Testimonial, error)

	ListProjects(ctx context.Context) ([]*Project, error)
	CountProjects(ctx context.Context) (int, error)

	GetDefaultOrganization(ctx context.Context) (*Organization, error)
	ListCompanyStats(ctx context.Context) ([]*CompanyStats, error)
}
