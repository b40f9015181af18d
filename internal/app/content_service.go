// internal/app/content_service.go
package app

import (
	"context"
	"fmt"
	"strings"

	"company_site_backend/internal/domain/content"

	"github.com/sirupsen/logrus"
)

// MessageInput is a contact-form submission payload.
type MessageInput struct {
	FullName string
	Email    string
	Content  string
}

type ContentService struct {
	repo   content.Repository
	logger *logrus.Logger
}

func NewContentService(repo content.Repository, logger *logrus.Logger) *ContentService {
	return &ContentService{repo: repo, logger: logger}
}

// SubmitMessage stores a contact message. It triggers no notifications;
// messages are reviewed from the admin listing.
func (s *ContentService) SubmitMessage(ctx context.Context, input MessageInput) (*content.Message, error) {
	if strings.TrimSpace(input.FullName) == "" || strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("full name, email and content are required")
	}

	m := &content.Message{
		FullName: strings.TrimSpace(input.FullName),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Content:  strings.TrimSpace(input.Content),
	}
	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *ContentService) ListMessages(ctx context.Context, unreadOnly bool) ([]*content.Message, error) {
	return s.repo.ListMessages(ctx, unreadOnly)
}

func (s *ContentService) MarkMessageRead(ctx context.Context, id int64) error {
	return s.repo.MarkMessageRead(ctx, id)
}

func (s *ContentService) ListTestimonials(ctx context.Context) ([]*content.Testimonial, error) {
	return s.repo.ListTestimonials(ctx)
}

func (s *ContentService) ListProjects(ctx context.Context) ([]*content.Project, error) {
	return s.repo.ListProjects(ctx)
}

func (s *ContentService) CountProjects(ctx context.Context) (int, error) {
	return s.repo.CountProjects(ctx)
}

func (s *ContentService) GetOrganization(ctx context.Context) (*content.Organization, error) {
	return s.repo.GetDefaultOrganization(ctx)
}

func (s *ContentService) ListCompanyStats(ctx context.Context) ([]*content.CompanyStats, error) {
	return s.repo.ListCompanyStats(ctx)
}
