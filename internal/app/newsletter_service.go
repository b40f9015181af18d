// internal/app/newsletter_service.go
package app

import (
	"context"
	"fmt"
	"strings"

	"company_site_backend/internal/domain/blog"
	"company_site_backend/internal/domain/newsletter"
	idb "company_site_backend/internal/infra/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SubscribeStatus distinguishes the three subscribe outcomes.
type SubscribeStatus string

const (
	SubscribeStatusNew         SubscribeStatus = "subscribed"
	SubscribeStatusReactivated SubscribeStatus = "reactivated"
	SubscribeStatusAlready     SubscribeStatus = "already_subscribed"
)

// SendStatus is the bulk newsletter outcome reported to the API caller.
type SendStatus string

const (
	SendStatusSent          SendStatus = "sent"
	SendStatusNoSubscribers SendStatus = "no_subscribers"
)

// NewsletterDispatcher is the slice of the pipeline the newsletter service
// needs: subscriber notices plus the bulk fan-out.
type NewsletterDispatcher interface {
	SubscriberCreated(ctx context.Context, s *newsletter.Subscriber) []Result
	BuildNewsletter(ctx context.Context, content NewsletterContent, recipients []string) NotificationJob
	SendBulk(ctx context.Context, nj NotificationJob) error
}

// SendNewsletterInput is the payload of the one caller-facing dispatch
// operation.
type SendNewsletterInput struct {
	Subject            string
	Content            string
	FeaturedPostID     int64
	IncludeRecentPosts bool
	ShowStats          bool
}

// SendNewsletterOutcome summarizes a bulk send for the API response.
type SendNewsletterOutcome struct {
	Status      SendStatus
	Subscribers int
}

type NewsletterService struct {
	subscribers newsletter.Repository
	posts       blog.Repository
	dispatcher  NewsletterDispatcher
	logger      *logrus.Logger
}

func NewNewsletterService(subscribers newsletter.Repository, posts blog.Repository, dispatcher NewsletterDispatcher, logger *logrus.Logger) *NewsletterService {
	return &NewsletterService{subscribers: subscribers, posts: posts, dispatcher: dispatcher, logger: logger}
}

// Subscribe deduplicates by email lookup before creating a row: an active
// row is reported as already subscribed, an inactive row is reactivated in
// place, and only a brand-new subscription triggers the confirmation and
// admin notice.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (SubscribeStatus, *newsletter.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil, fmt.Errorf("email is required")
	}

	existing, err := s.subscribers.GetByEmail(ctx, email)
	if err == nil {
		if existing.IsActive {
			return SubscribeStatusAlready, existing, nil
		}
		if err := s.subscribers.SetActive(ctx, existing.ID, true); err != nil {
			return "", nil, fmt.Errorf("failed to reactivate subscriber: %w", err)
		}
		existing.IsActive = true
		return SubscribeStatusReactivated, existing, nil
	}
	if err != idb.ErrSubscriberNotFound {
		return "", nil, fmt.Errorf("failed to check existing subscriber: %w", err)
	}

	sub := &newsletter.Subscriber{
		Email:            email,
		IsActive:         true,
		UnsubscribeToken: uuid.NewString(),
	}
	if err := s.subscribers.Create(ctx, sub); err != nil {
		return "", nil, fmt.Errorf("failed to create subscriber: %w", err)
	}

	results := s.dispatcher.SubscriberCreated(ctx, sub)
	logDispatchOutcome(s.logger, "newsletter subscription", results)
	return SubscribeStatusNew, sub, nil
}

// UnsubscribeByToken deactivates the row behind an unsubscribe link.
// Rows are never deleted so the address can resubscribe later.
func (s *NewsletterService) UnsubscribeByToken(ctx context.Context, token string) error {
	sub, err := s.subscribers.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if !sub.IsActive {
		return nil
	}
	return s.subscribers.SetActive(ctx, sub.ID, false)
}

func (s *NewsletterService) UnsubscribeByEmail(ctx context.Context, email string) error {
	sub, err := s.subscribers.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if !sub.IsActive {
		return nil
	}
	return s.subscribers.SetActive(ctx, sub.ID, false)
}

// SendNewsletter fans one combined message out to every active subscriber
// in a single transport call. A transport failure surfaces to the caller as
// one aggregate error; there is no per-recipient retry.
func (s *NewsletterService) SendNewsletter(ctx context.Context, input SendNewsletterInput) (SendNewsletterOutcome, error) {
	subs, err := s.subscribers.ListActive(ctx)
	if err != nil {
		return SendNewsletterOutcome{}, fmt.Errorf("failed to list active subscribers: %w", err)
	}
	if len(subs) == 0 {
		return SendNewsletterOutcome{Status: SendStatusNoSubscribers}, nil
	}

	content := NewsletterContent{
		Subject:   input.Subject,
		Content:   input.Content,
		ShowStats: input.ShowStats,
	}
	if input.FeaturedPostID > 0 {
		post, err := s.posts.GetPostByID(ctx, input.FeaturedPostID)
		if err != nil {
			// A missing featured post means the feature is absent, not an error.
			s.logger.Warnf("Featured post %d unavailable for newsletter: %v", input.FeaturedPostID, err)
		} else {
			content.FeaturedPost = post
		}
	}
	if input.IncludeRecentPosts {
		recent, err := s.posts.ListPosts(ctx, blog.PostFilter{PublishedOnly: true, Limit: 5})
		if err != nil {
			s.logger.Warnf("Recent posts unavailable for newsletter: %v", err)
		} else {
			content.RecentPosts = recent
		}
	}

	recipients := make([]string, 0, len(subs))
	for _, sub := range subs {
		recipients = append(recipients, sub.Email)
	}

	nj := s.dispatcher.BuildNewsletter(ctx, content, recipients)
	if err := s.dispatcher.SendBulk(ctx, nj); err != nil {
		return SendNewsletterOutcome{}, err
	}
	return SendNewsletterOutcome{Status: SendStatusSent, Subscribers: len(recipients)}, nil
}
