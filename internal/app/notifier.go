// internal/app/notifier.go
package app

import (
	"context"
	"fmt"
	"time"

	"company_site_backend/internal/domain/job"
	"company_site_backend/internal/domain/mail"
	"company_site_backend/internal/domain/newsletter"

	"github.com/sirupsen/logrus"
)

// NotificationKind classifies a notification job.
type NotificationKind string

const (
	KindConfirmation NotificationKind = "confirmation"
	KindAdminNotice  NotificationKind = "admin-notice"
	KindStatusUpdate NotificationKind = "status-update"
	KindNewsletter   NotificationKind = "newsletter"
	KindDigest       NotificationKind = "digest"
)

// NotificationJob is one email to render and send. It is transient: built
// per triggering event, attempted once, then discarded. Never persisted,
// never retried.
type NotificationJob struct {
	Kind       NotificationKind
	Template   string
	Subject    string
	Recipients []string
	Context    any
	// PlainBody is assembled up front by the builder so it exists even
	// when the HTML render later fails.
	PlainBody string
}

// Result is the per-job dispatch outcome. Failures are recorded here and
// logged; they never propagate to the write that triggered the job.
type Result struct {
	Kind       NotificationKind
	Template   string
	Recipients []string
	Err        error
}

// OK reports whether the job was delivered.
func (r Result) OK() bool { return r.Err == nil }

// InterviewDetails is caller-supplied context for an "interview" status
// update. None of it is derived from the stored application.
type InterviewDetails struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    string `json:"duration"`
	Type        string `json:"type"`
	Location    string `json:"location"`
	Interviewer string `json:"interviewer"`
}

// OfferDetails is caller-supplied context for an "offer" status update.
type OfferDetails struct {
	Link     string `json:"link"`
	Deadline string `json:"deadline"`
	Message  string `json:"message"`
}

// StatusDetails bundles the optional caller-supplied extras for a status
// change notification.
type StatusDetails struct {
	Interview *InterviewDetails
	Offer     *OfferDetails
}

// Notifier is the post-write notification pipeline. The write-handling code
// calls it explicitly after a successful commit; every method isolates its
// own failures and reports them only through the returned Results.
type Notifier interface {
	// ApplicationSubmitted dispatches the applicant confirmation followed by
	// the admin notice. Exactly two jobs, in that order, each independently
	// fallible.
	ApplicationSubmitted(ctx context.Context, j *job.Job, a *job.Application) []Result
	// ApplicationStatusChanged dispatches one status-update job when previous
	// differs from the application's current status, and nothing otherwise.
	ApplicationStatusChanged(ctx context.Context, j *job.Job, a *job.Application, previous job.ApplicationStatus, details StatusDetails) []Result
	// SubscriberCreated dispatches the subscriber confirmation and admin
	// notice for a newly created active subscriber. Inactive subscribers
	// trigger nothing.
	SubscriberCreated(ctx context.Context, s *newsletter.Subscriber) []Result
}

// EmailNotifier implements Notifier over the mail transport. The admin
// recipient list is injected at construction, not read from ambient state.
type EmailNotifier struct {
	applications job.ApplicationRepository
	subscribers  newsletter.Repository
	blogStats    BlogStatsSource
	sender       mail.Sender
	renderer     mail.Renderer
	logger       *logrus.Logger
	adminEmails  []string
	baseURL      string
	companyName  string
	now          func() time.Time
}

// BlogStatsSource supplies the post counters shown in newsletter footers.
type BlogStatsSource interface {
	CountPublished(ctx context.Context) (int, error)
	SumPublishedViews(ctx context.Context) (int64, error)
}

func NewEmailNotifier(
	applications job.ApplicationRepository,
	subscribers newsletter.Repository,
	blogStats BlogStatsSource,
	sender mail.Sender,
	renderer mail.Renderer,
	logger *logrus.Logger,
	adminEmails []string,
	baseURL string,
	companyName string,
) *EmailNotifier {
	return &EmailNotifier{
		applications: applications,
		subscribers:  subscribers,
		blogStats:    blogStats,
		sender:       sender,
		renderer:     renderer,
		logger:       logger,
		adminEmails:  adminEmails,
		baseURL:      baseURL,
		companyName:  companyName,
		now:          time.Now,
	}
}

// dispatch attempts every job in order. A render or transport error fails
// that job only: it is logged with recipient and kind, recorded in the
// Result, and the remaining jobs still run.
func (n *EmailNotifier) dispatch(ctx context.Context, jobs []NotificationJob) []Result {
	results := make([]Result, 0, len(jobs))
	for _, nj := range jobs {
		result := Result{Kind: nj.Kind, Template: nj.Template, Recipients: nj.Recipients}

		htmlBody, err := n.renderer.Render(nj.Template, nj.Context)
		if err != nil {
			n.logger.WithFields(logrus.Fields{
				"kind":       nj.Kind,
				"template":   nj.Template,
				"recipients": nj.Recipients,
			}).Errorf("Failed to render notification: %v", err)
			result.Err = err
			results = append(results, result)
			continue
		}

		err = n.sender.Send(ctx, mail.Message{
			Subject:   nj.Subject,
			PlainBody: nj.PlainBody,
			HTMLBody:  htmlBody,
			To:        nj.Recipients,
		})
		if err != nil {
			n.logger.WithFields(logrus.Fields{
				"kind":       nj.Kind,
				"template":   nj.Template,
				"recipients": nj.Recipients,
			}).Errorf("Failed to send notification: %v", err)
			result.Err = err
			results = append(results, result)
			continue
		}

		n.logger.WithFields(logrus.Fields{
			"kind":       nj.Kind,
			"template":   nj.Template,
			"recipients": nj.Recipients,
		}).Info("Notification sent")
		results = append(results, result)
	}
	return results
}

func (n *EmailNotifier) ApplicationSubmitted(ctx context.Context, j *job.Job, a *job.Application) []Result {
	jobs := []NotificationJob{
		n.buildApplicationConfirmation(j, a),
		n.buildAdminApplicationNotice(ctx, j, a),
	}
	return n.dispatch(ctx, jobs)
}

func (n *EmailNotifier) ApplicationStatusChanged(ctx context.Context, j *job.Job, a *job.Application, previous job.ApplicationStatus, details StatusDetails) []Result {
	if previous == a.Status {
		return nil
	}
	return n.dispatch(ctx, []NotificationJob{n.buildStatusUpdate(j, a, details)})
}

// SendBulk delivers one pre-built job in a single transport call. Unlike
// dispatch it surfaces the transport error to the caller: the bulk
// newsletter is the only caller-facing dispatch. A failed HTML render is
// logged and the message goes out with the plain-text body alone.
func (n *EmailNotifier) SendBulk(ctx context.Context, nj NotificationJob) error {
	htmlBody, err := n.renderer.Render(nj.Template, nj.Context)
	if err != nil {
		n.logger.WithFields(logrus.Fields{
			"kind":     nj.Kind,
			"template": nj.Template,
		}).Errorf("Failed to render bulk notification, sending plain text only: %v", err)
		htmlBody = ""
	}

	err = n.sender.Send(ctx, mail.Message{
		Subject:   nj.Subject,
		PlainBody: nj.PlainBody,
		HTMLBody:  htmlBody,
		To:        nj.Recipients,
	})
	if err != nil {
		n.logger.WithFields(logrus.Fields{
			"kind":       nj.Kind,
			"recipients": len(nj.Recipients),
		}).Errorf("Failed to send bulk notification: %v", err)
		return fmt.Errorf("bulk notification delivery failed: %w", err)
	}

	n.logger.WithFields(logrus.Fields{
		"kind":       nj.Kind,
		"recipients": len(nj.Recipients),
	}).Info("Bulk notification sent")
	return nil
}

func (n *EmailNotifier) SubscriberCreated(ctx context.Context, s *newsletter.Subscriber) []Result {
	if !s.IsActive {
		return nil
	}
	jobs := []NotificationJob{
		n.buildSubscriberConfirmation(s),
		n.buildAdminSubscriptionNotice(ctx, s),
	}
	return n.dispatch(ctx, jobs)
}
