// internal/app/notifier_builders.go
package app

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"company_site_backend/internal/domain/blog"
	"company_site_backend/internal/domain/job"
	"company_site_backend/internal/domain/newsletter"
)

// applicationStats are the counters embedded in admin notices. They are
// computed fresh on every notice: plain filtered counts, no cache, no
// transaction around count-then-send, so they are an informational snapshot
// taken at build time.
type applicationStats struct {
	Total    int
	Today    int
	ThisWeek int
	ForJob   int
	Pending  int
}

type subscriberStats struct {
	Total     int
	Today     int
	ThisWeek  int
	ThisMonth int
}

func (n *EmailNotifier) collectApplicationStats(ctx context.Context, jobID string) applicationStats {
	now := n.now()
	stats := applicationStats{}
	var err error

	// A failed count degrades to zero rather than failing the notice.
	if stats.Total, err = n.applications.CountAll(ctx); err != nil {
		n.logger.Warnf("Could not count applications: %v", err)
	}
	if stats.Today, err = n.applications.CountSince(ctx, startOfDay(now)); err != nil {
		n.logger.Warnf("Could not count today's applications: %v", err)
	}
	if stats.ThisWeek, err = n.applications.CountSince(ctx, startOfWeek(now)); err != nil {
		n.logger.Warnf("Could not count this week's applications: %v", err)
	}
	if jobID != "" {
		if stats.ForJob, err = n.applications.CountForJob(ctx, jobID); err != nil {
			n.logger.Warnf("Could not count applications for job %s: %v", jobID, err)
		}
	}
	if stats.Pending, err = n.applications.CountByStatus(ctx, job.StatusPending); err != nil {
		n.logger.Warnf("Could not count pending applications: %v", err)
	}
	return stats
}

func (n *EmailNotifier) collectSubscriberStats(ctx context.Context) subscriberStats {
	now := n.now()
	stats := subscriberStats{}
	var err error

	if stats.Total, err = n.subscribers.CountAll(ctx); err != nil {
		n.logger.Warnf("Could not count subscribers: %v", err)
	}
	if stats.Today, err = n.subscribers.CountSince(ctx, startOfDay(now)); err != nil {
		n.logger.Warnf("Could not count today's subscribers: %v", err)
	}
	if stats.ThisWeek, err = n.subscribers.CountSince(ctx, startOfWeek(now)); err != nil {
		n.logger.Warnf("Could not count this week's subscribers: %v", err)
	}
	if stats.ThisMonth, err = n.subscribers.CountSince(ctx, startOfMonth(now)); err != nil {
		n.logger.Warnf("Could not count this month's subscribers: %v", err)
	}
	return stats
}

// formatSalary renders "min - max CUR" with thousands separators, or an
// empty string when the job advertises no salary.
func formatSalary(s *job.Salary) string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%s - %s %s", groupDigits(s.Min), groupDigits(s.Max), s.Currency)
}

func groupDigits(v int64) string {
	raw := fmt.Sprintf("%d", v)
	neg := strings.HasPrefix(raw, "-")
	if neg {
		raw = raw[1:]
	}
	var b strings.Builder
	for i, r := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

const emailDateFormat = "January 2, 2006"
const emailTimeFormat = "3:04 PM"

type applicationEmailContext struct {
	ApplicantName   string
	ApplicantEmail  string
	JobTitle        string
	JobID           string
	JobCategory     string
	JobType         string
	JobLocation     string
	JobSalary       string
	ApplicationDate string
	ApplicationID   int64
	LinkedIn        string
	HasCoverLetter  bool
	JobURL          string
	CareersURL      string
	CompanyName     string
}

func (n *EmailNotifier) applicationContext(j *job.Job, a *job.Application) applicationEmailContext {
	return applicationEmailContext{
		ApplicantName:   a.FullName,
		ApplicantEmail:  a.Email,
		JobTitle:        j.Title,
		JobID:           j.ID,
		JobCategory:     j.Category,
		JobType:         j.Type.DisplayName(),
		JobLocation:     j.Location,
		JobSalary:       formatSalary(j.Salary),
		ApplicationDate: a.AppliedAt.Format(emailDateFormat),
		ApplicationID:   a.ID,
		LinkedIn:        a.LinkedIn.String,
		HasCoverLetter:  a.CoverLetter.Valid && a.CoverLetter.String != "",
		JobURL:          fmt.Sprintf("%s/jobs/%s", n.baseURL, j.ID),
		CareersURL:      n.baseURL + "/careers",
		CompanyName:     n.companyName,
	}
}

func (n *EmailNotifier) buildApplicationConfirmation(j *job.Job, a *job.Application) NotificationJob {
	emailCtx := n.applicationContext(j, a)
	plain := fmt.Sprintf(`Dear %s,

Thank you for your application for the %s position at %s!

Application Details:
- Position: %s
- Job ID: %s
- Application Date: %s
- Application ID: #%d

Your application has been successfully submitted and our hiring team will review it carefully.

What happens next:
1. Our team will review your application within 3-5 business days
2. If your profile matches our requirements, we'll contact you for screening
3. Selected candidates will be invited for interviews
4. We'll notify you of our decision regardless of the outcome

You can view the job description at: %s

Best regards,
%s Hiring Team
`, a.FullName, j.Title, n.companyName, j.Title, j.ID, emailCtx.ApplicationDate, a.ID, emailCtx.JobURL, n.companyName)

	return NotificationJob{
		Kind:       KindConfirmation,
		Template:   "job_application_confirmation",
		Subject:    fmt.Sprintf("Application Received: %s - %s", j.Title, n.companyName),
		Recipients: []string{a.Email},
		Context:    emailCtx,
		PlainBody:  plain,
	}
}

type adminApplicationNoticeContext struct {
	applicationEmailContext
	ResumeURL           string
	JobDeadline         string
	Stats               applicationStats
	NotificationTime    string
	AdminApplicationURL string
}

func (n *EmailNotifier) buildAdminApplicationNotice(ctx context.Context, j *job.Job, a *job.Application) NotificationJob {
	now := n.now()
	stats := n.collectApplicationStats(ctx, j.ID)

	emailCtx := adminApplicationNoticeContext{
		applicationEmailContext: n.applicationContext(j, a),
		ResumeURL:               a.ResumeURL,
		Stats:                   stats,
		NotificationTime:        now.Format(emailDateFormat + " at " + emailTimeFormat),
		AdminApplicationURL:     fmt.Sprintf("%s/admin/applications/%d", n.baseURL, a.ID),
	}
	if j.Deadline.Valid {
		emailCtx.JobDeadline = j.Deadline.Time.Format(emailDateFormat)
	}

	plain := fmt.Sprintf(`New Job Application - %s

A new application has been received:

Applicant: %s
Email: %s
Position: %s
Application ID: #%d
Date: %s

Job Details:
- Position: %s
- Department: %s
- Type: %s
- Location: %s

Statistics:
- Total Applications: %d
- Applications Today: %d
- Applications This Week: %d
- For This Position: %d
- Pending Review: %d

View application: %s

Generated at %s
`, n.companyName, a.FullName, a.Email, j.Title, a.ID, emailCtx.ApplicationDate,
		j.Title, j.Category, j.Type.DisplayName(), j.Location,
		stats.Total, stats.Today, stats.ThisWeek, stats.ForJob, stats.Pending,
		emailCtx.AdminApplicationURL, emailCtx.NotificationTime)

	return NotificationJob{
		Kind:       KindAdminNotice,
		Template:   "admin_job_application_notification",
		Subject:    fmt.Sprintf("New Job Application: %s - %s", j.Title, a.FullName),
		Recipients: n.adminEmails,
		Context:    emailCtx,
		PlainBody:  plain,
	}
}

type statusUpdateContext struct {
	ApplicantName   string
	Status          string
	JobTitle        string
	ApplicationID   int64
	ApplicationDate string
	JobURL          string
	CompanyName     string
	Interview       *InterviewDetails
	Offer           *OfferDetails
}

// statusTemplateName selects the template for the new status. Anything
// unrecognized falls back to the generic status-update template rather than
// failing the job.
func statusTemplateName(status job.ApplicationStatus) string {
	switch status {
	case job.StatusShortlisted:
		return "job_status_shortlisted"
	case job.StatusRejected:
		return "job_status_rejected"
	case job.StatusInterview:
		return "job_status_interview"
	case job.StatusOffer:
		return "job_status_offer"
	default:
		return "job_status_update"
	}
}

func statusSubject(status job.ApplicationStatus, jobTitle, companyName string) string {
	switch status {
	case job.StatusShortlisted:
		return fmt.Sprintf("Great News! You've been shortlisted - %s", jobTitle)
	case job.StatusRejected:
		return fmt.Sprintf("Application Update - %s", jobTitle)
	case job.StatusInterview:
		return fmt.Sprintf("Interview Scheduled - %s", jobTitle)
	case job.StatusReviewed:
		return fmt.Sprintf("Application Under Review - %s", jobTitle)
	case job.StatusOffer:
		return fmt.Sprintf("Job Offer - %s at %s", jobTitle, companyName)
	default:
		return fmt.Sprintf("Application Status Update - %s", jobTitle)
	}
}

func (n *EmailNotifier) buildStatusUpdate(j *job.Job, a *job.Application, details StatusDetails) NotificationJob {
	emailCtx := statusUpdateContext{
		ApplicantName:   a.FullName,
		Status:          string(a.Status),
		JobTitle:        j.Title,
		ApplicationID:   a.ID,
		ApplicationDate: a.AppliedAt.Format(emailDateFormat),
		JobURL:          fmt.Sprintf("%s/jobs/%s", n.baseURL, j.ID),
		CompanyName:     n.companyName,
	}
	// Interview and offer extras only apply to their own statuses.
	switch a.Status {
	case job.StatusInterview:
		emailCtx.Interview = details.Interview
	case job.StatusOffer:
		emailCtx.Offer = details.Offer
	}

	return NotificationJob{
		Kind:       KindStatusUpdate,
		Template:   statusTemplateName(a.Status),
		Subject:    statusSubject(a.Status, j.Title, n.companyName),
		Recipients: []string{a.Email},
		Context:    emailCtx,
		PlainBody:  n.statusUpdatePlainBody(emailCtx, a.Status),
	}
}

func (n *EmailNotifier) statusUpdatePlainBody(c statusUpdateContext, status job.ApplicationStatus) string {
	switch status {
	case job.StatusShortlisted:
		return fmt.Sprintf(`Dear %s,

Congratulations! Your application for %s has been shortlisted for the next round.

Our hiring team was impressed with your application and we would like to move forward with the next stage of our selection process.

We will contact you within 2-3 business days to schedule your interview.

Best regards,
%s Hiring Team
`, c.ApplicantName, c.JobTitle, c.CompanyName)
	case job.StatusRejected:
		return fmt.Sprintf(`Dear %s,

Thank you for your interest in the %s position at %s.

After careful consideration, we have decided to move forward with other candidates for this position. This decision was not easy given the quality of applications we received.

We encourage you to apply for future openings that match your skills and will keep your application in our talent pool for future consideration.

Best regards,
%s Hiring Team
`, c.ApplicantName, c.JobTitle, c.CompanyName, c.CompanyName)
	case job.StatusInterview:
		interviewInfo := ""
		if c.Interview != nil {
			interviewInfo = fmt.Sprintf(`
Interview Details:
Date: %s
Time: %s
Type: %s
Location: %s
`, valueOrTBD(c.Interview.Date), valueOrTBD(c.Interview.Time), valueOrTBD(c.Interview.Type), valueOrTBD(c.Interview.Location))
		}
		return fmt.Sprintf(`Dear %s,

We would like to invite you for an interview for the %s position.
%s
Please confirm your attendance by replying to this email.

Best regards,
%s Hiring Team
`, c.ApplicantName, c.JobTitle, interviewInfo, c.CompanyName)
	case job.StatusOffer:
		offerInfo := ""
		if c.Offer != nil {
			offerInfo = fmt.Sprintf(`
Offer Details: %s
Response Deadline: %s

%s
`, valueOrTBD(c.Offer.Link), valueOrTBD(c.Offer.Deadline), c.Offer.Message)
		}
		return fmt.Sprintf(`Dear %s,

We are delighted to extend you an offer for the %s position at %s.
%s
Best regards,
%s Hiring Team
`, c.ApplicantName, c.JobTitle, c.CompanyName, offerInfo, c.CompanyName)
	default:
		return fmt.Sprintf(`Dear %s,

Your application for %s has been updated.

Current Status: %s
Application ID: #%d

We will keep you updated on any further developments.

Best regards,
%s Hiring Team
`, c.ApplicantName, c.JobTitle, capitalize(c.Status), c.ApplicationID, c.CompanyName)
	}
}

func valueOrTBD(s string) string {
	if s == "" {
		return "TBD"
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

type subscriberEmailContext struct {
	Email            string
	SubscriptionDate string
	WebsiteURL       string
	UnsubscribeURL   string
	CompanyName      string
}

func (n *EmailNotifier) buildSubscriberConfirmation(s *newsletter.Subscriber) NotificationJob {
	emailCtx := subscriberEmailContext{
		Email:            s.Email,
		SubscriptionDate: n.now().Format(emailDateFormat),
		WebsiteURL:       n.baseURL,
		UnsubscribeURL:   fmt.Sprintf("%s/newsletter/unsubscribe/%s", n.baseURL, s.UnsubscribeToken),
		CompanyName:      n.companyName,
	}

	plain := fmt.Sprintf(`Hi there!

Thank you for subscribing to the %s Newsletter! We're excited to have you join our community.

Your subscription has been confirmed:
Email: %s
Subscribed on: %s

What you can expect from us:
- Latest updates on our projects and services
- Tech insights and development tips
- Exclusive announcements and early access
- Industry trends and best practices

Visit our website: %s

To unsubscribe: %s

Best regards,
%s Team
`, n.companyName, s.Email, emailCtx.SubscriptionDate, n.baseURL, emailCtx.UnsubscribeURL, n.companyName)

	return NotificationJob{
		Kind:       KindConfirmation,
		Template:   "subscription_confirmation",
		Subject:    fmt.Sprintf("Welcome to %s Newsletter!", n.companyName),
		Recipients: []string{s.Email},
		Context:    emailCtx,
		PlainBody:  plain,
	}
}

type adminSubscriptionNoticeContext struct {
	SubscriberEmail  string
	SubscriberID     int64
	SubscriptionDate string
	SubscriptionTime string
	NotificationTime string
	Stats            subscriberStats
	CompanyName      string
}

func (n *EmailNotifier) buildAdminSubscriptionNotice(ctx context.Context, s *newsletter.Subscriber) NotificationJob {
	now := n.now()
	stats := n.collectSubscriberStats(ctx)

	emailCtx := adminSubscriptionNoticeContext{
		SubscriberEmail:  s.Email,
		SubscriberID:     s.ID,
		SubscriptionDate: now.Format(emailDateFormat),
		SubscriptionTime: now.Format(emailTimeFormat),
		NotificationTime: now.Format(emailDateFormat + " at " + emailTimeFormat),
		Stats:            stats,
		CompanyName:      n.companyName,
	}

	plain := fmt.Sprintf(`New Newsletter Subscription - %s

A new user has subscribed to the newsletter:

Subscriber Details:
- Email: %s
- Date: %s
- Time: %s
- Subscriber ID: #%d

Current Statistics:
- Total Subscribers: %d
- New Today: %d
- New This Week: %d
- New This Month: %d

This notification was generated at %s

Best regards,
%s Newsletter System
`, n.companyName, s.Email, emailCtx.SubscriptionDate, emailCtx.SubscriptionTime, s.ID,
		stats.Total, stats.Today, stats.ThisWeek, stats.ThisMonth,
		emailCtx.NotificationTime, n.companyName)

	return NotificationJob{
		Kind:       KindAdminNotice,
		Template:   "admin_subscription_notification",
		Subject:    fmt.Sprintf("New Newsletter Subscription: %s", s.Email),
		Recipients: n.adminEmails,
		Context:    emailCtx,
		PlainBody:  plain,
	}
}

// NewsletterContent is the caller-assembled payload for a bulk newsletter.
type NewsletterContent struct {
	Subject      string
	Content      string
	FeaturedPost *blog.Post
	RecentPosts  []*blog.Post
	ShowStats    bool
}

type newsletterEmailContext struct {
	Subject          string
	NewsletterDate   string
	Content          template.HTML
	FeaturedPost     *blog.Post
	RecentPosts      []*blog.Post
	ShowStats        bool
	TotalPosts       int
	TotalSubscribers int
	TotalViews       int64
	WebsiteURL       string
	BlogURL          string
	UnsubscribeURL   string
	CompanyName      string
}

// BuildNewsletter assembles the single combined job fanned out to every
// active subscriber. Blog counters degrade to zero on lookup failure.
func (n *EmailNotifier) BuildNewsletter(ctx context.Context, content NewsletterContent, recipients []string) NotificationJob {
	totalPosts, err := n.blogStats.CountPublished(ctx)
	if err != nil {
		n.logger.Warnf("Could not count published posts for newsletter: %v", err)
	}
	totalViews, err := n.blogStats.SumPublishedViews(ctx)
	if err != nil {
		n.logger.Warnf("Could not sum post views for newsletter: %v", err)
	}

	emailCtx := newsletterEmailContext{
		Subject:          content.Subject,
		NewsletterDate:   n.now().Format(emailDateFormat),
		Content:          template.HTML(content.Content),
		FeaturedPost:     content.FeaturedPost,
		RecentPosts:      content.RecentPosts,
		ShowStats:        content.ShowStats,
		TotalPosts:       totalPosts,
		TotalSubscribers: len(recipients),
		TotalViews:       totalViews,
		WebsiteURL:       n.baseURL,
		BlogURL:          n.baseURL + "/blog",
		UnsubscribeURL:   n.baseURL + "/newsletter/unsubscribe",
		CompanyName:      n.companyName,
	}

	var featured, recent string
	if content.FeaturedPost != nil {
		featured = content.FeaturedPost.Title
	} else {
		featured = "No featured post"
	}
	if len(content.RecentPosts) > 0 {
		titles := make([]string, 0, len(content.RecentPosts))
		for _, p := range content.RecentPosts {
			titles = append(titles, "- "+p.Title)
		}
		recent = strings.Join(titles, "\n")
	} else {
		recent = "No recent posts"
	}

	plain := fmt.Sprintf(`%s
%s

%s

Featured Article:
%s

Recent Articles:
%s

Visit our website: %s
Unsubscribe: %s

Best regards,
%s Team
`, content.Subject, emailCtx.NewsletterDate, content.Content, featured, recent,
		n.baseURL, emailCtx.UnsubscribeURL, n.companyName)

	return NotificationJob{
		Kind:       KindNewsletter,
		Template:   "newsletter",
		Subject:    content.Subject,
		Recipients: recipients,
		Context:    emailCtx,
		PlainBody:  plain,
	}
}

type digestEmailContext struct {
	GeneratedAt      string
	ApplicationStats applicationStats
	SubscriberStats  subscriberStats
	CompanyName      string
}

// SendAdminDigest emails the aggregate counters to the admin list. Used by
// the weekly scheduler; best-effort like every other notice.
func (n *EmailNotifier) SendAdminDigest(ctx context.Context) []Result {
	now := n.now()
	appStats := n.collectApplicationStats(ctx, "")
	subStats := n.collectSubscriberStats(ctx)

	emailCtx := digestEmailContext{
		GeneratedAt:      now.Format(emailDateFormat + " at " + emailTimeFormat),
		ApplicationStats: appStats,
		SubscriberStats:  subStats,
		CompanyName:      n.companyName,
	}

	plain := fmt.Sprintf(`Weekly Summary - %s

Job Applications:
- Total: %d
- Today: %d
- This Week: %d
- Pending Review: %d

Newsletter Subscribers:
- Total: %d
- New Today: %d
- New This Week: %d
- New This Month: %d

Generated at %s
`, n.companyName,
		appStats.Total, appStats.Today, appStats.ThisWeek, appStats.Pending,
		subStats.Total, subStats.Today, subStats.ThisWeek, subStats.ThisMonth,
		emailCtx.GeneratedAt)

	return n.dispatch(ctx, []NotificationJob{{
		Kind:       KindDigest,
		Template:   "admin_weekly_digest",
		Subject:    fmt.Sprintf("Weekly Summary - %s", n.companyName),
		Recipients: n.adminEmails,
		Context:    emailCtx,
		PlainBody:  plain,
	}})
}
