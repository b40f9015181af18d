package app

import (
	"context"
	"testing"
	"time"

	"company_site_backend/internal/domain/job"
	"company_site_backend/internal/domain/newsletter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJob() *job.Job {
	return &job.Job{
		ID:       "9f3a1c9e-aaaa-bbbb-cccc-000000000001",
		Title:    "Backend Engineer",
		Category: "Engineering",
		Type:     job.TypeFullTime,
		Location: "Remote",
		Salary:   &job.Salary{Min: 60000, Max: 90000, Currency: "USD"},
		IsActive: true,
		PostedAt: time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

func testApplication() *job.Application {
	return &job.Application{
		ID:        42,
		JobID:     "9f3a1c9e-aaaa-bbbb-cccc-000000000001",
		FullName:  "Abebe Kebede",
		Email:     "abebe@example.com",
		ResumeURL: "https://files.example.com/resume.pdf",
		Status:    job.StatusPending,
		AppliedAt: time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC),
	}
}

func newTestNotifier(sender *fakeSender, renderer *fakeRenderer) (*EmailNotifier, *fakeApplicationRepo, *fakeSubscriberRepo) {
	apps := newFakeApplicationRepo()
	subs := newFakeSubscriberRepo()
	n := NewEmailNotifier(
		apps,
		subs,
		&fakeBlogRepo{},
		sender,
		renderer,
		testLogger(),
		[]string{"admin@example.com", "hr@example.com"},
		"https://example.com",
		"Example Co",
	)
	return n, apps, subs
}

func TestApplicationSubmitted_SendsConfirmationThenAdminNotice(t *testing.T) {
	sender := &fakeSender{}
	renderer := &fakeRenderer{}
	n, _, _ := newTestNotifier(sender, renderer)

	results := n.ApplicationSubmitted(context.Background(), testJob(), testApplication())

	require.Len(t, results, 2)
	assert.True(t, results[0].OK())
	assert.True(t, results[1].OK())
	assert.Equal(t, KindConfirmation, results[0].Kind)
	assert.Equal(t, KindAdminNotice, results[1].Kind)

	require.Len(t, sender.sent, 2)
	assert.Equal(t, []string{"abebe@example.com"}, sender.sent[0].To)
	assert.Equal(t, []string{"admin@example.com", "hr@example.com"}, sender.sent[1].To)
	assert.Contains(t, sender.sent[0].Subject, "Application Received")
	assert.Contains(t, sender.sent[1].Subject, "New Job Application")
	assert.NotEmpty(t, sender.sent[0].PlainBody)
	assert.NotEmpty(t, sender.sent[0].HTMLBody)
}

func TestApplicationSubmitted_RenderFailureDoesNotStopSibling(t *testing.T) {
	sender := &fakeSender{}
	renderer := &fakeRenderer{failFor: map[string]bool{"job_application_confirmation": true}}
	n, _, _ := newTestNotifier(sender, renderer)

	results := n.ApplicationSubmitted(context.Background(), testJob(), testApplication())

	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)

	// Only the admin notice went out.
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"admin@example.com", "hr@example.com"}, sender.sent[0].To)
}

func TestApplicationSubmitted_SendFailureDoesNotStopSibling(t *testing.T) {
	sender := &fakeSender{failNext: 1}
	renderer := &fakeRenderer{}
	n, _, _ := newTestNotifier(sender, renderer)

	results := n.ApplicationSubmitted(context.Background(), testJob(), testApplication())

	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	require.Len(t, sender.sent, 1)
}

func TestApplicationStatusChanged_UnchangedStatusIsSilent(t *testing.T) {
	sender := &fakeSender{}
	n, _, _ := newTestNotifier(sender, &fakeRenderer{})

	a := testApplication()
	a.Status = job.StatusReviewed

	results := n.ApplicationStatusChanged(context.Background(), testJob(), a, job.StatusReviewed, StatusDetails{})

	assert.Nil(t, results)
	assert.Empty(t, sender.sent)
}

func TestApplicationStatusChanged_TemplatePerStatus(t *testing.T) {
	tests := []struct {
		status   job.ApplicationStatus
		template string
	}{
		{job.StatusShortlisted, "job_status_shortlisted"},
		{job.StatusRejected, "job_status_rejected"},
		{job.StatusInterview, "job_status_interview"},
		{job.StatusOffer, "job_status_offer"},
		{job.StatusReviewed, "job_status_update"},
		{job.ApplicationStatus("archived"), "job_status_update"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			renderer := &fakeRenderer{}
			n, _, _ := newTestNotifier(&fakeSender{}, renderer)

			a := testApplication()
			a.Status = tt.status

			results := n.ApplicationStatusChanged(context.Background(), testJob(), a, job.StatusPending, StatusDetails{})

			require.Len(t, results, 1)
			assert.Equal(t, tt.template, results[0].Template)
			assert.Equal(t, []string{"abebe@example.com"}, results[0].Recipients)
		})
	}
}

func TestApplicationStatusChanged_InterviewDetailsOnlyForInterview(t *testing.T) {
	sender := &fakeSender{}
	n, _, _ := newTestNotifier(sender, &fakeRenderer{})

	details := StatusDetails{
		Interview: &InterviewDetails{Date: "2025-03-20", Time: "10:00 AM", Type: "Video call"},
		Offer:     &OfferDetails{Link: "https://example.com/offer"},
	}

	a := testApplication()
	a.Status = job.StatusShortlisted
	results := n.ApplicationStatusChanged(context.Background(), testJob(), a, job.StatusPending, details)

	require.Len(t, results, 1)
	require.Len(t, sender.sent, 1)
	assert.NotContains(t, sender.sent[0].PlainBody, "2025-03-20")
	assert.NotContains(t, sender.sent[0].PlainBody, "https://example.com/offer")

	a.Status = job.StatusInterview
	n.ApplicationStatusChanged(context.Background(), testJob(), a, job.StatusShortlisted, details)
	require.Len(t, sender.sent, 2)
	assert.Contains(t, sender.sent[1].PlainBody, "2025-03-20")
}

func TestSubscriberCreated_InactiveSubscriberIsSilent(t *testing.T) {
	sender := &fakeSender{}
	n, _, _ := newTestNotifier(sender, &fakeRenderer{})

	results := n.SubscriberCreated(context.Background(), &newsletter.Subscriber{
		Email:    "someone@example.com",
		IsActive: false,
	})

	assert.Nil(t, results)
	assert.Empty(t, sender.sent)
}

func TestSubscriberCreated_SendsConfirmationAndAdminNotice(t *testing.T) {
	sender := &fakeSender{}
	n, _, _ := newTestNotifier(sender, &fakeRenderer{})

	results := n.SubscriberCreated(context.Background(), &newsletter.Subscriber{
		ID:               7,
		Email:            "someone@example.com",
		IsActive:         true,
		UnsubscribeToken: "tok-123",
	})

	require.Len(t, results, 2)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, []string{"someone@example.com"}, sender.sent[0].To)
	assert.Contains(t, sender.sent[0].PlainBody, "tok-123")
	assert.Equal(t, []string{"admin@example.com", "hr@example.com"}, sender.sent[1].To)
}

func TestCollectApplicationStats_WindowBoundaries(t *testing.T) {
	apps := newFakeApplicationRepo()
	n := NewEmailNotifier(apps, newFakeSubscriberRepo(), &fakeBlogRepo{}, &fakeSender{}, &fakeRenderer{}, testLogger(),
		[]string{"admin@example.com"}, "https://example.com", "Example Co")

	// Wednesday 2025-03-12 23:50 local time.
	now := time.Date(2025, time.March, 12, 23, 50, 0, 0, time.Local)
	n.now = func() time.Time { return now }

	n.collectApplicationStats(context.Background(), "job-1")

	require.Len(t, apps.sinceArgs, 2)
	assert.Equal(t, time.Date(2025, time.March, 12, 0, 0, 0, 0, time.Local), apps.sinceArgs[0], "today window starts at local midnight")
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local), apps.sinceArgs[1], "week window starts Monday")
}

func TestCollectApplicationStats_CountFailureDegradesToZero(t *testing.T) {
	apps := newFakeApplicationRepo()
	apps.countErr = assert.AnError
	n := NewEmailNotifier(apps, newFakeSubscriberRepo(), &fakeBlogRepo{}, &fakeSender{}, &fakeRenderer{}, testLogger(),
		[]string{"admin@example.com"}, "https://example.com", "Example Co")

	stats := n.collectApplicationStats(context.Background(), "job-1")

	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.Today)
	assert.Zero(t, stats.ThisWeek)
	assert.Zero(t, stats.ForJob)
	assert.Zero(t, stats.Pending)
}

func TestSendBulk_RenderFailureFallsBackToPlainText(t *testing.T) {
	sender := &fakeSender{}
	renderer := &fakeRenderer{failFor: map[string]bool{"newsletter": true}}
	n, _, _ := newTestNotifier(sender, renderer)

	nj := n.BuildNewsletter(context.Background(), NewsletterContent{Subject: "Hello", Content: "<p>Hi</p>"},
		[]string{"a@example.com", "b@example.com"})

	err := n.SendBulk(context.Background(), nj)

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Empty(t, sender.sent[0].HTMLBody)
	assert.NotEmpty(t, sender.sent[0].PlainBody)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sender.sent[0].To)
}

func TestSendBulk_TransportFailureSurfaces(t *testing.T) {
	sender := &fakeSender{failNext: 1}
	n, _, _ := newTestNotifier(sender, &fakeRenderer{})

	nj := n.BuildNewsletter(context.Background(), NewsletterContent{Subject: "Hello", Content: "Hi"},
		[]string{"a@example.com"})

	err := n.SendBulk(context.Background(), nj)

	assert.Error(t, err)
}

func TestSendAdminDigest(t *testing.T) {
	sender := &fakeSender{}
	n, apps, _ := newTestNotifier(sender, &fakeRenderer{})
	apps.total = 12

	results := n.SendAdminDigest(context.Background())

	require.Len(t, results, 1)
	assert.Equal(t, KindDigest, results[0].Kind)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"admin@example.com", "hr@example.com"}, sender.sent[0].To)
	assert.Contains(t, sender.sent[0].PlainBody, "Total: 12")
}
