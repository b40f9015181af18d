package app

import (
	"context"
	"testing"
	"time"

	"company_site_backend/internal/domain/job"
	idb "company_site_backend/internal/infra/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJobService(jobs *fakeJobRepo, apps *fakeApplicationRepo, notifier *fakeNotifier) *JobService {
	return NewJobService(jobs, apps, notifier, testLogger())
}

func TestApply_StoresApplicationAndNotifies(t *testing.T) {
	jobs := newFakeJobRepo()
	jobs.jobs["job-1"] = &job.Job{ID: "job-1", Title: "Backend Engineer", IsActive: true}
	apps := newFakeApplicationRepo()
	notifier := &fakeNotifier{}
	svc := newTestJobService(jobs, apps, notifier)

	a, err := svc.Apply(context.Background(), "job-1", ApplicationInput{
		FullName:  "Sara Tesfaye",
		Email:     "sara@example.com",
		ResumeURL: "https://files.example.com/cv.pdf",
		LinkedIn:  "https://linkedin.com/in/sara",
	})

	require.NoError(t, err)
	assert.NotZero(t, a.ID)
	assert.Equal(t, job.StatusPending, a.Status)
	assert.Equal(t, "job-1", a.JobID)
	assert.True(t, a.LinkedIn.Valid)
	assert.False(t, a.CoverLetter.Valid)

	require.Len(t, notifier.submitted, 1)
	assert.Equal(t, a, notifier.submitted[0])
}

func TestApply_InactiveJobIsRejected(t *testing.T) {
	jobs := newFakeJobRepo()
	jobs.jobs["job-1"] = &job.Job{ID: "job-1", Title: "Backend Engineer", IsActive: false}
	apps := newFakeApplicationRepo()
	notifier := &fakeNotifier{}
	svc := newTestJobService(jobs, apps, notifier)

	_, err := svc.Apply(context.Background(), "job-1", ApplicationInput{
		FullName:  "Sara Tesfaye",
		Email:     "sara@example.com",
		ResumeURL: "https://files.example.com/cv.pdf",
	})

	assert.ErrorIs(t, err, ErrJobInactive)
	assert.Empty(t, apps.applications, "no row is written for an inactive job")
	assert.Empty(t, notifier.submitted)
}

func TestApply_UnknownJob(t *testing.T) {
	svc := newTestJobService(newFakeJobRepo(), newFakeApplicationRepo(), &fakeNotifier{})

	_, err := svc.Apply(context.Background(), "missing", ApplicationInput{
		FullName:  "Sara Tesfaye",
		Email:     "sara@example.com",
		ResumeURL: "https://files.example.com/cv.pdf",
	})

	assert.ErrorIs(t, err, idb.ErrJobNotFound)
}

func TestCreateJob_GeneratesIDWhenAbsent(t *testing.T) {
	jobs := newFakeJobRepo()
	svc := newTestJobService(jobs, newFakeApplicationRepo(), &fakeNotifier{})

	j := &job.Job{Title: "Backend Engineer"}
	require.NoError(t, svc.CreateJob(context.Background(), j))
	assert.NotEmpty(t, j.ID)

	j2 := &job.Job{ID: "custom-id", Title: "Frontend Engineer"}
	require.NoError(t, svc.CreateJob(context.Background(), j2))
	assert.Equal(t, "custom-id", j2.ID)
}

func TestUpdateApplicationStatus_PassesPreviousStatusToNotifier(t *testing.T) {
	jobs := newFakeJobRepo()
	jobs.jobs["job-1"] = &job.Job{ID: "job-1", Title: "Backend Engineer", IsActive: true}
	apps := newFakeApplicationRepo()
	apps.applications[1] = &job.Application{ID: 1, JobID: "job-1", Status: job.StatusPending}
	notifier := &fakeNotifier{}
	svc := newTestJobService(jobs, apps, notifier)

	// pending -> reviewed -> shortlisted
	a, err := svc.UpdateApplicationStatus(context.Background(), 1, job.StatusReviewed, StatusDetails{})
	require.NoError(t, err)
	assert.Equal(t, job.StatusReviewed, a.Status)

	a, err = svc.UpdateApplicationStatus(context.Background(), 1, job.StatusShortlisted, StatusDetails{})
	require.NoError(t, err)
	assert.Equal(t, job.StatusShortlisted, a.Status)

	require.Len(t, notifier.statusChanges, 2)
	assert.Equal(t, job.StatusPending, notifier.statusChanges[0].Previous)
	assert.Equal(t, job.StatusReviewed, notifier.statusChanges[0].Application.Status)
	assert.Equal(t, job.StatusReviewed, notifier.statusChanges[1].Previous)
	assert.Equal(t, job.StatusShortlisted, notifier.statusChanges[1].Application.Status)
}

func TestUpdateApplicationStatus_UnknownStatusIsRejected(t *testing.T) {
	apps := newFakeApplicationRepo()
	apps.applications[1] = &job.Application{ID: 1, JobID: "job-1", Status: job.StatusPending}
	svc := newTestJobService(newFakeJobRepo(), apps, &fakeNotifier{})

	_, err := svc.UpdateApplicationStatus(context.Background(), 1, "promoted", StatusDetails{})

	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, job.StatusPending, apps.applications[1].Status, "row is untouched")
}

func TestUpdateApplicationStatus_MissingJobStillReturnsApplication(t *testing.T) {
	apps := newFakeApplicationRepo()
	apps.applications[1] = &job.Application{ID: 1, JobID: "gone", Status: job.StatusPending}
	notifier := &fakeNotifier{}
	svc := newTestJobService(newFakeJobRepo(), apps, notifier)

	a, err := svc.UpdateApplicationStatus(context.Background(), 1, job.StatusReviewed, StatusDetails{})

	require.NoError(t, err, "the status write succeeded; a missing job only costs the notification")
	assert.Equal(t, job.StatusReviewed, a.Status)
	assert.Empty(t, notifier.statusChanges)
}

func TestUpdateApplicationStatus_DetailsReachNotifier(t *testing.T) {
	jobs := newFakeJobRepo()
	jobs.jobs["job-1"] = &job.Job{ID: "job-1", Title: "Backend Engineer", IsActive: true}
	apps := newFakeApplicationRepo()
	apps.applications[1] = &job.Application{ID: 1, JobID: "job-1", Status: job.StatusShortlisted}
	notifier := &fakeNotifier{}
	svc := newTestJobService(jobs, apps, notifier)

	details := StatusDetails{Interview: &InterviewDetails{Date: "2025-04-01", Time: "2:00 PM"}}
	_, err := svc.UpdateApplicationStatus(context.Background(), 1, job.StatusInterview, details)

	require.NoError(t, err)
	require.Len(t, notifier.statusChanges, 1)
	require.NotNil(t, notifier.statusChanges[0].Details.Interview)
	assert.Equal(t, "2025-04-01", notifier.statusChanges[0].Details.Interview.Date)
}

func TestDeactivateExpiredJobs_UsesInjectedClock(t *testing.T) {
	jobs := newFakeJobRepo()
	jobs.deactivated = 2
	svc := newTestJobService(jobs, newFakeApplicationRepo(), &fakeNotifier{})

	fixed := time.Date(2025, time.March, 12, 0, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	n, err := svc.DeactivateExpiredJobs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, fixed, jobs.lastNow)
}
