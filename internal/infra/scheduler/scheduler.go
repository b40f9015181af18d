package scheduler

import (
	"context"
	"time"

	"company_site_backend/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DigestSender is the slice of the notification pipeline the scheduler
// drives: the weekly admin digest.
type DigestSender interface {
	SendAdminDigest(ctx context.Context) []app.Result
}

// JobSweeper deactivates job postings whose deadline has passed.
type JobSweeper interface {
	DeactivateExpiredJobs(ctx context.Context) (int64, error)
}

// Scheduler runs the recurring background work: the Monday-morning admin
// digest and the daily job-deadline sweep.
type Scheduler struct {
	cronEngine          *cron.Cron
	digests             DigestSender
	jobs                JobSweeper
	logger              *logrus.Logger
	cronSpecDigest      string
	cronSpecJobDeadline string
}

func NewScheduler(
	digests DigestSender,
	jobs JobSweeper,
	logger *logrus.Logger,
	cronSpecDigest string, // e.g. "0 8 * * 1" (08:00 every Monday)
	cronSpecJobDeadline string, // e.g. "30 0 * * *" (00:30 daily)
) *Scheduler {
	return &Scheduler{
		cronEngine:          cron.New(cron.WithLocation(time.Local)),
		digests:             digests,
		jobs:                jobs,
		logger:              logger,
		cronSpecDigest:      cronSpecDigest,
		cronSpecJobDeadline: cronSpecJobDeadline,
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("Starting scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecDigest, func() {
		s.logger.Info("Cron job triggered for weekly admin digest.")
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		results := s.digests.SendAdminDigest(ctx)
		for _, r := range results {
			if !r.OK() {
				s.logger.Errorf("Weekly admin digest failed: %v", r.Err)
			}
		}
	})
	if err != nil {
		s.logger.Fatalf("Could not add weekly digest cron job: %v", err)
	}

	_, err = s.cronEngine.AddFunc(s.cronSpecJobDeadline, func() {
		s.logger.Info("Cron job triggered for job deadline sweep.")
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()

		if _, err := s.jobs.DeactivateExpiredJobs(ctx); err != nil {
			s.logger.Errorf("Job deadline sweep failed: %v", err)
		}
	})
	if err != nil {
		s.logger.Fatalf("Could not add job deadline cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Info("Scheduler started with jobs.")
}

func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler...")
	ctx := s.cronEngine.Stop() // Waits for running jobs to finish.
	<-ctx.Done()
	s.logger.Info("Scheduler gracefully stopped.")
}
