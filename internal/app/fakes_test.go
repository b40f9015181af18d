package app

import (
	"context"
	"errors"
	"time"

	"company_site_backend/internal/domain/blog"
	"company_site_backend/internal/domain/job"
	"company_site_backend/internal/domain/mail"
	"company_site_backend/internal/domain/newsletter"
	idb "company_site_backend/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// Shared test doubles for the app package.

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

type fakeSender struct {
	sent     []mail.Message
	failNext int // fail the first N sends
	err      error
}

func (s *fakeSender) Send(ctx context.Context, msg mail.Message) error {
	if s.failNext > 0 {
		s.failNext--
		if s.err == nil {
			return errors.New("send failed")
		}
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type fakeRenderer struct {
	rendered []string
	failFor  map[string]bool
}

func (r *fakeRenderer) Render(name string, data any) (string, error) {
	if r.failFor[name] {
		return "", errors.New("render failed")
	}
	r.rendered = append(r.rendered, name)
	return "<html>" + name + "</html>", nil
}

type fakeApplicationRepo struct {
	applications map[int64]*job.Application
	nextID       int64
	sinceArgs    []time.Time

	total      int
	countSince map[time.Time]int
	forJob     int
	pending    int

	createErr error
	updateErr error
	countErr  error
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications: make(map[int64]*job.Application),
		countSince:   make(map[time.Time]int),
		nextID:       1,
	}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, a *job.Application) error {
	if r.createErr != nil {
		return r.createErr
	}
	a.ID = r.nextID
	r.nextID++
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now()
	}
	stored := *a
	r.applications[a.ID] = &stored
	return nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id int64) (*job.Application, error) {
	a, ok := r.applications[id]
	if !ok {
		return nil, idb.ErrApplicationNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id int64, status job.ApplicationStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	a, ok := r.applications[id]
	if !ok {
		return idb.ErrApplicationNotFound
	}
	a.Status = status
	return nil
}

func (r *fakeApplicationRepo) List(ctx context.Context, filter job.ApplicationFilter) ([]*job.Application, error) {
	out := make([]*job.Application, 0)
	for _, a := range r.applications {
		if filter.JobID != "" && a.JobID != filter.JobID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		copied := *a
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeApplicationRepo) CountAll(ctx context.Context) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.total, nil
}

func (r *fakeApplicationRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	r.sinceArgs = append(r.sinceArgs, since)
	return r.countSince[since], nil
}

func (r *fakeApplicationRepo) CountForJob(ctx context.Context, jobID string) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.forJob, nil
}

func (r *fakeApplicationRepo) CountByStatus(ctx context.Context, status job.ApplicationStatus) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.pending, nil
}

type fakeSubscriberRepo struct {
	byEmail   map[string]*newsletter.Subscriber
	byToken   map[string]*newsletter.Subscriber
	active    []*newsletter.Subscriber
	created   []*newsletter.Subscriber
	setActive map[int64]bool
	nextID    int64

	createErr error
	listErr   error
}

func newFakeSubscriberRepo() *fakeSubscriberRepo {
	return &fakeSubscriberRepo{
		byEmail:   make(map[string]*newsletter.Subscriber),
		byToken:   make(map[string]*newsletter.Subscriber),
		setActive: make(map[int64]bool),
		nextID:    1,
	}
}

func (r *fakeSubscriberRepo) Create(ctx context.Context, s *newsletter.Subscriber) error {
	if r.createErr != nil {
		return r.createErr
	}
	s.ID = r.nextID
	r.nextID++
	s.CreatedAt = time.Now()
	r.created = append(r.created, s)
	r.byEmail[s.Email] = s
	r.byToken[s.UnsubscribeToken] = s
	return nil
}

func (r *fakeSubscriberRepo) GetByEmail(ctx context.Context, email string) (*newsletter.Subscriber, error) {
	s, ok := r.byEmail[email]
	if !ok {
		return nil, idb.ErrSubscriberNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSubscriberRepo) GetByToken(ctx context.Context, token string) (*newsletter.Subscriber, error) {
	s, ok := r.byToken[token]
	if !ok {
		return nil, idb.ErrSubscriberNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSubscriberRepo) SetActive(ctx context.Context, id int64, active bool) error {
	r.setActive[id] = active
	return nil
}

func (r *fakeSubscriberRepo) ListActive(ctx context.Context) ([]*newsletter.Subscriber, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.active, nil
}

func (r *fakeSubscriberRepo) CountAll(ctx context.Context) (int, error) { return len(r.byEmail), nil }

func (r *fakeSubscriberRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	return 0, nil
}

// fakeBlogRepo panics on any method a test does not stub via the embedded
// interface, which keeps the double small.
type fakeBlogRepo struct {
	blog.Repository

	posts       map[int64]*blog.Post
	listed      []*blog.Post
	listErr     error
	published   int
	totalViews  int64
	lastFilter  blog.PostFilter
}

func (r *fakeBlogRepo) GetPostByID(ctx context.Context, id int64) (*blog.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, idb.ErrPostNotFound
	}
	return p, nil
}

func (r *fakeBlogRepo) ListPosts(ctx context.Context, filter blog.PostFilter) ([]*blog.Post, error) {
	r.lastFilter = filter
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.listed, nil
}

func (r *fakeBlogRepo) CountPublished(ctx context.Context) (int, error) { return r.published, nil }

func (r *fakeBlogRepo) SumPublishedViews(ctx context.Context) (int64, error) {
	return r.totalViews, nil
}

type fakeJobRepo struct {
	jobs        map[string]*job.Job
	deactivated int64
	lastNow     time.Time
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, j *job.Job) error {
	j.PostedAt = time.Now()
	r.jobs[j.ID] = j
	return nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id string) (*job.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, idb.ErrJobNotFound
	}
	copied := *j
	return &copied, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, j *job.Job) error {
	if _, ok := r.jobs[j.ID]; !ok {
		return idb.ErrJobNotFound
	}
	r.jobs[j.ID] = j
	return nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.jobs[id]; !ok {
		return idb.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) List(ctx context.Context, includeInactive bool) ([]*job.Job, error) {
	out := make([]*job.Job, 0)
	for _, j := range r.jobs {
		if !includeInactive && !j.IsActive {
			continue
		}
		copied := *j
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeJobRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	r.lastNow = now
	return r.deactivated, nil
}

// fakeNotifier records what the services hand to the pipeline.
type fakeNotifier struct {
	submitted     []*job.Application
	statusChanges []struct {
		Application *job.Application
		Previous    job.ApplicationStatus
		Details     StatusDetails
	}
	subscribers []*newsletter.Subscriber
	results     []Result
}

func (n *fakeNotifier) ApplicationSubmitted(ctx context.Context, j *job.Job, a *job.Application) []Result {
	n.submitted = append(n.submitted, a)
	return n.results
}

func (n *fakeNotifier) ApplicationStatusChanged(ctx context.Context, j *job.Job, a *job.Application, previous job.ApplicationStatus, details StatusDetails) []Result {
	n.statusChanges = append(n.statusChanges, struct {
		Application *job.Application
		Previous    job.ApplicationStatus
		Details     StatusDetails
	}{a, previous, details})
	return n.results
}

func (n *fakeNotifier) SubscriberCreated(ctx context.Context, s *newsletter.Subscriber) []Result {
	n.subscribers = append(n.subscribers, s)
	return n.results
}
