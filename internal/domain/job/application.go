package job

import (
	"database/sql"
	"time"
)

// ApplicationStatus is the review state of an application.
// Transitions are not ordered; staff may move an application to any status.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewed    ApplicationStatus = "reviewed"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusInterview   ApplicationStatus = "interview"
	StatusOffer       ApplicationStatus = "offer"
)

// KnownStatuses lists every status the API accepts on a status update.
var KnownStatuses = []ApplicationStatus{
	StatusPending,
	StatusReviewed,
	StatusShortlisted,
	StatusRejected,
	StatusInterview,
	StatusOffer,
}

// IsKnown reports whether s is one of the recognized statuses.
func (s ApplicationStatus) IsKnown() bool {
	for _, known := range KnownStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Application is a candidate's submission for a Job.
type Application struct {
	ID          int64
	JobID       string
	FullName    string
	Email       string
	ResumeURL   string
	CoverLetter sql.NullString
	LinkedIn    sql.NullString
	Status      ApplicationStatus
	AppliedAt   time.Time
}
