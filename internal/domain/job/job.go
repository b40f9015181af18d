package job

import (
	"database/sql"
	"time"
)

// EmploymentType classifies how a position is staffed.
type EmploymentType string

const (
	TypeFullTime   EmploymentType = "full-time"
	TypePartTime   EmploymentType = "part-time"
	TypeContract   EmploymentType = "contract"
	TypeInternship EmploymentType = "internship"
)

// DisplayName returns the human-readable label used in emails and API payloads.
func (t EmploymentType) DisplayName() string {
	switch t {
	case TypeFullTime:
		return "Full Time"
	case TypePartTime:
		return "Part Time"
	case TypeContract:
		return "Contract"
	case TypeInternship:
		return "Internship"
	default:
		return string(t)
	}
}

// Salary is the advertised range for a Job. Optional on a posting.
type Salary struct {
	Min      int64
	Max      int64
	Currency string
}

// Job represents a posted employment opening.
// Distinct from the notifier's internal unit of work.
type Job struct {
	ID               string // externally visible string ID, e.g. a UUID
	Title            string
	Category         string
	Description      string
	Type             EmploymentType
	Location         string
	Experience       string
	Requirements     []string
	Responsibilities []string
	Benefits         []string
	Salary           *Salary
	IsActive         bool
	Deadline         sql.NullTime
	PostedAt         time.Time
}
