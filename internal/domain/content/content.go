package content

import (
	"database/sql"
	"time"
)

// Message is a contact-form submission.
type Message struct {
	ID        int64
	FullName  string
	Email     string
	Content   string
	IsRead    bool
	CreatedAt time.Time
}

// Testimonial is a client quote shown on the site.
type Testimonial struct {
	ID        int64
	Name      string
	Rate      int
	Comment   string
	AvatarURL sql.NullString
	Position  sql.NullString
}

// Project is a portfolio entry.
type Project struct {
	ID          int64
	Title       string
	PictureURL  string
	Description string
	Status      string
	IsCompleted bool
}

// Organization holds the company profile; exactly one row is marked default.
type Organization struct {
	ID                        string
	CompanyName               string
	Email                     string
	Phone                     string
	Address                   string
	YearsOfExperience         int64
	ProjectsCompleted         int64
	HappyClients              int64
	ClientSatisfactionRate    int64
	YearsInBusiness           int64
	ScheduleURL               sql.NullString
	LinkedInURL               sql.NullString
	GitHubURL                 sql.NullString
	TelegramURL               sql.NullString
	FacebookURL               sql.NullString
	InstagramURL              sql.NullString
	WhatsAppURL               sql.NullString
	YouTubeURL                sql.NullString
	NumberOfEmployees         int64
	NumberOfServices          int64
	IsDefault                 bool
}

// CompanyStats is a standalone stats row surfaced on the site.
type CompanyStats struct {
	ID                     int64
	CompanyName            string
	NumberOfEmployees      int64
	ProjectsCompleted      int64
	ClientSatisfactionRate int64
	HappyClients           int64
	YearsInBusiness        int64
	CompanyLocation        string
}
