package app

import (
	"testing"

	"company_site_backend/internal/domain/job"

	"github.com/stretchr/testify/assert"
)

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{65000, "65,000"},
		{1234567, "1,234,567"},
		{-90000, "-90,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, groupDigits(tt.in))
	}
}

func TestFormatSalary(t *testing.T) {
	assert.Empty(t, formatSalary(nil))
	assert.Equal(t, "60,000 - 90,000 USD", formatSalary(&job.Salary{Min: 60000, Max: 90000, Currency: "USD"}))
}

func TestStatusSubject(t *testing.T) {
	tests := []struct {
		status job.ApplicationStatus
		want   string
	}{
		{job.StatusShortlisted, "Great News! You've been shortlisted - Backend Engineer"},
		{job.StatusRejected, "Application Update - Backend Engineer"},
		{job.StatusInterview, "Interview Scheduled - Backend Engineer"},
		{job.StatusReviewed, "Application Under Review - Backend Engineer"},
		{job.StatusOffer, "Job Offer - Backend Engineer at Example Co"},
		{job.StatusPending, "Application Status Update - Backend Engineer"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusSubject(tt.status, "Backend Engineer", "Example Co"))
	}
}

func TestValueOrTBD(t *testing.T) {
	assert.Equal(t, "TBD", valueOrTBD(""))
	assert.Equal(t, "Monday", valueOrTBD("Monday"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Pending", capitalize("pending"))
	assert.Equal(t, "", capitalize(""))
}
