package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/app?sslmode=disable")
	t.Setenv("ADMIN_EMAILS", "admin@example.com")
	t.Setenv("SENDER_EMAIL", "noreply@example.com")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "noreply@example.com", cfg.SupportEmail, "support falls back to sender")
	assert.Equal(t, "./email-output", cfg.EmailOutputDir)
	assert.Equal(t, "http://localhost:8080", cfg.SiteBaseURL)
	assert.Equal(t, "Gumisofts", cfg.CompanyName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0 8 * * 1", cfg.CronSpecWeeklyDigest)
	assert.Equal(t, "30 0 * * *", cfg.CronSpecDeadlineSweep)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ADMIN_EMAILS", "admin@example.com")
	t.Setenv("SENDER_EMAIL", "noreply@example.com")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_MissingAdminEmails(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("ADMIN_EMAILS", "")
	t.Setenv("SENDER_EMAIL", "noreply@example.com")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_AdminEmailsParsing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_EMAILS", " admin@example.com , hr@example.com ,, ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"admin@example.com", "hr@example.com"}, cfg.AdminEmails)
}

func TestLoad_TrimsBaseURLTrailingSlash(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SITE_BASE_URL", "https://example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cfg.SiteBaseURL)
}
