package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	DatabaseURL string
	HTTPAddr    string

	// AdminEmails is the explicit admin recipient list for notices and
	// digests, injected here rather than read from ambient state.
	AdminEmails []string

	SenderEmail          string
	SupportEmail         string
	PostmarkServerToken  string
	PostmarkAccountToken string
	// EmailOutputDir is where the development sender writes messages when
	// no Postmark token is configured.
	EmailOutputDir string

	SiteBaseURL string
	CompanyName string
	LogLevel    string
	Environment string

	CronSpecWeeklyDigest  string
	CronSpecDeadlineSweep string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables, and a missing
	// .env file is not an error.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	adminEmails := os.Getenv("ADMIN_EMAILS")
	if adminEmails == "" {
		return nil, fmt.Errorf("ADMIN_EMAILS is not set")
	}
	for _, addr := range strings.Split(adminEmails, ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			cfg.AdminEmails = append(cfg.AdminEmails, addr)
		}
	}
	if len(cfg.AdminEmails) == 0 {
		return nil, fmt.Errorf("ADMIN_EMAILS contains no addresses")
	}

	cfg.SenderEmail = os.Getenv("SENDER_EMAIL")
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("SENDER_EMAIL is not set")
	}

	cfg.SupportEmail = os.Getenv("SUPPORT_EMAIL")
	if cfg.SupportEmail == "" {
		cfg.SupportEmail = cfg.SenderEmail
	}

	// Optional: when empty the development file sender is used instead.
	cfg.PostmarkServerToken = os.Getenv("POSTMARK_SERVER_TOKEN")
	cfg.PostmarkAccountToken = os.Getenv("POSTMARK_ACCOUNT_TOKEN")

	cfg.EmailOutputDir = os.Getenv("EMAIL_OUTPUT_DIR")
	if cfg.EmailOutputDir == "" {
		cfg.EmailOutputDir = "./email-output"
	}

	cfg.SiteBaseURL = strings.TrimRight(os.Getenv("SITE_BASE_URL"), "/")
	if cfg.SiteBaseURL == "" {
		cfg.SiteBaseURL = "http://localhost:8080"
	}

	cfg.CompanyName = os.Getenv("COMPANY_NAME")
	if cfg.CompanyName == "" {
		cfg.CompanyName = "Gumisofts"
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.CronSpecWeeklyDigest = os.Getenv("CRON_SPEC_WEEKLY_DIGEST")
	if cfg.CronSpecWeeklyDigest == "" {
		cfg.CronSpecWeeklyDigest = "0 8 * * 1" // Monday 08:00
	}

	cfg.CronSpecDeadlineSweep = os.Getenv("CRON_SPEC_DEADLINE_SWEEP")
	if cfg.CronSpecDeadlineSweep == "" {
		cfg.CronSpecDeadlineSweep = "30 0 * * *" // daily, shortly after midnight
	}

	return cfg, nil
}
