package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"company_site_backend/internal/app"
	"company_site_backend/internal/infra/api"
	"company_site_backend/internal/infra/config"
	idb "company_site_backend/internal/infra/database"
	"company_site_backend/internal/infra/logger"
	appmail "company_site_backend/internal/infra/mail"
	"company_site_backend/internal/infra/scheduler"
	"company_site_backend/internal/infra/templates"

	"company_site_backend/internal/domain/mail"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalf("Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. Environment: %s, HTTP: %s", cfg.Environment, cfg.HTTPAddr)

	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established.")

	jobRepo := idb.NewPostgresJobRepository(db)
	applicationRepo := idb.NewPostgresApplicationRepository(db)
	subscriberRepo := idb.NewPostgresNewsletterRepository(db)
	blogRepo := idb.NewPostgresBlogRepository(db)
	contentRepo := idb.NewPostgresContentRepository(db)

	renderer, err := templates.NewHTMLRenderer()
	if err != nil {
		log.Fatalf("Could not load email templates: %v", err)
	}

	var sender mail.Sender
	if cfg.PostmarkServerToken != "" {
		sender, err = appmail.NewPostmarkSender(cfg.PostmarkServerToken, cfg.PostmarkAccountToken, cfg.SenderEmail, cfg.SupportEmail)
		if err != nil {
			log.Fatalf("Could not configure Postmark sender: %v", err)
		}
		log.Info("Postmark mail sender configured.")
	} else {
		sender = appmail.NewFileSender(cfg.EmailOutputDir)
		log.Infof("No Postmark token set; writing emails to %s", cfg.EmailOutputDir)
	}

	notifier := app.NewEmailNotifier(
		applicationRepo,
		subscriberRepo,
		blogRepo,
		sender,
		renderer,
		log,
		cfg.AdminEmails,
		cfg.SiteBaseURL,
		cfg.CompanyName,
	)

	jobService := app.NewJobService(jobRepo, applicationRepo, notifier, log)
	newsletterService := app.NewNewsletterService(subscriberRepo, blogRepo, notifier, log)
	blogService := app.NewBlogService(blogRepo, log)
	contentService := app.NewContentService(contentRepo, log)

	sched := scheduler.NewScheduler(notifier, jobService, log, cfg.CronSpecWeeklyDigest, cfg.CronSpecDeadlineSweep)
	sched.Start()

	router := api.NewRouter(
		api.NewJobHandler(jobService, log),
		api.NewBlogHandler(blogService, log),
		api.NewNewsletterHandler(newsletterService, log),
		api.NewContentHandler(contentService, log),
		log,
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("HTTP server listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown: %v", err)
	}
	log.Info("Application shut down gracefully.")
}
