package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/outreach-crm/outreach-api/docs"
	"github.com/outreach-crm/outreach-api/internal/auth"
	"github.com/outreach-crm/outreach-api/internal/config"
	"github.com/outreach-crm/outreach-api/internal/database"
	"github.com/outreach-crm/outreach-api/internal/http/handler"
	"github.com/outreach-crm/outreach-api/internal/http/middleware"
	"github.com/outreach-crm/outreach-api/internal/http/router"
	"github.com/outreach-crm/outreach-api/internal/jobs"
	"github.com/outreach-crm/outreach-api/internal/logger"
	"github.com/outreach-crm/outreach-api/internal/metrics"
	"github.com/outreach-crm/outreach-api/internal/notify"
	"github.com/outreach-crm/outreach-api/internal/prompt"
	"github.com/outreach-crm/outreach-api/internal/repository"
	"github.com/outreach-crm/outreach-api/internal/service"
	"github.com/outreach-crm/outreach-api/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// @title Outreach CRM API
// @version 1.0
// @description Password-gated CRM for health-system sales outreach with a business-day cadence to-do list

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name outreach_session
// @description Session cookie set by POST /auth/login

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API key for system integrations

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	if host := os.Getenv("SWAGGER_HOST"); host != "" {
		docs.SwaggerInfo.Host = host
	} else {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	if cfg.Auth.Password == "" {
		return fmt.Errorf("APP_PASSWORD must be set")
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Postgres schemas come from goose migrations (cmd/migrate)
	if cfg.Database.Driver == database.DriverSQLite {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate sqlite database: %w", err)
		}
	}

	location := cfg.Cadence.Location()
	clock := service.Clock(time.Now)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Initialize repositories
	healthSystemRepo := repository.NewHealthSystemRepository(db)
	opportunityRepo := repository.NewOpportunityRepository(db)
	contactRepo := repository.NewContactRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	outreachRepo := repository.NewOutreachRepository(db)

	promptGenerator, err := prompt.NewGenerator()
	if err != nil {
		return fmt.Errorf("failed to load email prompt templates: %w", err)
	}

	// Initialize services
	healthSystemService := service.NewHealthSystemService(healthSystemRepo, log)
	opportunityService := service.NewOpportunityService(opportunityRepo, healthSystemRepo, log)
	contactService := service.NewContactService(contactRepo, healthSystemRepo, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, contactRepo, opportunityRepo, log)
	outreachService := service.NewOutreachService(outreachRepo, contactRepo, opportunityRepo, m, clock, location, log)
	todoService := service.NewTodoService(assignmentRepo, outreachRepo, m, clock, location, log)
	dashboardService := service.NewDashboardService(healthSystemRepo, opportunityRepo, contactRepo, outreachRepo, todoService, log)
	promptService := service.NewPromptService(contactRepo, opportunityRepo, assignmentRepo, outreachRepo, promptGenerator, log)

	// Initialize middleware
	sessions := auth.NewSessionManager(&cfg.Auth, time.Now)
	authMiddleware := auth.NewMiddleware(sessions, cfg.ApiKey.Value, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, cfg.Auth.LoginAttemptsPerMinute, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(sessions, m, log)
	healthSystemHandler := handler.NewHealthSystemHandler(healthSystemService, opportunityService, contactService, log)
	opportunityHandler := handler.NewOpportunityHandler(opportunityService, contactService, log)
	contactHandler := handler.NewContactHandler(contactService, outreachService, promptService, log)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, log)
	outreachHandler := handler.NewOutreachHandler(outreachService, log)
	todoHandler := handler.NewTodoHandler(todoService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		m,
		registry,
		authMiddleware,
		rateLimiter,
		authHandler,
		healthSystemHandler,
		opportunityHandler,
		contactHandler,
		assignmentHandler,
		outreachHandler,
		todoHandler,
		dashboardHandler,
	)

	// Daily digest
	var scheduler *jobs.Scheduler
	if cfg.Digest.Enabled {
		var archive storage.Storage
		if cfg.Digest.Archive {
			archive, err = storage.NewStorage(&cfg.Storage, log)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))
		}

		digestJob := jobs.NewDigestJob(todoService, notify.NewNotifier(&cfg.Digest, log), archive, &cfg.Digest, m, log)

		scheduler = jobs.NewScheduler(location, log)
		if err := jobs.RegisterDigestJob(scheduler, digestJob, cfg.Digest.Cron); err != nil {
			return fmt.Errorf("failed to register digest job: %w", err)
		}
		scheduler.Start()
		log.Info("Scheduler started with digest job",
			zap.String("cron_expr", cfg.Digest.Cron),
			zap.String("timezone", location.String()),
			zap.Int("recipients", len(cfg.Digest.Recipients)),
		)
	} else {
		log.Info("Daily digest disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduling before draining requests; a digest in flight finishes first
		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn("Error closing database connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
