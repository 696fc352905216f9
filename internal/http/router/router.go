package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/outreach-crm/outreach-api/internal/auth"
	"github.com/outreach-crm/outreach-api/internal/config"
	"github.com/outreach-crm/outreach-api/internal/database"
	"github.com/outreach-crm/outreach-api/internal/http/handler"
	"github.com/outreach-crm/outreach-api/internal/http/middleware"
	"github.com/outreach-crm/outreach-api/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/outreach-crm/outreach-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                 *config.Config
	logger              *zap.Logger
	db                  *gorm.DB
	metrics             *metrics.Metrics
	gatherer            prometheus.Gatherer
	authMiddleware      *auth.Middleware
	rateLimiter         *middleware.RateLimiter
	authHandler         *handler.AuthHandler
	healthSystemHandler *handler.HealthSystemHandler
	opportunityHandler  *handler.OpportunityHandler
	contactHandler      *handler.ContactHandler
	assignmentHandler   *handler.AssignmentHandler
	outreachHandler     *handler.OutreachHandler
	todoHandler         *handler.TodoHandler
	dashboardHandler    *handler.DashboardHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	healthSystemHandler *handler.HealthSystemHandler,
	opportunityHandler *handler.OpportunityHandler,
	contactHandler *handler.ContactHandler,
	assignmentHandler *handler.AssignmentHandler,
	outreachHandler *handler.OutreachHandler,
	todoHandler *handler.TodoHandler,
	dashboardHandler *handler.DashboardHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		metrics:             m,
		gatherer:            gatherer,
		authMiddleware:      authMiddleware,
		rateLimiter:         rateLimiter,
		authHandler:         authHandler,
		healthSystemHandler: healthSystemHandler,
		opportunityHandler:  opportunityHandler,
		contactHandler:      contactHandler,
		assignmentHandler:   assignmentHandler,
		outreachHandler:     outreachHandler,
		todoHandler:         todoHandler,
		dashboardHandler:    dashboardHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Metrics(rt.metrics))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)
	if timeout := rt.cfg.Server.RequestTimeoutDuration(); timeout > 0 {
		r.Use(chimiddleware.Timeout(timeout))
	}

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		if allHealthy {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
			return
		}
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "unhealthy",
			"checks": checks,
		})
	})

	if rt.cfg.Server.EnableMetrics && rt.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{}))
	}

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.With(rt.rateLimiter.LimitLogin).Post("/auth/login", rt.authHandler.Login)
		r.Post("/auth/logout", rt.authHandler.Logout)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			r.Get("/auth/session", rt.authHandler.Session)

			// Health systems
			r.Route("/health-systems", func(r chi.Router) {
				r.Get("/", rt.healthSystemHandler.List)
				r.Post("/", rt.healthSystemHandler.Create)
				r.Get("/{id}", rt.healthSystemHandler.GetByID)
				r.Put("/{id}", rt.healthSystemHandler.Update)
				r.Delete("/{id}", rt.healthSystemHandler.Delete)
				r.Get("/{id}/opportunities", rt.healthSystemHandler.ListOpportunities)
				r.Get("/{id}/contacts", rt.healthSystemHandler.ListContacts)
			})

			// Opportunities
			r.Route("/opportunities", func(r chi.Router) {
				r.Get("/", rt.opportunityHandler.List)
				r.Post("/", rt.opportunityHandler.Create)
				r.Get("/{id}", rt.opportunityHandler.GetByID)
				r.Put("/{id}", rt.opportunityHandler.Update)
				r.Delete("/{id}", rt.opportunityHandler.Delete)
				r.Get("/{id}/contacts", rt.opportunityHandler.ListContacts)
			})

			// Contacts
			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", rt.contactHandler.List)
				r.Post("/", rt.contactHandler.Create)
				r.Get("/{id}", rt.contactHandler.GetByID)
				r.Put("/{id}", rt.contactHandler.Update)
				r.Delete("/{id}", rt.contactHandler.Delete)
				r.Get("/{id}/outreach", rt.contactHandler.ListOutreach)
				r.Post("/{id}/outreach", rt.contactHandler.LogOutreach)
				r.Get("/{id}/email-prompt", rt.contactHandler.GetEmailPrompt)
			})

			// Assignments
			r.Route("/assignments", func(r chi.Router) {
				r.Post("/", rt.assignmentHandler.Create)
				r.Put("/{id}", rt.assignmentHandler.UpdateCadence)
				r.Delete("/{id}", rt.assignmentHandler.Delete)
			})

			r.Delete("/outreach/{id}", rt.outreachHandler.Delete)

			// To-do & dashboard
			r.Get("/todo", rt.todoHandler.Get)
			r.Get("/dashboard", rt.dashboardHandler.Get)
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
