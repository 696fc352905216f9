package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/outreach-crm/outreach-api/internal/config"
	"go.uber.org/zap"
)

// CORS returns a CORS middleware configured from the application config.
// Sessions travel in a cookie, so origins are always echoed explicitly rather than "*".
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
		AllowOriginFunc:  originPolicy(cfg.AllowedOrigins, environment, logger),
	}
	return cors.Handler(options)
}

func originPolicy(origins []string, environment string, logger *zap.Logger) func(*http.Request, string) bool {
	isDev := environment == "development" || environment == "local" || environment == ""

	allowed := make(map[string]bool, len(origins))
	wildcard := false
	for _, origin := range origins {
		if origin == "*" {
			wildcard = true
			continue
		}
		allowed[origin] = true
	}

	switch {
	case wildcard:
		if !isDev {
			logger.Warn("CORS configured with wildcard origin in non-development environment",
				zap.String("environment", environment))
		}
		return func(_ *http.Request, origin string) bool { return origin != "" }
	case len(allowed) > 0:
		logger.Info("CORS configured with explicit origins", zap.Strings("origins", origins))
		return func(_ *http.Request, origin string) bool { return allowed[origin] }
	case isDev:
		logger.Info("CORS configured to allow all origins in development mode")
		return func(_ *http.Request, origin string) bool { return origin != "" }
	default:
		logger.Warn("CORS configured with no allowed origins - all cross-origin requests will be denied",
			zap.String("environment", environment))
		return func(_ *http.Request, _ string) bool { return false }
	}
}
