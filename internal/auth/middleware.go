package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/outreach-crm/outreach-api/internal/domain"
	"go.uber.org/zap"
)

// Middleware handles authentication for HTTP requests
type Middleware struct {
	sessions *SessionManager
	apiKey   string
	logger   *zap.Logger
}

// NewMiddleware creates a new authentication middleware. An empty apiKey disables
// header authentication.
func NewMiddleware(sessions *SessionManager, apiKey string, logger *zap.Logger) *Middleware {
	return &Middleware{
		sessions: sessions,
		apiKey:   apiKey,
		logger:   logger,
	}
}

// Authenticate accepts either a valid x-api-key header or a valid session cookie
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := r.Header.Get("x-api-key"); key != "" {
			if m.validateAPIKey(key) {
				ctx := WithSession(r.Context(), &Session{Method: MethodAPIKey})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			m.logger.Warn("invalid API key attempt",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
			)
			unauthorized(w, "Invalid API key")
			return
		}

		cookie, err := r.Cookie(m.sessions.CookieName())
		if err != nil || cookie.Value == "" {
			unauthorized(w, "Login required")
			return
		}

		session, err := m.sessions.Validate(cookie.Value)
		if err != nil {
			m.logger.Debug("session validation failed",
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			unauthorized(w, "Session is invalid or has expired")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

func (m *Middleware) validateAPIKey(key string) bool {
	if m.apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) == 1
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   domain.ErrorTypeUnauthorized,
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
		Detail: detail,
	})
}
