package handler

import (
	"net/http"

	"github.com/outreach-crm/outreach-api/internal/auth"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/metrics"
	"go.uber.org/zap"
)

type AuthHandler struct {
	sessions *auth.SessionManager
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewAuthHandler(sessions *auth.SessionManager, m *metrics.Metrics, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		metrics:  m,
		logger:   logger,
	}
}

// Login godoc
// @Summary Log in
// @Description Exchange the shared application password for a session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Password"
// @Success 200 {object} domain.SessionDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 429 {object} domain.APIError
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if !h.sessions.CheckPassword(req.Password) {
		h.metrics.RecordLogin(false)
		h.logger.Warn("failed login attempt", zap.String("remote_addr", r.RemoteAddr))
		respondWithError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, expires, err := h.sessions.Issue()
	if err != nil {
		h.logger.Error("failed to issue session", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	h.sessions.SetCookie(w, token, expires)
	h.metrics.RecordLogin(true)
	h.logger.Info("login succeeded", zap.String("remote_addr", r.RemoteAddr))

	respondJSON(w, http.StatusOK, domain.SessionDTO{
		Authenticated: true,
		Method:        auth.MethodSession,
		ExpiresAt:     expires.UTC().Format(domain.TimestampFormat),
	})
}

// Logout godoc
// @Summary Log out
// @Description Clear the session cookie
// @Tags Auth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Session godoc
// @Summary Current session
// @Description Report how the caller is authenticated
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.SessionDTO
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /auth/session [get]
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Login required")
		return
	}

	dto := domain.SessionDTO{Authenticated: true, Method: session.Method}
	if !session.ExpiresAt.IsZero() {
		dto.ExpiresAt = session.ExpiresAt.UTC().Format(domain.TimestampFormat)
	}
	respondJSON(w, http.StatusOK, dto)
}
