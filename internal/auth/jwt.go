package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/outreach-crm/outreach-api/internal/config"
)

const (
	sessionIssuer  = "outreach-crm"
	sessionSubject = "outreach-user"
)

var (
	ErrInvalidToken    = errors.New("invalid session token")
	ErrExpiredToken    = errors.New("session has expired")
	ErrInvalidPassword = errors.New("invalid password")
)

// SessionManager checks the shared password and issues HS256-signed session cookies
type SessionManager struct {
	password     []byte
	signingKey   []byte
	cookieName   string
	ttl          time.Duration
	secureCookie bool
	now          func() time.Time
}

// NewSessionManager creates a session manager. now may be nil to use the wall clock.
func NewSessionManager(cfg *config.AuthConfig, now func() time.Time) *SessionManager {
	if now == nil {
		now = time.Now
	}
	ttl := cfg.SessionTTL()
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "outreach_session"
	}
	return &SessionManager{
		password:     []byte(cfg.Password),
		signingKey:   cfg.SigningKey(),
		cookieName:   cookieName,
		ttl:          ttl,
		secureCookie: cfg.SecureCookie,
		now:          now,
	}
}

// CookieName returns the name of the session cookie
func (m *SessionManager) CookieName() string {
	return m.cookieName
}

// CheckPassword compares the candidate against the shared password in constant time.
// An unconfigured password never matches.
func (m *SessionManager) CheckPassword(candidate string) bool {
	if len(m.password) == 0 {
		return false
	}
	want := sha256.Sum256(m.password)
	got := sha256.Sum256([]byte(candidate))
	return subtle.ConstantTimeCompare(want[:], got[:]) == 1
}

// Issue creates a signed session token and its expiry
func (m *SessionManager) Issue() (string, time.Time, error) {
	now := m.now()
	expires := now.Add(m.ttl)

	claims := jwt.RegisteredClaims{
		Issuer:    sessionIssuer,
		Subject:   sessionSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session: %w", err)
	}
	return token, expires, nil
}

// Validate verifies a session token and returns the session it describes
func (m *SessionManager) Validate(tokenString string) (*Session, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.signingKey, nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithSubject(sessionSubject),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return &Session{Method: MethodSession, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// SetCookie writes the session cookie
func (m *SessionManager) SetCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(expires.Sub(m.now()).Seconds()),
		HttpOnly: true,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie
func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
