package auth

import (
	"context"
	"time"
)

// Authentication methods recorded on a session
const (
	MethodSession = "session"
	MethodAPIKey  = "api_key"
)

// Session describes how the current request was authenticated
type Session struct {
	Method    string
	ExpiresAt time.Time
}

type contextKey string

const sessionContextKey contextKey = "session"

// WithSession adds the session to the context
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// FromContext extracts the session from the context
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(*Session)
	return s, ok
}
