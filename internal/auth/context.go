package auth

import (
	"context"
	"errors"
)

type contextKey struct{}

var sessionKey contextKey

// ErrNoSessionInContext is returned when no session is found in context.
var ErrNoSessionInContext = errors.New("no session in context")

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext extracts the authenticated session from the request
// context.
func SessionFromContext(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(sessionKey).(*Session)
	if !ok || s == nil {
		return nil, ErrNoSessionInContext
	}
	return s, nil
}
