package auth

import "errors"

// UserInfo represents the GitHub user payload. Extra fields in the
// provider response are ignored.
type UserInfo struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url"`
}

var (
	// ErrTokenExchange means the code-for-token exchange failed.
	ErrTokenExchange = errors.New("token exchange failed")
	// ErrUserInfoFetch means the user info request failed.
	ErrUserInfoFetch = errors.New("user info fetch failed")
	// ErrMissingClaim means the provider payload lacks a required field.
	ErrMissingClaim = errors.New("required claim missing")

	// ErrNoSession means no session cookie was presented.
	ErrNoSession = errors.New("no session")
	// ErrSessionExpired means the session cookie is past its expiry.
	ErrSessionExpired = errors.New("session expired")
	// ErrSessionInvalid means the session cookie failed verification.
	ErrSessionInvalid = errors.New("invalid session")
)
