package api

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"devsim-backend/internal/auth"
	"devsim-backend/internal/data"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	// CallbackPath is the fixed path GitHub redirects back to. It is
	// registered with the OAuth application and must not change.
	CallbackPath = "/signin-github"

	// nonceCookieName binds the in-flight login attempt to the browser
	// that started it.
	nonceCookieName = "devsim_oauth_nonce"

	stateTTL = 10 * time.Minute
)

// GitHubHandler handles the OAuth login flow and the repos proxy.
type GitHubHandler struct {
	client   *auth.Client
	sessions *auth.CookieStore
	repos    *data.RepoClient
	states   *StateStore
	logger   *slog.Logger
}

// NewGitHubHandler creates a new GitHub handler.
func NewGitHubHandler(client *auth.Client, sessions *auth.CookieStore, repos *data.RepoClient, logger *slog.Logger) *GitHubHandler {
	return &GitHubHandler{
		client:   client,
		sessions: sessions,
		repos:    repos,
		states:   NewStateStore(),
		logger:   logger,
	}
}

// RegisterRoutes registers the login flow and the protected API routes.
func (h *GitHubHandler) RegisterRoutes(r *mux.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.HandleFunc("/api/github/login", h.login).Methods(http.MethodGet)
	r.HandleFunc(CallbackPath, h.callback).Methods(http.MethodGet)
	r.HandleFunc("/api/github/logout", h.logout).Methods(http.MethodPost)

	protected := r.PathPrefix("/api/github").Subrouter()
	protected.Use(sessionMiddleware)
	protected.Use(auth.RequireSession)
	protected.HandleFunc("/repos", h.repoList).Methods(http.MethodGet)
	protected.HandleFunc("/user", h.user).Methods(http.MethodGet)
}

// login starts the OAuth flow: fresh CSRF state, browser-bound nonce,
// redirect to GitHub's authorize endpoint.
func (h *GitHubHandler) login(w http.ResponseWriter, r *http.Request) {
	state := generateState()
	nonce := uuid.NewString()

	returnTo := r.URL.Query().Get("return_to")
	if returnTo == "" || returnTo[0] != '/' {
		returnTo = "/"
	}

	h.states.Save(state, stateTTL, nonce, returnTo)

	http.SetCookie(w, &http.Cookie{
		Name:     nonceCookieName,
		Value:    nonce,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(stateTTL.Seconds()),
	})

	http.Redirect(w, r, h.client.AuthCodeURL(state), http.StatusFound)
}

// callback finishes the OAuth flow: state check, code exchange, user
// info fetch, claims mapping, session cookie. Any failure aborts before
// the session is written.
func (h *GitHubHandler) callback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	wantNonce, returnTo, ok := h.states.Consume(state)
	nonceCookie, cookieErr := r.Cookie(nonceCookieName)
	clearNonceCookie(w)
	if !ok || cookieErr != nil || nonceCookie.Value != wantNonce {
		h.logger.Warn("oauth callback rejected", "reason", "state mismatch")
		writeError(w, http.StatusBadRequest, "invalid state parameter")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	token, err := h.client.ExchangeCode(r.Context(), code)
	if err != nil {
		h.logger.Error("oauth callback failed", "stage", "exchange", "error", err)
		writeError(w, http.StatusBadGateway, "token exchange failed")
		return
	}

	user, err := h.client.FetchUserInfo(r.Context(), token.AccessToken)
	if err != nil {
		h.logger.Error("oauth callback failed", "stage", "userinfo", "error", err)
		writeError(w, http.StatusBadGateway, "user info fetch failed")
		return
	}

	claims, err := auth.MapClaims(user)
	if err != nil {
		h.logger.Error("oauth callback failed", "stage", "claims", "error", err)
		writeError(w, http.StatusBadGateway, "provider payload missing required fields")
		return
	}

	session := &auth.Session{
		Claims:      claims,
		AccessToken: token.AccessToken,
		IssuedAt:    time.Now(),
	}
	if err := h.sessions.Persist(w, session); err != nil {
		h.logger.Error("oauth callback failed", "stage", "session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to persist session")
		return
	}

	h.logger.Info("user signed in", "login", claims[auth.ClaimLogin])
	http.Redirect(w, r, returnTo, http.StatusFound)
}

// logout clears the session cookie.
func (h *GitHubHandler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// user returns the current principal's claims.
func (h *GitHubHandler) user(w http.ResponseWriter, r *http.Request) {
	session, err := auth.SessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{
		Login:  session.Claims[auth.ClaimLogin],
		ID:     session.Claims[auth.ClaimID],
		Avatar: session.Claims[auth.ClaimAvatar],
	})
}

// repoList proxies the repository listing on the user's behalf. The
// downstream body is returned verbatim; no reshaping.
func (h *GitHubHandler) repoList(w http.ResponseWriter, r *http.Request) {
	session, err := auth.SessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	body, err := h.repos.ListRepositories(r.Context(), session.AccessToken)
	if err != nil {
		var downstream *data.DownstreamError
		if errors.As(err, &downstream) {
			h.logger.Error("repos proxy failed", "stage", "downstream", "status", downstream.StatusCode)
			writeError(w, http.StatusBadGateway, downstream.Error())
			return
		}
		h.logger.Error("repos proxy failed", "stage", "downstream", "error", err)
		writeError(w, http.StatusBadGateway, "github api unreachable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func clearNonceCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     nonceCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

func generateState() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
