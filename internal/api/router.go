package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter creates the router and registers all handlers.
func NewRouter(githubHandler *GitHubHandler, sessionMiddleware func(http.Handler) http.Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check endpoint (public, no auth)
	r.HandleFunc("/health", HealthCheckHandler).Methods(http.MethodGet)

	githubHandler.RegisterRoutes(r, sessionMiddleware)

	return r
}
