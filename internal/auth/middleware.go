package auth

import (
	"encoding/json"
	"net/http"
)

// Middleware loads the session cookie and, when it verifies, attaches
// the session to the request context. The request always passes through;
// each handler decides whether to require the principal. There is no
// ambient current-user lookup.
func (cs *CookieStore) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s, err := cs.Load(r); err == nil {
				r = r.WithContext(WithSession(r.Context(), s))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession gates a handler on an authenticated session. Missing,
// expired, or tampered cookies all end here as a 401; no resource leaks
// past this point.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := SessionFromContext(r.Context()); err != nil {
			writeUnauthorized(w, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": message,
	})
}
