package api

import (
	"encoding/json"
	"net/http"
)

// UserResponse is the current-principal payload returned by /api/github/user.
type UserResponse struct {
	Login  string `json:"login"`
	ID     string `json:"id"`
	Avatar string `json:"avatar"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
