package api

import (
	"sync"
	"time"
)

// StateStore manages CSRF state parameters (simple in-memory).
type StateStore struct {
	states sync.Map // map[state]stateData
}

// stateData stores state-related data.
type stateData struct {
	Expiry   time.Time
	Nonce    string // browser-binding nonce, mirrored in a short-lived cookie
	ReturnTo string // URL to redirect to after successful authentication
}

// NewStateStore creates a new state store.
func NewStateStore() *StateStore {
	store := &StateStore{}
	go store.cleanup()
	return store
}

// Save stores a state with expiry, browser nonce, and return URL.
func (s *StateStore) Save(state string, duration time.Duration, nonce, returnTo string) {
	s.states.Store(state, stateData{
		Expiry:   time.Now().Add(duration),
		Nonce:    nonce,
		ReturnTo: returnTo,
	})
}

// Consume checks and consumes a state (one-time use), returning the
// nonce and return URL recorded at login.
func (s *StateStore) Consume(state string) (nonce, returnTo string, ok bool) {
	val, ok := s.states.Load(state)
	if !ok {
		return "", "", false
	}
	s.states.Delete(state) // one-time use

	data := val.(stateData)
	if time.Now().After(data.Expiry) {
		return "", "", false
	}
	return data.Nonce, data.ReturnTo, true
}

func (s *StateStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		s.states.Range(func(key, value interface{}) bool {
			data := value.(stateData)
			if now.After(data.Expiry) {
				s.states.Delete(key)
			}
			return true
		})
	}
}
