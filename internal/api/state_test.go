package api

import (
	"testing"
	"time"
)

func TestStateStoreConsume(t *testing.T) {
	store := NewStateStore()
	store.Save("s1", time.Minute, "n1", "/home")

	nonce, returnTo, ok := store.Consume("s1")
	if !ok {
		t.Fatal("Consume failed for valid state")
	}
	if nonce != "n1" || returnTo != "/home" {
		t.Errorf("got (%q, %q), want (n1, /home)", nonce, returnTo)
	}

	// One-time use.
	if _, _, ok := store.Consume("s1"); ok {
		t.Fatal("state consumed twice")
	}
}

func TestStateStoreUnknownState(t *testing.T) {
	store := NewStateStore()
	if _, _, ok := store.Consume("never-issued"); ok {
		t.Fatal("Consume succeeded for unknown state")
	}
}

func TestStateStoreExpiry(t *testing.T) {
	store := NewStateStore()
	store.Save("s1", -time.Second, "n1", "/")

	if _, _, ok := store.Consume("s1"); ok {
		t.Fatal("Consume succeeded for expired state")
	}
}
