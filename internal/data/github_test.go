package data

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListRepositories(t *testing.T) {
	const body = `[{"name":"repo1"}]`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/repos" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok1" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer tok1")
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer ts.Close()

	client := NewRepoClient(ts.URL, NewHTTPClient())

	got, err := client.ListRepositories(context.Background(), "tok1")
	if err != nil {
		t.Fatalf("ListRepositories failed: %v", err)
	}
	if string(got) != body {
		t.Errorf("body = %q, want %q", got, body)
	}
}

func TestListRepositoriesDownstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := NewRepoClient(ts.URL, NewHTTPClient())

	_, err := client.ListRepositories(context.Background(), "expired")
	var downstream *DownstreamError
	if !errors.As(err, &downstream) {
		t.Fatalf("got %v, want DownstreamError", err)
	}
	if downstream.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", downstream.StatusCode)
	}
}

func TestListRepositoriesInvalidJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer ts.Close()

	client := NewRepoClient(ts.URL, NewHTTPClient())

	if _, err := client.ListRepositories(context.Background(), "tok1"); err == nil {
		t.Fatal("expected error for non-JSON payload")
	}
}

func TestListRepositoriesCancelledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	client := NewRepoClient(ts.URL, NewHTTPClient())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.ListRepositories(ctx, "tok1"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
