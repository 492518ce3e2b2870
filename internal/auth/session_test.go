package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T, ttl time.Duration) *CookieStore {
	t.Helper()
	store, err := NewCookieStore("test-secret", ttl)
	if err != nil {
		t.Fatalf("NewCookieStore failed: %v", err)
	}
	return store
}

func testSession() *Session {
	return &Session{
		Claims: ClaimSet{
			ClaimLogin:  "alice",
			ClaimID:     "42",
			ClaimAvatar: "http://x/a.png",
		},
		AccessToken: "gho_secret_token",
		IssuedAt:    time.Now().Truncate(time.Second),
	}
}

// persist writes the session and returns the resulting cookie.
func persist(t *testing.T, store *CookieStore, s *Session) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := store.Persist(rec, s); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func requestWithCookie(c *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/github/repos", nil)
	req.AddCookie(c)
	return req
}

func TestSessionRoundTrip(t *testing.T) {
	store := newTestStore(t, time.Hour)
	want := testSession()

	cookie := persist(t, store, want)

	if !cookie.HttpOnly {
		t.Error("session cookie must be httpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Error("session cookie must be SameSite=Lax")
	}

	got, err := store.Load(requestWithCookie(cookie))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.AccessToken != want.AccessToken {
		t.Errorf("access token = %q, want %q", got.AccessToken, want.AccessToken)
	}
	if !got.IssuedAt.Equal(want.IssuedAt) {
		t.Errorf("issued at = %v, want %v", got.IssuedAt, want.IssuedAt)
	}
	for name, value := range want.Claims {
		if got.Claims[name] != value {
			t.Errorf("claim %q = %q, want %q", name, got.Claims[name], value)
		}
	}
}

func TestSessionCookieHidesAccessToken(t *testing.T) {
	store := newTestStore(t, time.Hour)
	s := testSession()

	cookie := persist(t, store, s)

	// The cookie carries a bearer credential; it must be opaque, not
	// merely signed.
	if strings.Contains(cookie.Value, s.AccessToken) {
		t.Fatal("access token appears verbatim in cookie value")
	}
}

func TestLoadNoCookie(t *testing.T) {
	store := newTestStore(t, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := store.Load(req); !errors.Is(err, ErrNoSession) {
		t.Fatalf("got %v, want ErrNoSession", err)
	}
}

func TestLoadTamperedCookie(t *testing.T) {
	store := newTestStore(t, time.Hour)
	cookie := persist(t, store, testSession())

	tampered := &http.Cookie{Name: SessionCookieName, Value: cookie.Value + "x"}
	if _, err := store.Load(requestWithCookie(tampered)); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("got %v, want ErrSessionInvalid", err)
	}

	garbage := &http.Cookie{Name: SessionCookieName, Value: "not.a.jwt"}
	if _, err := store.Load(requestWithCookie(garbage)); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("got %v, want ErrSessionInvalid", err)
	}
}

func TestLoadWrongKey(t *testing.T) {
	store := newTestStore(t, time.Hour)
	cookie := persist(t, store, testSession())

	other, err := NewCookieStore("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewCookieStore failed: %v", err)
	}
	if _, err := other.Load(requestWithCookie(cookie)); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("got %v, want ErrSessionInvalid", err)
	}
}

func TestLoadExpiredSession(t *testing.T) {
	store := newTestStore(t, time.Hour)

	s := testSession()
	s.IssuedAt = time.Now().Add(-2 * time.Hour)
	cookie := persist(t, store, s)

	if _, err := store.Load(requestWithCookie(cookie)); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("got %v, want ErrSessionExpired", err)
	}
}

func TestPersistRefusesIncompleteSession(t *testing.T) {
	store := newTestStore(t, time.Hour)

	tests := []struct {
		name    string
		session Session
	}{
		{
			name:    "no access token",
			session: Session{Claims: ClaimSet{ClaimLogin: "alice", ClaimID: "42"}},
		},
		{
			name:    "no login claim",
			session: Session{Claims: ClaimSet{ClaimID: "42"}, AccessToken: "tok"},
		},
		{
			name:    "no id claim",
			session: Session{Claims: ClaimSet{ClaimLogin: "alice"}, AccessToken: "tok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := store.Persist(rec, &tt.session); !errors.Is(err, ErrSessionInvalid) {
				t.Fatalf("got %v, want ErrSessionInvalid", err)
			}
			if len(rec.Result().Cookies()) != 0 {
				t.Error("cookie set for incomplete session")
			}
		})
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t, time.Hour)

	rec := httptest.NewRecorder()
	store.Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName {
		t.Fatal("expected session cookie to be cleared")
	}
	if cookies[0].MaxAge >= 0 {
		t.Error("cleared cookie must have negative MaxAge")
	}
}
