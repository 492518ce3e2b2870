package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "devsim_session"

// Session is the authenticated state owned by the browser. The cookie IS
// the session; nothing is stored server-side.
type Session struct {
	Claims      ClaimSet
	AccessToken string
	IssuedAt    time.Time
}

// sessionClaims is the JWT payload. The access token is a bearer
// credential, so it is sealed with AES-GCM rather than carried in the
// signed-but-readable claim body.
type sessionClaims struct {
	Claims ClaimSet `json:"claims"`
	Token  string   `json:"token"`
	jwt.RegisteredClaims
}

// CookieStore serializes sessions into a signed, SameSite=Lax cookie.
// SameSite must stay Lax: the cookie has to survive the cross-site
// redirect back from GitHub.
type CookieStore struct {
	signKey []byte
	sealKey [32]byte
	ttl     time.Duration
}

// NewCookieStore creates a cookie store keyed by secret. Sessions expire
// after ttl.
func NewCookieStore(secret string, ttl time.Duration) (*CookieStore, error) {
	if secret == "" {
		return nil, errors.New("session secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	return &CookieStore{
		signKey: []byte(secret),
		sealKey: sha256.Sum256([]byte(secret)),
		ttl:     ttl,
	}, nil
}

// Persist serializes the session and sets it as the session cookie.
// It refuses to write a session without an access token and the
// mandatory login/id claims.
func (cs *CookieStore) Persist(w http.ResponseWriter, s *Session) error {
	if s.AccessToken == "" || s.Claims[ClaimLogin] == "" || s.Claims[ClaimID] == "" {
		return fmt.Errorf("%w: incomplete session", ErrSessionInvalid)
	}

	sealed, err := cs.seal(s.AccessToken)
	if err != nil {
		return fmt.Errorf("seal access token: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Claims: s.Claims,
		Token:  sealed,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(s.IssuedAt.Add(cs.ttl)),
		},
	})
	signed, err := token.SignedString(cs.signKey)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(cs.ttl.Seconds()),
	})
	return nil
}

// Load reverses Persist. Failures are distinct so callers can tell
// "please log in" from "something is wrong": ErrNoSession when the
// cookie is absent, ErrSessionExpired past expiry, ErrSessionInvalid on
// a bad signature or a malformed payload.
func (cs *CookieStore) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}

	var claims sessionClaims
	_, err = jwt.ParseWithClaims(cookie.Value, &claims,
		func(t *jwt.Token) (interface{}, error) { return cs.signKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}

	accessToken, err := cs.open(claims.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: unseal access token", ErrSessionInvalid)
	}
	if accessToken == "" || claims.Claims[ClaimLogin] == "" || claims.Claims[ClaimID] == "" {
		return nil, fmt.Errorf("%w: incomplete session", ErrSessionInvalid)
	}

	var issuedAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return &Session{
		Claims:      claims.Claims,
		AccessToken: accessToken,
		IssuedAt:    issuedAt,
	}, nil
}

// Clear expires the session cookie (sign-out).
func (cs *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// seal encrypts plain with AES-256-GCM and encodes it for cookie
// transport. The nonce is prepended to the ciphertext.
func (cs *CookieStore) seal(plain string) (string, error) {
	block, err := aes.NewCipher(cs.sealKey[:])
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	out := gcm.Seal(nonce, nonce, []byte(plain), nil)
	return base64.RawURLEncoding.EncodeToString(out), nil
}

func (cs *CookieStore) open(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}
	block, err := aes.NewCipher(cs.sealKey[:])
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	if len(raw) < gcm.NonceSize() {
		return "", errors.New("sealed value too short")
	}
	plain, err := gcm.Open(nil, raw[:gcm.NonceSize()], raw[gcm.NonceSize():], nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
