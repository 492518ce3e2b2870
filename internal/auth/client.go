package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"devsim-backend/internal/conf"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// GitHub rejects API requests without an identifying User-Agent.
const userAgent = "devsim-backend/1.0"

// Client wraps the GitHub OAuth2 configuration and the user info fetch.
type Client struct {
	oauth2Config oauth2.Config
	userInfoURL  string
	httpClient   *http.Client
}

// NewClient creates a GitHub OAuth client. All outbound calls go through
// httpClient so connection pooling and timeouts are shared.
func NewClient(cfg *conf.GitHub, redirectURL string, httpClient *http.Client) *Client {
	endpoint := github.Endpoint
	if cfg.AuthURL != "" && cfg.TokenURL != "" {
		endpoint = oauth2.Endpoint{AuthURL: cfg.AuthURL, TokenURL: cfg.TokenURL}
	}

	return &Client{
		oauth2Config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoint,
			Scopes:       cfg.Scopes,
		},
		userInfoURL: cfg.UserInfoURL,
		httpClient:  httpClient,
	}
}

// AuthCodeURL returns the GitHub authorization URL with state parameter.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth2Config.AuthCodeURL(state)
}

// ExchangeCode exchanges the authorization code for an access token.
// The returned token is a bearer credential; callers must not log it.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token in response", ErrTokenExchange)
	}
	return token, nil
}

// FetchUserInfo loads the authenticated user's profile from the user
// info endpoint. One outbound call, no retry; a failure propagates to
// the caller of the flow.
func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfoFetch, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfoFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUserInfoFetch, resp.StatusCode)
	}

	var user UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrUserInfoFetch, err)
	}
	return &user, nil
}
