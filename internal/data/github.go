package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GitHub rejects API requests without an identifying User-Agent.
const userAgent = "devsim-backend/1.0"

// DownstreamError carries the non-success status returned by the GitHub
// API so callers can surface the failing stage.
type DownstreamError struct {
	StatusCode int
}

func (e *DownstreamError) Error() string {
	return fmt.Sprintf("github api returned status %d", e.StatusCode)
}

// RepoClient calls the GitHub REST API on the user's behalf.
type RepoClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRepoClient creates a repo client against baseURL (the GitHub API
// root, overridable for tests).
func NewRepoClient(baseURL string, httpClient *http.Client) *RepoClient {
	return &RepoClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// ListRepositories fetches the authenticated user's repositories and
// returns the raw JSON body. The payload is checked for syntactic
// validity only, never reshaped. Cancelling ctx cancels the call.
func (c *RepoClient) ListRepositories(ctx context.Context, accessToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user/repos", nil)
	if err != nil {
		return nil, fmt.Errorf("build repos request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("repos request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &DownstreamError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read repos response: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("repos response is not valid JSON")
	}
	return body, nil
}
