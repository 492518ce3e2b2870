package data

import (
	"net/http"
	"time"
)

// outboundTimeout bounds every call to GitHub so a hung provider cannot
// tie up a request slot indefinitely.
const outboundTimeout = 10 * time.Second

// NewHTTPClient returns the shared outbound HTTP client. One client per
// process so connections are pooled rather than opened per call.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: outboundTimeout}
}
