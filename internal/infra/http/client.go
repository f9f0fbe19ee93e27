package http

import (
	nethttp "net/http"
	"time"
)

// NewClient returns the shared outbound HTTP client. Every remote call in a
// pass goes through a fixed request timeout; retry policy lives with the
// callers.
func NewClient(timeout time.Duration) *nethttp.Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &nethttp.Client{Timeout: timeout}
}
