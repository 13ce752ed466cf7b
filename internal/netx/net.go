// Package netx holds small network helpers used by the terminal client.
package netx

import (
	"context"
	"net/http"
	"time"
)

// CheckReachability sends a HEAD request to url and reports whether a
// non-5xx response arrived within timeout.
func CheckReachability(ctx context.Context, url string, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < http.StatusInternalServerError
}
