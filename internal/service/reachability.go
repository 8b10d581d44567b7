package service

import (
	"context"
	"net/http"
	"time"
)

// URLChecker decides whether a normalized URL may be shortened.
type URLChecker interface {
	Check(ctx context.Context, url string) error
}

type httpChecker struct {
	client *http.Client
}

// NewHTTPChecker probes targets with a HEAD request, following redirects.
func NewHTTPChecker(timeout time.Duration) URLChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpChecker{client: &http.Client{Timeout: timeout}}
}

func (c *httpChecker) Check(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return invalid("Invalid URL format")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return invalid("URL is not reachable")
	}
	resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return invalid("URL returned error status code")
	}
	return nil
}
