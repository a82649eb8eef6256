package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/world-conquest/internal/logger"
)

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// GetJSON performs a GET request and decodes the JSON response into result.
	// Rate limited (429) and unavailable (503) responses are retried with backoff.
	GetJSON(ctx context.Context, url string, result any) error
}

// StatusError is returned for non-2xx responses that are not retried
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client     *http.Client
	json       JSON
	maxElapsed time.Duration
}

// NewHTTPClient creates a new real HTTP client
func NewHTTPClient(timeout time.Duration, json JSON) HTTPClient {
	return &RealHTTPClient{
		client:     &http.Client{Timeout: timeout},
		json:       json,
		maxElapsed: 30 * time.Second,
	}
}

// GetJSON performs a GET request and decodes the response into result
func (c *RealHTTPClient) GetJSON(ctx context.Context, url string, result any) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to perform request: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warn("failed to close response body", zap.Error(err), zap.String("url", url))
			}
		}()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable:
			wait := retryAfter(resp.Header.Get("Retry-After"))
			logger.Warn("request throttled, retrying with backoff",
				zap.String("url", url),
				zap.Int("status", resp.StatusCode),
				zap.Duration("retry_after", wait))
			if wait > 0 {
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return backoff.Permanent(ctx.Err())
				}
			}
			return fmt.Errorf("throttled (%d)", resp.StatusCode)
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return backoff.Permanent(&StatusError{StatusCode: resp.StatusCode, Body: string(body)})
		}

		if err := c.json.Decode(resp.Body, result); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = c.maxElapsed
	b.RandomizationFactor = 0.5

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return fmt.Errorf("GET %s failed: %w", url, err)
	}
	return nil
}

// retryAfter parses a Retry-After header given in seconds
func retryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
