package heroku

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrMaxRetriesExceeded is returned when every attempt failed
var ErrMaxRetriesExceeded = errors.New("max retries exceeded")

// RetryConfig holds configuration for retry behavior
type RetryConfig struct {
	// MaxRetries is the number of attempts after the first one
	MaxRetries int
	// BaseDelay is the delay before the first retry
	BaseDelay time.Duration
	// MaxDelay caps the exponential backoff
	MaxDelay time.Duration
}

// DefaultRetryConfig retries twice with 500ms and 1s delays
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 2,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   2 * time.Second,
	}
}

// delay returns the backoff before attempt: BaseDelay * 2^(attempt-1), capped
func (rc RetryConfig) delay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	d := rc.BaseDelay * time.Duration(1<<(attempt-1))
	if rc.MaxDelay > 0 && d > rc.MaxDelay {
		d = rc.MaxDelay
	}
	return d
}

// shouldRetry reports whether a response status is worth another attempt.
// 429 is not retried: the rate limit window is far longer than any backoff.
func shouldRetry(statusCode int) bool {
	return statusCode >= 500 && statusCode < 600
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// do executes req, retrying on network errors and 5xx responses with
// exponential backoff. The last 5xx response is returned once retries run out
// so callers can report its body.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	var lastErr error

	for attempt := 0; attempt <= c.Retry.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, c.Retry.delay(attempt)); err != nil {
				return nil, err
			}
		}

		resp, err := c.HTTPClient.Do(req.Clone(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		if shouldRetry(resp.StatusCode) && attempt < c.Retry.MaxRetries {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: status %d", resp.StatusCode)
			continue
		}
		return resp, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrMaxRetriesExceeded, lastErr)
}
