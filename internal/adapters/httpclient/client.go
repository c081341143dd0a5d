// Package httpclient builds the shared retryable HTTP client used by the
// PaaS and DNS adapters. It centralizes the retry/timeout/error-classification
// policy so individual adapters only deal with typed requests and responses.
package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Options configures one backend's retry/timeout policy.
type Options struct {
	// RequestTimeout bounds a single attempt, retries included.
	RequestTimeout time.Duration
	// RetryMax is the number of retries after the first attempt (§4.1: up to 3).
	RetryMax int
}

// DefaultOptions matches §4.1's "retried up to 3 times with exponential
// backoff (500ms, 1s, 2s)" policy.
func DefaultOptions(timeout time.Duration) Options {
	return Options{RequestTimeout: timeout, RetryMax: 3}
}

// New builds a *retryablehttp.Client that retries transient network errors
// and HTTP 5xx responses, but never HTTP 4xx — identical classification to
// kibamail's webhook notifier client.
func New(opts Options) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = opts.RetryMax
	c.RetryWaitMin = 500 * time.Millisecond
	c.RetryWaitMax = 2 * time.Second
	c.HTTPClient.Timeout = opts.RequestTimeout
	c.Logger = nil

	c.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, nil
		}
		if resp == nil {
			return true, nil
		}
		code := resp.StatusCode
		if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests {
			return true, nil
		}
		return code >= 500, nil
	}

	return c
}
