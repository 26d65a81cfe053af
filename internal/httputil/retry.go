// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for the API client.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// RetryBaseDelay is the first backoff step. Tests override it.
var RetryBaseDelay = 2 * time.Second

// MaxRetryDelay caps a single wait, including server-provided Retry-After.
var MaxRetryDelay = time.Minute

const defaultMaxRetries = 5

// Retryable reports whether status signals a transient server condition
// worth retrying: 429 Too Many Requests or 503 Service Unavailable.
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// DoWithRetry sends req and retries on retryable statuses with exponential
// backoff starting at RetryBaseDelay. A Retry-After header given in
// seconds replaces the computed delay. Waits never exceed MaxRetryDelay.
//
// When maxRetries is 0 the default (5) is used. Response bodies of retried
// attempts are drained and closed. If ctx ends during a wait, ctx.Err() is
// returned. After the last retry the final response is returned unchanged
// so the caller can report its status.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, log *zap.Logger) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if log == nil {
		log = zap.NewNop()
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		wait := backoff(attempt, resp.Header.Get("Retry-After"))
		log.Info("server busy, retrying",
			zap.Int("status", resp.StatusCode),
			zap.Duration("wait", wait),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func backoff(attempt int, retryAfter string) time.Duration {
	wait := RetryBaseDelay << attempt
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		wait = time.Duration(secs) * time.Second
	}
	if wait > MaxRetryDelay || wait < 0 {
		wait = MaxRetryDelay
	}
	return wait
}
