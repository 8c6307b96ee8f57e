// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reruns/internal/config"
	"github.com/tomtom215/reruns/internal/metrics"
)

// maxResponseBytes bounds a provider response body.
const maxResponseBytes = 8 << 20

// httpClient performs JSON GETs against one provider.
type httpClient struct {
	name    string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter // nil when throttling is disabled
	retries uint
	delay   time.Duration
	breaker *breaker
	logger  zerolog.Logger
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func newHTTPClient(name string, cfg *config.ProviderConfig, logger zerolog.Logger) *httpClient {
	logger = logger.With().Str("provider", name).Logger()

	c := &httpClient{
		name:    name,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		retries: cfg.RetryAttempts,
		delay:   cfg.RetryDelay,
		breaker: newBreaker(name+"-api", logger),
		logger:  logger,
	}
	if c.retries == 0 {
		c.retries = 1
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c
}

// getJSON fetches path (relative to the base URL) and decodes the body into out.
func (c *httpClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	_, err := c.breaker.execute(func() (any, error) {
		return nil, retry.Do(
			func() error { return c.fetch(ctx, target, out) },
			retry.Context(ctx),
			retry.Attempts(c.retries),
			retry.Delay(c.delay),
			retry.LastErrorOnly(true),
			retry.RetryIf(isRetryable),
			retry.OnRetry(func(n uint, err error) {
				c.logger.Debug().Err(err).Uint("attempt", n+1).Str("url", target).Msg("retrying provider request")
			}),
		)
	})
	return err
}

// fetch performs a single attempt.
func (c *httpClient) fetch(ctx context.Context, target string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s: rate limiter: %w", c.name, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", c.name, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordProviderRequest(c.name, "error", time.Since(start))
		return fmt.Errorf("%s: request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		metrics.RecordProviderRequest(c.name, "not_found", time.Since(start))
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		metrics.RecordProviderRequest(c.name, "error", time.Since(start))
		return &StatusError{Provider: c.name, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		metrics.RecordProviderRequest(c.name, "error", time.Since(start))
		return fmt.Errorf("%s: decode response: %w", c.name, err)
	}
	metrics.RecordProviderRequest(c.name, "ok", time.Since(start))
	return nil
}

// isRetryable reports whether a failed attempt should be repeated.
func isRetryable(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return true
}
