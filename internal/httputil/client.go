// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil owns the shared HTTP client used by every component
// that talks to the network. The client bounds its connection pool,
// rate-limits outgoing requests, attaches the polite identification
// headers the Crossref registry asks for, and retries HTTP 429.
package httputil

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/yongrenjie/cygnet/pkg/types"
)

// Client wraps an *http.Client with rate limiting and polite headers.
// One instance is constructed at program start and passed by reference
// into everything that issues requests.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	mailto     string
}

// New builds the shared client from config. The transport's per-host
// connection count is capped at cfg.MaxConnections, the same number used
// as the batch concurrency bound.
func New(cfg types.HTTPConfig) *Client {
	transport := &http.Transport{
		MaxConnsPerHost:     cfg.MaxConnections,
		MaxIdleConnsPerHost: cfg.MaxConnections,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		userAgent: cfg.UserAgent,
		mailto:    cfg.Mailto,
	}
}

// NewWithHTTPClient wraps an existing *http.Client (httptest servers hand
// one out) with the same header and rate-limit behaviour.
func NewWithHTTPClient(hc *http.Client, cfg types.HTTPConfig) *Client {
	rps := rate.Limit(cfg.RequestsPerSecond)
	if rps == 0 {
		rps = rate.Inf
	}
	return &Client{
		httpClient: hc,
		limiter:    rate.NewLimiter(rps, 1),
		userAgent:  cfg.UserAgent,
		mailto:     cfg.Mailto,
	}
}

// Get issues a GET for url, waiting on the rate limiter first and
// retrying on HTTP 429. The polite headers are set on every request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.Do(req)
}

// Do executes req with rate limiting, polite headers, and 429 retry.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.mailto != "" && req.Header.Get("Mailto") == "" {
		req.Header.Set("Mailto", c.mailto)
	}
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return c.doWithRetry(req, 0)
}
