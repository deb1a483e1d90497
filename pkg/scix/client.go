// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scix is a client for the SciX (formerly NASA ADS) API.
//
// Every request goes through one pipeline: token check, rate limiter,
// single HTTP attempt, status classification. Failures are returned as
// *Error values whose Kind tells the caller what happened. Nothing is
// retried automatically; a rate-limited caller decides when to try again.
package scix

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/scix/internal/httputil"
	"github.com/pdiddy/scix/pkg/ratelimit"
	"github.com/pdiddy/scix/pkg/types"
)

// Version is reported in the default User-Agent.
var Version = "0.1.0"

// Client talks to the SciX API. It is safe for concurrent use; its
// configuration is read-only after New.
type Client struct {
	token     string
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *ratelimit.Limiter
	log       *zap.Logger
	now       func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithLimiter shares an existing limiter. Clients built without one get
// their own limiter sized from the config.
func WithLimiter(l *ratelimit.Limiter) Option { return func(c *Client) { c.limiter = l } }

// WithHTTPClient replaces the HTTP client. Its Timeout is left as given.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithLogger sets the request logger.
func WithLogger(log *zap.Logger) Option { return func(c *Client) { c.log = log } }

// New builds a client from cfg. An empty token is allowed; requests then
// fail with KindAuthRequired without touching the network.
func New(cfg types.ClientConfig, opts ...Option) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = types.DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, newError(KindConfig, fmt.Sprintf("invalid base URL %q", cfg.BaseURL), err)
	}
	if cfg.RateLimit.PerSecond < 0 {
		return nil, newError(KindConfig, fmt.Sprintf("rate limit must be positive, got %d", cfg.RateLimit.PerSecond), nil)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = types.DefaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "scix-client/" + Version
	}

	c := &Client{
		token:     strings.TrimSpace(cfg.Token),
		baseURL:   base,
		userAgent: ua,
		log:       zap.NewNop(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: timeout}
	}
	if c.limiter == nil {
		perSecond := cfg.RateLimit.PerSecond
		if perSecond == 0 {
			perSecond = types.DefaultRequestsPerSecond
		}
		c.limiter = ratelimit.New(perSecond, ratelimit.WithLogger(c.log))
	}
	return c, nil
}

// Limiter returns the limiter gating this client.
func (c *Client) Limiter() *ratelimit.Limiter { return c.limiter }

// HasToken reports whether a token is configured.
func (c *Client) HasToken() bool { return c.token != "" }

// execute runs one request through the pipeline and returns the 2xx body.
func (c *Client) execute(ctx context.Context, r Request) ([]byte, error) {
	if c.token == "" {
		return nil, &Error{Kind: KindAuthRequired}
	}
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, newError(KindNetwork, "waiting for rate limiter", err)
	}

	req, err := r.httpRequest(ctx, c.baseURL)
	if err != nil {
		return nil, newError(KindNetwork, "building request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := c.now()
	resp, body, err := httputil.Do(ctx, c.http, req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.Path),
			zap.Error(err),
		)
		if resp != nil {
			c.limiter.ObserveHeaders(resp.Header)
		}
		return nil, newError(KindNetwork, r.Method+" "+r.Path, err)
	}

	c.limiter.ObserveHeaders(resp.Header)
	c.log.Debug("request",
		zap.String("method", r.Method),
		zap.String("path", r.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", c.now().Sub(start)),
	)

	return c.classify(resp, body)
}

func (c *Client) classify(resp *http.Response, body []byte) ([]byte, error) {
	status := resp.StatusCode
	switch {
	case status >= 200 && status < 300:
		return body, nil
	case status == http.StatusNotFound:
		return nil, &Error{Kind: KindNotFound, Status: status, Message: httputil.ErrorMessage(status, body)}
	case status == http.StatusTooManyRequests:
		e := &Error{Kind: KindRateLimited, Status: status, Message: httputil.ErrorMessage(status, body)}
		if d, ok := httputil.RetryAfter(resp.Header, c.now()); ok {
			e.RetryAfter = d
			c.limiter.ObserveRetryAfter(d)
		}
		return nil, e
	default:
		return nil, &Error{Kind: KindAPI, Status: status, Message: httputil.ErrorMessage(status, body)}
	}
}
