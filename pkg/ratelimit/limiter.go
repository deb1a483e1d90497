// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ratelimit gates every outbound SciX request through a local token
// bucket and the server's own rate-limit signals.
//
// The local budget holds up to capacity tokens and refills at capacity tokens
// per second. When the server has reported that no requests remain before a
// reset time, Acquire waits for that reset even if local tokens are available.
// One Limiter is shared by every client in the process.
package ratelimit

import (
	"context"
	"math"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/scix/internal/httputil"
)

// DefaultCapacity is the default burst size and per-second refill rate.
const DefaultCapacity = 5

// Clock returns the current time.
type Clock func() time.Time

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces the wall clock, for deterministic tests.
func WithClock(c Clock) Option { return func(l *Limiter) { l.now = c } }

// WithSleep replaces the sleeper used while waiting for tokens.
func WithSleep(s Sleeper) Option { return func(l *Limiter) { l.sleep = s } }

// WithLogger logs waits at debug level.
func WithLogger(log *zap.Logger) Option { return func(l *Limiter) { l.log = log } }

// Limiter is a token bucket combined with server-reported limit state.
type Limiter struct {
	mu     sync.Mutex
	bucket *rate.Limiter
	cap    int

	// Server state; serverRemaining is -1 until a response reports it.
	serverLimit     int
	serverRemaining int
	serverResetAt   time.Time

	// retryUntil is the deadline from the last 429's Retry-After. It is kept
	// apart from serverResetAt, which is the server's quota window reset.
	retryUntil time.Time

	now   Clock
	sleep Sleeper
	log   *zap.Logger
}

// New returns a limiter with the given capacity. A non-positive capacity
// falls back to DefaultCapacity.
func New(capacity int, opts ...Option) *Limiter {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	l := &Limiter{
		bucket:          rate.NewLimiter(rate.Limit(capacity), capacity),
		cap:             capacity,
		serverLimit:     -1,
		serverRemaining: -1,
		now:             time.Now,
		sleep:           sleepContext,
		log:             zap.NewNop(),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Acquire blocks until one token is available and consumes it. It returns
// only ctx.Err() when the context ends while waiting.
func (l *Limiter) Acquire(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.mu.Lock()
		now := l.now()
		wait, reason := l.reserveLocked(now)
		l.mu.Unlock()

		if wait == 0 {
			return nil
		}

		l.log.Debug("rate limiter waiting",
			zap.Duration("wait", wait),
			zap.String("reason", reason),
		)
		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// reserveLocked takes a token and returns zero, or returns how long to wait
// before trying again. The bucket is only debited through AllowN, which
// never takes it below zero.
func (l *Limiter) reserveLocked(now time.Time) (time.Duration, string) {
	var wait time.Duration
	reason := ""
	if l.serverRemaining == 0 && now.Before(l.serverResetAt) {
		wait, reason = l.serverResetAt.Sub(now), "server"
	}
	if d := l.retryUntil.Sub(now); d > wait {
		wait, reason = d, "retry-after"
	}
	if wait > 0 {
		return wait, reason
	}
	if l.bucket.AllowN(now, 1) {
		return 0, ""
	}
	missing := 1 - l.bucket.TokensAt(now)
	secs := missing / float64(l.bucket.Limit())
	wait = time.Duration(math.Ceil(secs * float64(time.Second)))
	if wait <= 0 {
		wait = time.Microsecond
	}
	return wait, "local"
}

// ObserveHeaders records the X-RateLimit-* headers of a response.
func (l *Limiter) ObserveHeaders(h http.Header) {
	rl, ok := httputil.ParseRateLimit(h)
	if !ok {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if rl.Limit >= 0 {
		l.serverLimit = rl.Limit
	}
	if rl.Remaining >= 0 {
		l.serverRemaining = rl.Remaining
	}
	if !rl.Reset.IsZero() {
		l.serverResetAt = rl.Reset
	}
}

// ObserveRetryAfter records the Retry-After of a 429 response: no request
// is let through before now+d. The reported quota window is left alone.
func (l *Limiter) ObserveRetryAfter(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if until := l.now().Add(d); until.After(l.retryUntil) {
		l.retryUntil = until
	}
}

// State is a point-in-time view of the limiter.
type State struct {
	Capacity int     `json:"capacity" yaml:"capacity"`
	Tokens   float64 `json:"tokens" yaml:"tokens"`

	// Server fields are -1 / zero until a response reports them.
	ServerLimit     int       `json:"server_limit" yaml:"server_limit"`
	ServerRemaining int       `json:"server_remaining" yaml:"server_remaining"`
	ServerResetAt   time.Time `json:"server_reset_at,omitzero" yaml:"server_reset_at,omitempty"`

	// RetryUntil is the Retry-After deadline of the last 429, zero if none.
	RetryUntil time.Time `json:"retry_until,omitzero" yaml:"retry_until,omitempty"`
}

// Snapshot returns the current state without consuming a token.
func (l *Limiter) Snapshot() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return State{
		Capacity:        l.cap,
		Tokens:          l.bucket.TokensAt(l.now()),
		ServerLimit:     l.serverLimit,
		ServerRemaining: l.serverRemaining,
		ServerResetAt:   l.serverResetAt,
		RetryUntil:      l.retryUntil,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
