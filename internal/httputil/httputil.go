// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for the SciX transport: a single-shot
// request executor and parsers for rate-limit and error response headers.
package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// MaxBodyBytes caps how much of a response body is read into memory.
var MaxBodyBytes int64 = 64 << 20

// Do executes req exactly once and returns the response with its body fully
// read and closed. Non-2xx statuses are not errors here; callers classify them.
func Do(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, []byte, error) {
	resp, err := client.Do(req.Clone(ctx))
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return resp, nil, fmt.Errorf("reading response body: %w", err)
	}
	return resp, body, nil
}

// MaxRetryAfter caps the wait a Retry-After header can ask for.
const MaxRetryAfter = 24 * time.Hour

// RetryAfter parses a Retry-After header given either as delta seconds or as
// an HTTP date. It returns false when the header is absent or malformed.
func RetryAfter(h http.Header, now time.Time) (time.Duration, bool) {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		if secs < 0 || math.IsNaN(secs) {
			return 0, false
		}
		return time.Duration(min(secs, MaxRetryAfter.Seconds()) * float64(time.Second)), true
	}
	if t, err := http.ParseTime(v); err == nil {
		d := t.Sub(now)
		if d < 0 {
			d = 0
		}
		return min(d, MaxRetryAfter), true
	}
	return 0, false
}

// RateLimit is what the X-RateLimit-* headers of one response reported.
// Fields the response omitted are -1 (Limit, Remaining) or zero (Reset).
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// ParseRateLimit reads X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset (unix seconds). ok is false when none were present.
func ParseRateLimit(h http.Header) (rl RateLimit, ok bool) {
	rl = RateLimit{Limit: -1, Remaining: -1}
	if n, err := strconv.Atoi(strings.TrimSpace(h.Get("X-RateLimit-Limit"))); err == nil {
		rl.Limit = n
		ok = true
	}
	if n, err := strconv.Atoi(strings.TrimSpace(h.Get("X-RateLimit-Remaining"))); err == nil && n >= 0 {
		rl.Remaining = n
		ok = true
	}
	if n, err := strconv.ParseInt(strings.TrimSpace(h.Get("X-RateLimit-Reset")), 10, 64); err == nil && n > 0 {
		rl.Reset = time.Unix(n, 0)
		ok = true
	}
	return rl, ok
}

// ErrorMessage extracts a human-readable message from an error response
// body. It looks at the JSON "error", "message" and "msg" fields in that
// order and falls back to "HTTP <code> <status text>".
func ErrorMessage(status int, body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"error", "message", "msg"} {
			if s, ok := payload[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("HTTP %d %s", status, http.StatusText(status))
}
