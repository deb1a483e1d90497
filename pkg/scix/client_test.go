// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scix

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scix/pkg/ratelimit"
	"github.com/pdiddy/scix/pkg/types"
)

// newTestClient points a client at an httptest server and counts requests.
func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(ts.Close)

	c, err := New(types.ClientConfig{Token: "test-token", BaseURL: ts.URL},
		WithHTTPClient(ts.Client()),
		WithLimiter(ratelimit.New(1000)),
	)
	require.NoError(t, err)
	return c, &calls
}

func TestExecute_SetsHeaders(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "scix-client/"+Version, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{}`))
	})

	body, err := c.execute(context.Background(), getRequest("/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(body))
}

func TestExecute_NoTokenMakesNoCalls(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	lim := ratelimit.New(5)
	c, err := New(types.ClientConfig{BaseURL: ts.URL}, WithLimiter(lim))
	require.NoError(t, err)
	assert.False(t, c.HasToken())

	_, err = c.Search(context.Background(), "star", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.InDelta(t, 5.0, lim.Snapshot().Tokens, 1e-6, "no limiter token may be spent")
}

func TestExecute_StatusKinds(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		header     map[string]string
		body       string
		kind       Kind
		sentinel   error
		message    string
		retryAfter time.Duration
	}{
		{name: "not found", status: 404, body: `{"error":"no such library"}`, kind: KindNotFound, sentinel: ErrNotFound},
		{name: "rate limited seconds", status: 429, header: map[string]string{"Retry-After": "7"}, kind: KindRateLimited, sentinel: ErrRateLimited, retryAfter: 7 * time.Second},
		{name: "rate limited no header", status: 429, kind: KindRateLimited, sentinel: ErrRateLimited},
		{name: "unauthorized is api", status: 401, body: `{"error":"Unauthorized"}`, kind: KindAPI, sentinel: ErrAPI, message: "Unauthorized"},
		{name: "forbidden is api", status: 403, body: `{"message":"Forbidden"}`, kind: KindAPI, sentinel: ErrAPI, message: "Forbidden"},
		{name: "bad request", status: 400, body: `{"message":"bad sort"}`, kind: KindAPI, sentinel: ErrAPI, message: "bad sort"},
		{name: "server error", status: 500, body: `oops`, kind: KindAPI, sentinel: ErrAPI, message: "HTTP 500 Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, calls := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				for k, v := range tt.header {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.execute(context.Background(), getRequest("/x", nil))
			require.Error(t, err)

			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.status, e.Status)
			assert.ErrorIs(t, err, tt.sentinel)
			if tt.message != "" {
				assert.Equal(t, tt.message, e.Message)
			}
			assert.Equal(t, tt.retryAfter, e.RetryAfter)
			assert.Equal(t, int32(1), atomic.LoadInt32(calls), "no retry")
		})
	}
}

func TestExecute_RateLimitedUpdatesLimiter(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.execute(context.Background(), getRequest("/x", nil))
	require.ErrorIs(t, err, ErrRateLimited)

	s := c.Limiter().Snapshot()
	assert.Equal(t, -1, s.ServerRemaining)
	assert.WithinDuration(t, time.Now().Add(30*time.Second), s.RetryUntil, 2*time.Second)
}

func TestExecute_RetryAfterNotExtendedToQuotaReset(t *testing.T) {
	now := time.Unix(1_767_366_000, 0)
	var mu sync.Mutex
	var slept time.Duration
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	sleep := func(_ context.Context, d time.Duration) error {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
		slept += d
		return nil
	}

	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "5000")
		w.Header().Set("X-RateLimit-Remaining", "4990")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(clock().Add(24*time.Hour).Unix(), 10))
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "30")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	lim := ratelimit.New(1000, ratelimit.WithClock(clock), ratelimit.WithSleep(sleep))
	c, err := New(types.ClientConfig{Token: "t", BaseURL: ts.URL}, WithHTTPClient(ts.Client()), WithLimiter(lim))
	require.NoError(t, err)

	_, err = c.execute(context.Background(), getRequest("/x", nil))
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindRateLimited, e.Kind)
	assert.Equal(t, 30*time.Second, e.RetryAfter)

	_, err = c.execute(context.Background(), getRequest("/x", nil))
	require.NoError(t, err)

	assert.Equal(t, 4990, lim.Snapshot().ServerRemaining)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 30*time.Second, slept, "wait follows Retry-After, not the daily reset")
}

func TestExecute_ObservesRateLimitHeaders(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "5000")
		w.Header().Set("X-RateLimit-Remaining", "4321")
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := c.execute(context.Background(), getRequest("/x", nil))
	require.ErrorIs(t, err, ErrAPI)

	s := c.Limiter().Snapshot()
	assert.Equal(t, 5000, s.ServerLimit)
	assert.Equal(t, 4321, s.ServerRemaining)
}

func TestExecute_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	c, err := New(types.ClientConfig{Token: "t", BaseURL: url})
	require.NoError(t, err)

	_, err = c.execute(context.Background(), getRequest("/x", nil))
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestNew_Config(t *testing.T) {
	_, err := New(types.ClientConfig{BaseURL: "not a url"})
	assert.ErrorIs(t, err, ErrConfig)

	_, err = New(types.ClientConfig{BaseURL: "ftp://example.org"})
	assert.ErrorIs(t, err, ErrConfig)

	_, err = New(types.ClientConfig{RateLimit: types.RateLimitConfig{PerSecond: -1}})
	assert.ErrorIs(t, err, ErrConfig)

	c, err := New(types.ClientConfig{})
	require.NoError(t, err)
	assert.Equal(t, types.DefaultBaseURL, c.baseURL)
	assert.Equal(t, types.DefaultRequestsPerSecond, c.Limiter().Snapshot().Capacity)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "API error (HTTP 503): down", (&Error{Kind: KindAPI, Status: 503, Message: "down"}).Error())
	assert.Equal(t, "rate limited, retry after 5s", (&Error{Kind: KindRateLimited, RetryAfter: 5 * time.Second}).Error())
	assert.Contains(t, (&Error{Kind: KindAuthRequired}).Error(), "SCIX_API_TOKEN")
	assert.Equal(t, "invalid query: empty", InvalidQuery("empty").Error())
	assert.Equal(t, KindParse, KindOf(&Error{Kind: KindParse}))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, "not_found", KindNotFound.String())
}

func TestErrorIsDoesNotMatchOtherKinds(t *testing.T) {
	err := &Error{Kind: KindNotFound, Status: 404}
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrRateLimited)
	assert.NotErrorIs(t, err, ErrAPI)
}
