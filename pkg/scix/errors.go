// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scix

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a client failure. Every error returned by this package is
// a *Error carrying exactly one Kind.
type Kind int

const (
	// KindNetwork is a transport failure: DNS, connection, TLS, timeout.
	KindNetwork Kind = iota + 1
	// KindAuthRequired means no API token is configured. A token the server
	// rejects (expired or revoked) is reported as KindAPI with Status 401.
	KindAuthRequired
	// KindAPI is any non-2xx response not covered by a more specific kind.
	KindAPI
	// KindRateLimited is an HTTP 429.
	KindRateLimited
	// KindNotFound is an HTTP 404 or an empty single-record lookup.
	KindNotFound
	// KindParse means a 2xx body did not have the expected shape.
	KindParse
	// KindInvalidQuery is a query rejected before sending.
	KindInvalidQuery
	// KindConfig is a client construction problem.
	KindConfig
)

var kindNames = map[Kind]string{
	KindNetwork:      "network",
	KindAuthRequired: "auth_required",
	KindAPI:          "api",
	KindRateLimited:  "rate_limited",
	KindNotFound:     "not_found",
	KindParse:        "parse",
	KindInvalidQuery: "invalid_query",
	KindConfig:       "config",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the single error type of the client.
type Error struct {
	Kind Kind

	// Status is the HTTP status for KindAPI, KindNotFound and KindRateLimited.
	Status int

	Message string

	// RetryAfter is the server's Retry-After for KindRateLimited, zero if absent.
	RetryAfter time.Duration

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindAuthRequired:
		return "authentication required: set SCIX_API_TOKEN (or ADS_API_TOKEN) or run `scix auth set`"
	case KindAPI:
		return fmt.Sprintf("API error (HTTP %d): %s", e.Status, e.Message)
	case KindRateLimited:
		if e.RetryAfter > 0 {
			return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
		}
		return "rate limited"
	case KindNetwork:
		return "HTTP request failed: " + e.detail()
	case KindParse:
		return "failed to parse response: " + e.detail()
	case KindInvalidQuery:
		return "invalid query: " + e.detail()
	case KindNotFound:
		return "not found: " + e.detail()
	case KindConfig:
		return "configuration error: " + e.detail()
	}
	return e.detail()
}

func (e *Error) detail() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so errors.Is(err, ErrNotFound)
// works for every not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Status == 0 && t.Message == "" && t.Err == nil
}

// Sentinels for errors.Is.
var (
	ErrNetwork      = &Error{Kind: KindNetwork}
	ErrAuthRequired = &Error{Kind: KindAuthRequired}
	ErrAPI          = &Error{Kind: KindAPI}
	ErrRateLimited  = &Error{Kind: KindRateLimited}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrParse        = &Error{Kind: KindParse}
	ErrInvalidQuery = &Error{Kind: KindInvalidQuery}
	ErrConfig       = &Error{Kind: KindConfig}
)

// KindOf returns the Kind of err, or zero when err is not from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// InvalidQuery builds a KindInvalidQuery error.
func InvalidQuery(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidQuery, Message: fmt.Sprintf(format, args...)}
}
