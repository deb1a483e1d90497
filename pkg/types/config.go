package types

import "time"

// DefaultBaseURL is the SciX API root.
const DefaultBaseURL = "https://api.adsabs.harvard.edu/v1"

// DefaultTimeout bounds a single HTTP request.
const DefaultTimeout = 30 * time.Second

// DefaultRequestsPerSecond is the local token budget capacity and refill rate.
const DefaultRequestsPerSecond = 5

// ClientConfig holds the settings read once at startup and used to build a client.
type ClientConfig struct {
	// Token is the SciX API bearer token. Empty means unauthenticated;
	// every request then fails with an auth-required error.
	Token string `json:"-" yaml:"-"`

	// BaseURL is the API root (default DefaultBaseURL).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent overrides the default "scix-client/<version>" header.
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty" mapstructure:"user_agent"`

	RateLimit RateLimitConfig `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`

	// TokenSource names where Token came from (flag, env, config, secrets, keyring).
	TokenSource string `json:"token_source,omitempty" yaml:"token_source,omitempty" mapstructure:"-"`
}

// RateLimitConfig sizes the local token bucket.
type RateLimitConfig struct {
	// PerSecond is both the bucket capacity and its refill rate.
	PerSecond int `json:"per_second" yaml:"per_second" mapstructure:"per_second"`
}
