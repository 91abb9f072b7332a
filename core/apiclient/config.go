package apiclient

import "time"

// Config holds configuration for a resilient API client.
type Config struct {
	// BaseURL is the root URL all request paths are resolved against.
	BaseURL string
	// Timeout bounds a single request attempt. Defaults to 30s.
	Timeout time.Duration
	// MaxRetries is the total number of attempts for retryable failures.
	// Defaults to 3.
	MaxRetries int
	// RateLimit is the maximum number of requests per second issued by this
	// client instance. Zero disables rate limiting. The env config layer
	// defaults this to 10 for the discovery sources.
	RateLimit float64
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
	// BackoffUnit scales the exponential retry backoff (2^attempt units).
	// Defaults to one second; tests shrink it.
	BackoffUnit time.Duration
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RateLimit < 0 {
		c.RateLimit = 0
	}
	if c.BackoffUnit <= 0 {
		c.BackoffUnit = time.Second
	}
	return c
}
