// Package apiclient provides a generic resilient HTTP client used by the
// discovery source integrations.
//
// Each Client owns one pooled transport and one rate limiter, so the request
// streams of independent sources never throttle each other. Requests are
// retried with exponential backoff on 429, 5xx, and transport failures; other
// 4xx responses fail immediately with *ClientError.
//
// # Error taxonomy
//
//   - *ClientError: terminal 4xx (except 429), never retried
//   - *ServerError: 5xx or 429, retried, surfaced only via ErrRetriesExhausted
//   - ErrRetriesExhausted: wraps the last error once the retry budget is spent
//
// The package has no knowledge of any specific upstream API; source adapters
// layer authentication and payload handling on top of it.
package apiclient
