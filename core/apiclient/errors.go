package apiclient

import (
	"errors"
	"fmt"
)

// ErrRetriesExhausted wraps the last observed error once every retry attempt
// has been consumed.
var ErrRetriesExhausted = errors.New("retries exhausted")

// ClientError represents a terminal 4xx response (other than 429).
// It is never retried.
type ClientError struct {
	StatusCode int
	Body       string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("client error: status %d: %s", e.StatusCode, e.Body)
}

// ServerError represents a retryable 5xx (or 429) response. It surfaces to
// callers only after the retry budget is exhausted.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: status %d", e.StatusCode)
}

// IsClientError reports whether err is (or wraps) a terminal 4xx error.
func IsClientError(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce)
}
