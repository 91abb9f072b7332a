package apiclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Client issues HTTP requests against one base URL with connection pooling,
// per-instance rate limiting, and automatic retry with exponential backoff.
// It carries no knowledge of any specific upstream API.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	mu          sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

// RequestOptions carries the optional parts of a request.
type RequestOptions struct {
	// Headers are set on the request verbatim.
	Headers map[string]string
	// Query is appended to the request URL.
	Query url.Values
	// Form, when set, is sent urlencoded as the request body.
	Form url.Values
	// JSON, when set, is marshalled and sent as the request body.
	// Form takes precedence when both are set.
	JSON any
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// New creates a resilient client for the given base URL.
func New(cfg Config, logger *zap.Logger) *Client {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	// Pooled transport with strict timeouts, small keep-alive pool.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   5,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   cfg.Timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
	}
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	var minInterval time.Duration
	if cfg.RateLimit > 0 {
		minInterval = time.Duration(float64(time.Second) / cfg.RateLimit)
	}

	return &Client{
		cfg:     cfg,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		logger:      logger,
		minInterval: minInterval,
	}
}

// BaseURL returns the configured base URL (trailing slash stripped).
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request with retries.
func (c *Client) Get(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, opts)
}

// Post performs a POST request with retries.
func (c *Client) Post(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, opts)
}

// Do performs an HTTP request with rate limiting and retry.
//
// Behavior per attempt: 2xx returns; 429 backs off and retries without
// consuming the terminal client-error exit; other 4xx fails immediately with
// *ClientError; 5xx and transport errors back off and retry. Once MaxRetries
// attempts are spent the last observed error is returned wrapped in
// ErrRetriesExhausted.
func (c *Client) Do(ctx context.Context, method, path string, opts *RequestOptions) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		lastAttempt := attempt == c.cfg.MaxRetries-1

		if err := c.waitForSlot(ctx); err != nil {
			return nil, err
		}

		c.logger.Debug("request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
		)

		resp, err := c.attempt(ctx, method, path, opts)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("transport error, retrying",
				zap.String("path", path), zap.Error(err))
			lastErr = err
			if !lastAttempt {
				if err := c.backoff(ctx, attempt); err != nil {
					return nil, err
				}
			}
			continue
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp, nil
		case resp.StatusCode == http.StatusTooManyRequests:
			c.logger.Warn("rate limited, backing off", zap.String("path", path))
			lastErr = &ServerError{StatusCode: resp.StatusCode}
			if !lastAttempt {
				if err := c.backoff(ctx, attempt); err != nil {
					return nil, err
				}
			}
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return nil, &ClientError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
		default:
			c.logger.Warn("server error, retrying",
				zap.String("path", path), zap.Int("status", resp.StatusCode))
			lastErr = &ServerError{StatusCode: resp.StatusCode}
			if !lastAttempt {
				if err := c.backoff(ctx, attempt); err != nil {
					return nil, err
				}
			}
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, c.cfg.MaxRetries, lastErr)
}

// Close releases the idle connection pool. Safe to call even if the client
// never issued a request.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// attempt performs a single request and drains the body.
func (c *Client) attempt(ctx context.Context, method, path string, opts *RequestOptions) (*Response, error) {
	fullURL := c.baseURL + "/" + strings.TrimLeft(path, "/")

	var body io.Reader
	contentType := ""
	if opts != nil {
		switch {
		case opts.Form != nil:
			body = strings.NewReader(opts.Form.Encode())
			contentType = "application/x-www-form-urlencoded"
		case opts.JSON != nil:
			encoded, err := json.Marshal(opts.JSON)
			if err != nil {
				return nil, fmt.Errorf("failed to encode request body: %w", err)
			}
			body = bytes.NewReader(encoded)
			contentType = "application/json"
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if opts != nil {
		for k, v := range opts.Headers {
			req.Header.Set(k, v)
		}
		if opts.Query != nil {
			req.URL.RawQuery = opts.Query.Encode()
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// waitForSlot blocks until at least 1/RateLimit has elapsed since the last
// request from this client instance.
func (c *Client) waitForSlot(ctx context.Context) error {
	if c.minInterval <= 0 {
		return nil
	}

	c.mu.Lock()
	wait := c.minInterval - time.Since(c.lastRequest)
	if wait < 0 {
		wait = 0
	}
	c.lastRequest = time.Now().Add(wait)
	c.mu.Unlock()

	if wait == 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

// backoff sleeps 2^attempt backoff units, honoring cancellation.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	delay := time.Duration(1<<uint(attempt)) * c.cfg.BackoffUnit
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
