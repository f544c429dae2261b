// Package api provides the JSON-over-HTTP client for the notelab backend.
// All typed services (github, wellness, notebook, agent, ...) are thin
// wrappers over this client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	appErrors "github.com/notelab/notelab-cli/internal/errors"
	"github.com/notelab/notelab-cli/internal/jsonutil"
)

// Default client tuning. Overridable through Options.
const (
	DefaultTimeout        = 30 * time.Second
	DefaultRequestsPerSec = 5.0
	DefaultBurst          = 10
	DefaultRetryAttempts  = 3
	DefaultRetryBackoff   = 500 * time.Millisecond
)

// maxErrorBodySize bounds how much of an error response body is read.
const maxErrorBodySize = 64 * 1024

// Options configures a Client.
type Options struct {
	// BaseURL is the backend root, e.g. "https://api.notelab.dev".
	BaseURL string

	// Token is the bearer token attached to every request. May be empty for
	// unauthenticated endpoints (login).
	Token string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSec and Burst tune the client-side rate limiter.
	RequestsPerSec float64
	Burst          int

	// RetryAttempts and RetryBackoff tune transient-failure retries.
	RetryAttempts int
	RetryBackoff  time.Duration

	// HTTPClient overrides the underlying transport (for testing).
	HTTPClient *http.Client

	// Logger for request-level debug logging. Nil disables logging.
	Logger *logrus.Logger
}

// Client is the JSON-over-HTTP backend client. Safe for concurrent use.
type Client struct {
	baseURL       *url.URL
	httpClient    *http.Client
	token         string
	limiter       *rate.Limiter
	logger        *logrus.Logger
	retryAttempts int
	retryBackoff  time.Duration
}

// New creates a backend client from the given options.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, appErrors.RequiredFieldError("base URL")
	}

	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || !base.IsAbs() {
		return nil, appErrors.FormatError("base URL", opts.BaseURL, "absolute http(s) URL")
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = DefaultRequestsPerSec
	}
	if opts.Burst <= 0 {
		opts.Burst = DefaultBurst
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = DefaultRetryAttempts
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = DefaultRetryBackoff
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return &Client{
		baseURL:       base,
		httpClient:    httpClient,
		token:         opts.Token,
		limiter:       rate.NewLimiter(rate.Limit(opts.RequestsPerSec), opts.Burst),
		logger:        logger,
		retryAttempts: opts.RetryAttempts,
		retryBackoff:  opts.RetryBackoff,
	}, nil
}

// SetToken replaces the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request. out may be nil.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do issues a request against the backend. body is JSON-marshaled when
// non-nil; the response is decoded into out when out is non-nil and the
// response has a body. Transient failures (transport errors, 429, 5xx) are
// retried with exponential backoff up to the configured attempt count.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		data, err := jsonutil.MarshalJSON(body)
		if err != nil {
			return err
		}
		payload = data
	}

	var lastErr error
	backoff := c.retryBackoff

	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return appErrors.WrapWithContext(err, "wait for rate limiter")
		}

		data, err := c.doOnce(ctx, method, path, payload)
		if err == nil {
			if out == nil || len(data) == 0 {
				return nil
			}
			if err := json.Unmarshal(data, out); err != nil {
				return appErrors.WrapWithContext(err, "decode response")
			}
			return nil
		}

		lastErr = err
		if !shouldRetry(err) || attempt == c.retryAttempts {
			return err
		}

		c.logger.WithFields(logrus.Fields{
			"method":  method,
			"path":    path,
			"attempt": attempt,
		}).WithError(err).Debug("Retrying backend request")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return lastErr
}

// doOnce performs a single HTTP round trip and returns the response body.
func (c *Client) doOnce(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.WrapWithContext(err, fmt.Sprintf("%s %s", method, path))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "read response body")
	}

	return data, nil
}

// newRequest builds a request with auth and content headers set.
func (c *Client) newRequest(ctx context.Context, method, path string, payload []byte) (*http.Request, error) {
	target, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "build request")
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}

// resolve joins path (which may carry a query string) onto the base URL.
func (c *Client) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", appErrors.FormatError("path", path, "URL path")
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

// decodeError converts a non-2xx response into *Error, pulling the
// backend's "error" field when present.
func decodeError(resp *http.Response) error {
	message := resp.Status

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err == nil && len(data) > 0 {
		var body struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &body) == nil {
			switch {
			case body.Error != "":
				message = body.Error
			case body.Message != "":
				message = body.Message
			}
		}
	}

	return &Error{Status: resp.StatusCode, Message: message}
}

// shouldRetry reports whether an error is transient: transport failures and
// retryable statuses qualify; cancellation and 4xx responses do not.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if apiErr, ok := AsError(err); ok {
		return isRetryable(apiErr.Status)
	}
	// Transport-level failure: the request never produced a response.
	return true
}
