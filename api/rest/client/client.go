// Package client implements an HTTP client for the calculator REST API using Fiber.
package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"yqhp/calc-engine/api/rest"
)

// Config holds the configuration for the HTTP client.
type Config struct {
	// BaseURL is the server base URL (e.g., "http://localhost:8080")
	BaseURL string

	// RequestTimeout is the timeout for HTTP requests.
	RequestTimeout time.Duration
}

// DefaultConfig returns a default client configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "http://localhost:8080",
		RequestTimeout: 10 * time.Second,
	}
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Kind       string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d (%s): %s", e.StatusCode, e.Kind, e.Message)
}

// Client talks to the calculator REST API.
type Client struct {
	config *Config
	agent  *fiber.Client
}

// New creates a new Client. A nil config uses DefaultConfig.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Client{
		config: cfg,
		agent: &fiber.Client{
			JSONEncoder: sonic.Marshal,
			JSONDecoder: sonic.Unmarshal,
		},
	}
}

// Evaluate evaluates expr on the server.
func (c *Client) Evaluate(ctx context.Context, expr string) (*rest.EvaluateResponse, error) {
	var resp rest.EvaluateResponse
	if err := c.post(ctx, "/api/v1/evaluate", rest.ExpressionRequest{Expression: expr}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health checks the server health.
func (c *Client) Health(ctx context.Context) (*rest.HealthResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := c.agent.Get(c.url("/health"))
	req.Timeout(c.timeout(ctx))

	statusCode, body, errs := req.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("health check failed: %w", errs[0])
	}
	if statusCode != fiber.StatusOK {
		return nil, decodeError(statusCode, body)
	}

	var resp rest.HealthResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req := c.agent.Post(c.url(path))
	req.Timeout(c.timeout(ctx))
	req.Body(body)
	req.Set("Content-Type", "application/json")

	statusCode, respBody, errs := req.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request to %s failed: %w", path, errs[0])
	}
	if statusCode < 200 || statusCode >= 300 {
		return decodeError(statusCode, respBody)
	}

	if err := sonic.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.config.BaseURL, "/") + path
}

// timeout returns the configured timeout, shortened to the context deadline.
func (c *Client) timeout(ctx context.Context) time.Duration {
	timeout := c.config.RequestTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}

func decodeError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode}

	var resp rest.ErrorResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		apiErr.Kind = fmt.Sprintf("error_%d", statusCode)
		apiErr.Message = string(body)
		return apiErr
	}

	apiErr.Kind = resp.Error
	apiErr.Message = resp.Message
	apiErr.RequestID = resp.ID
	return apiErr
}
