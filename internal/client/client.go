package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cheerioskun/reqninja/internal/models"
	"github.com/cheerioskun/reqninja/internal/utils"
)

// Messages shown to the user when the endpoint gives nothing better
const (
	MsgRequestFailed   = "API request failed"
	MsgInvalidResponse = "API returned an invalid response"
)

// RequestError is returned when the POST fails in transport or comes back non-2xx
type RequestError struct {
	StatusCode int    // 0 when no response was received
	Message    string // user-facing text
	Err        error  // underlying cause, if any
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Client posts payloads to the remote endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *utils.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP client timeout; zero means none
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger routes request logging to logger
func WithLogger(logger *utils.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for endpoint
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = utils.GetLogger()
	}
	return c
}

// Endpoint returns the URL requests are sent to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts body unmodified as application/json and decodes the reply
func (c *Client) Send(ctx context.Context, body string) (models.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader([]byte(body)))
	if err != nil {
		return nil, &RequestError{Message: MsgRequestFailed, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("POST %s (%d bytes)", c.endpoint, len(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request to %s failed: %v", c.endpoint, err)
		return nil, &RequestError{Message: MsgRequestFailed, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("failed to read response body: %v", err)
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: MsgRequestFailed, Err: err}
	}

	c.logger.Debug("response %s: %s", resp.Status, truncate(string(respBody), 256))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(respBody),
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	decoded, err := models.DecodeResponse(respBody)
	if err != nil {
		c.logger.Warning("undecodable response from %s: %v", c.endpoint, err)
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: MsgInvalidResponse, Err: err}
	}

	return decoded, nil
}

// serverMessage extracts the endpoint's "error" text, falling back to a generic message
func serverMessage(body []byte) string {
	var payload struct {
		Error interface{} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return MsgRequestFailed
	}
	if msg, ok := payload.Error.(string); ok && msg != "" {
		return msg
	}
	return MsgRequestFailed
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n > 3 {
		return s[:n-3] + "..."
	}
	return s[:n]
}
