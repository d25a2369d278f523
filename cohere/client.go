package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Chatter is the interface higher layers depend on. *Client implements it
// against the live API; MockClient implements it for tests.
type Chatter interface {
	// Chat sends a completion request and returns the full response.
	// The context controls cancellation and timeouts.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// Client calls the Cohere Chat API over HTTPS.
// Safe for concurrent use.
type Client struct {
	cfg    Config
	logger *slog.Logger
}

// NewClient creates a client from options. The API key defaults to the
// CO_API_KEY environment variable; returns ErrMissingAPIKey if neither the
// variable nor WithAPIKey supplies one.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		cfg:    DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cfg = c.cfg.WithDefaults()
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewClientWithConfig creates a client from a Config.
func NewClientWithConfig(cfg Config) (*Client, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg, logger: slog.Default()}, nil
}

// WithLogger sets the structured logger used for request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// apiError is the JSON error body returned by the API.
type apiError struct {
	Message string `json:"message"`
}

// Chat implements Chatter against POST /v2/chat.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Model == "" {
		return nil, NewError("chat", 0, fmt.Errorf("%w: model is required", ErrInvalidRequest), false)
	}
	if len(req.Messages) == 0 {
		return nil, NewError("chat", 0, fmt.Errorf("%w: messages must be non-empty", ErrInvalidRequest), false)
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, NewError("chat", 0, err, false)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/v2/chat"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, NewError("chat", 0, err, false)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.cfg.UserAgent)

	c.logger.Debug("chat request",
		"model", req.Model,
		"messages", len(req.Messages),
		"tools", len(req.Tools))

	httpResp, err := c.cfg.HTTPClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, NewError("chat", 0, ErrTimeout, true)
		}
		if errors.Is(err, context.Canceled) {
			return nil, NewError("chat", 0, err, false)
		}
		// Transport failures (DNS, refused connections) are transient.
		return nil, NewError("chat", 0, err, true)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, NewError("chat", httpResp.StatusCode, err, true)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, c.statusError(httpResp.StatusCode, respBody)
	}

	var resp ChatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, NewError("chat", httpResp.StatusCode, fmt.Errorf("decoding response: %w", err), false)
	}

	c.logger.Debug("chat response",
		"id", resp.ID,
		"finish_reason", resp.FinishReason,
		"input_tokens", resp.Usage.Tokens.InputTokens,
		"output_tokens", resp.Usage.Tokens.OutputTokens)

	return &resp, nil
}

// statusError maps a non-200 response to a typed error.
func (c *Client) statusError(status int, body []byte) error {
	var apiErr apiError
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		msg = apiErr.Message
	}

	wrap := func(sentinel error, retryable bool) error {
		return NewError("chat", status, fmt.Errorf("%w: %s", sentinel, msg), retryable)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return wrap(ErrUnauthorized, false)
	case status == http.StatusTooManyRequests:
		return wrap(ErrRateLimited, true)
	case status == http.StatusBadRequest:
		return wrap(ErrInvalidRequest, false)
	case status == http.StatusUnprocessableEntity:
		// The API reports over-length prompts as unprocessable.
		return wrap(ErrContextTooLong, false)
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return wrap(ErrTimeout, true)
	case status >= 500:
		return wrap(ErrUnavailable, true)
	default:
		return NewError("chat", status, errors.New(msg), false)
	}
}
