package cohere

import (
	"net/http"
	"os"
	"time"
)

// DefaultBaseURL is the production Chat API endpoint.
const DefaultBaseURL = "https://api.cohere.com"

// DefaultTimeout bounds a single chat request.
const DefaultTimeout = 2 * time.Minute

// Config holds client configuration.
type Config struct {
	// APIKey authenticates requests. Defaults to the CO_API_KEY
	// environment variable.
	APIKey string

	// BaseURL is the API root. Defaults to DefaultBaseURL. Override for
	// test servers or proxies.
	BaseURL string

	// Timeout is the per-request deadline applied on top of the caller's
	// context. 0 uses DefaultTimeout; negative disables it.
	Timeout time.Duration

	// HTTPClient is the underlying transport. Defaults to a dedicated
	// http.Client.
	HTTPClient *http.Client

	// UserAgent is sent with each request.
	UserAgent string
}

// DefaultConfig returns a Config populated from the environment.
func DefaultConfig() Config {
	return Config{
		APIKey:    os.Getenv("CO_API_KEY"),
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: "parlay/1.0",
	}
}

// WithDefaults fills zero-valued fields with defaults.
func (c Config) WithDefaults() Config {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("CO_API_KEY")
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	if c.UserAgent == "" {
		c.UserAgent = "parlay/1.0"
	}
	return c
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the API key explicitly, bypassing CO_API_KEY.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.cfg.APIKey = key }
}

// WithBaseURL overrides the API root, e.g. for an httptest server.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.cfg.BaseURL = url }
}

// WithTimeout sets the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.cfg.Timeout = d }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.cfg.HTTPClient = hc }
}
