package parallel

import (
	"log/slog"
	"runtime"
	"time"
)

// Defaults matching the workshop's sampling parameters.
const (
	DefaultMaxRetries  = 3
	DefaultBackoffBase = 500 * time.Millisecond
	DefaultJitter      = 250 * time.Millisecond
)

type config struct {
	maxWorkers  int
	maxRetries  int
	backoffBase time.Duration
	jitter      time.Duration
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		maxWorkers:  runtime.NumCPU(),
		maxRetries:  DefaultMaxRetries,
		backoffBase: DefaultBackoffBase,
		jitter:      DefaultJitter,
		logger:      slog.Default(),
	}
}

// Option configures a ChatN run.
type Option func(*config)

// WithMaxWorkers bounds concurrency. Values < 1 fall back to NumCPU.
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.maxWorkers = n
		}
	}
}

// WithMaxRetries sets the per-sample attempt limit. Values < 1 mean a
// single attempt.
func WithMaxRetries(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.maxRetries = n
	}
}

// WithBackoffBase sets the first retry delay. Delays double each attempt.
func WithBackoffBase(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.backoffBase = d
		}
	}
}

// WithJitter sets the maximum random delay added to each backoff.
func WithJitter(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.jitter = d
		}
	}
}

// WithLogger sets the structured logger used for per-sample logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
