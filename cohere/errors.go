package cohere

import (
	"errors"
	"fmt"
)

// Sentinel errors for Chat API operations.
var (
	// ErrMissingAPIKey indicates no API key was configured.
	ErrMissingAPIKey = errors.New("missing API key (set CO_API_KEY)")

	// ErrUnauthorized indicates the API key was rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the request was rate limited.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnavailable indicates the API is temporarily unavailable.
	ErrUnavailable = errors.New("service unavailable")

	// ErrInvalidRequest indicates the request is malformed.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrContextTooLong indicates the input exceeds the model's context window.
	ErrContextTooLong = errors.New("context exceeds maximum length")

	// ErrTimeout indicates the request timed out.
	ErrTimeout = errors.New("request timed out")
)

// Error wraps Chat API errors with context.
type Error struct {
	Op         string // Operation that failed ("chat")
	StatusCode int    // HTTP status, 0 for transport errors
	Err        error  // Underlying error
	Retryable  bool   // Whether the error is likely transient
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("cohere %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("cohere %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new API error.
func NewError(op string, statusCode int, err error, retryable bool) *Error {
	return &Error{
		Op:         op,
		StatusCode: statusCode,
		Err:        err,
		Retryable:  retryable,
	}
}

// IsRetryable checks if an error is likely transient and worth retrying.
func IsRetryable(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Retryable
	}

	// Check for known retryable sentinel errors
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrTimeout)
}

// IsAuthError checks if an error is authentication-related.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrMissingAPIKey)
}
