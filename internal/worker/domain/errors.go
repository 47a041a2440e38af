package domain

import "errors"

var (
	// ErrJobNotFound is returned when the job an event references no longer exists
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidEvent is returned when an event body is malformed
	ErrInvalidEvent = errors.New("invalid event")
)

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
