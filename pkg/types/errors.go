package types

import "errors"

// Predefined errors
var (
	// ErrNilEffect is returned when a nil effect is run
	ErrNilEffect = errors.New("gofx: nil effect")

	// ErrNilFactory is returned when a retry is given no factory
	ErrNilFactory = errors.New("gofx: nil effect factory")

	// ErrNoResult indicates an async source closed without delivering a result
	ErrNoResult = errors.New("gofx: async source closed without a result")

	// ErrTimeout indicates a deadline elapsed before the computation settled
	ErrTimeout = errors.New("gofx: operation timeout")
)

// RetryableError marks an error as retryable or permanent for predicates
// built on IsRetryable.
type RetryableError struct {
	// Err is the underlying error
	Err error

	// Retryable indicates whether the error is retryable
	Retryable bool
}

// Error implements the error interface
func (e *RetryableError) Error() string {
	if e.Err == nil {
		return "<nil>"
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Transient wraps err as retryable.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err, Retryable: true}
}

// Permanent wraps err as not retryable.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err, Retryable: false}
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}
	return false
}

// IsPermanent reports whether err was explicitly marked as not retryable.
func IsPermanent(err error) bool {
	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return !retryableErr.Retryable
	}
	return false
}
