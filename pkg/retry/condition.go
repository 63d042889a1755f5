package retry

import (
	"context"
	"errors"

	"github.com/jzx17/gofx/pkg/types"
)

// DefaultRetryCondition retries every error except context errors and
// errors marked with types.Permanent.
func DefaultRetryCondition(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return !types.IsPermanent(err)
}

// RetryableOnly retries only errors marked with types.Transient.
func RetryableOnly(err error) bool {
	return types.IsRetryable(err)
}

// Not inverts a predicate
func Not(p Predicate) Predicate {
	return func(err error) bool {
		return !p(err)
	}
}

// Is retries errors matching any of targets under errors.Is
func Is(targets ...error) Predicate {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}
