package resilience

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jzx17/gofx/pkg/effect"
	"github.com/jzx17/gofx/pkg/types"
)

// TimeoutError reports how a timed effect failed: either its deadline
// elapsed first (Inner is nil) or it failed on its own with Inner.
type TimeoutError struct {
	Duration time.Duration
	Inner    error
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	if e.Inner == nil {
		return fmt.Sprintf("gofx: timed out after %s", e.Duration)
	}
	return e.Inner.Error()
}

// Unwrap returns the inner error, or types.ErrTimeout when the deadline won
func (e *TimeoutError) Unwrap() error {
	if e.Inner == nil {
		return types.ErrTimeout
	}
	return e.Inner
}

// IsDeadline reports whether the deadline elapsed before the effect settled
func (e *TimeoutError) IsDeadline() bool {
	return e.Inner == nil
}

// WithTimeout races e against a timer of duration d. When the timer wins the
// effect's context is cancelled with types.ErrTimeout as the cause and the
// effect is abandoned; resources it holds are only released if it brackets
// them itself. A non-positive d times out without running e.
//
// Cancellation of the caller's context is returned as ctx.Err().
func WithTimeout[Env, T any](e effect.Effect[Env, T], d time.Duration, opts ...Option) effect.Effect[Env, T] {
	return func(ctx context.Context, env Env) (T, error) {
		var zero T
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		if d <= 0 {
			return zero, &TimeoutError{Duration: d}
		}

		o := newOptions(ctx, opts)
		timer := o.clock.NewTimer(d)
		defer timer.Stop()

		runCtx, cancel := context.WithCancelCause(ctx)
		defer cancel(nil)

		done := make(chan types.Result[T], 1)
		go func() {
			value, err := e.Run(runCtx, env)
			done <- types.Result[T]{Value: value, Error: err}
		}()

		select {
		case res := <-done:
			if res.Error != nil {
				return zero, &TimeoutError{Duration: d, Inner: res.Error}
			}
			return res.Value, nil
		case <-timer.C():
			cancel(types.ErrTimeout)
			o.logger.LogAttrs(ctx, slog.LevelDebug, "effect abandoned after timeout",
				slog.Duration("timeout", d))
			return zero, &TimeoutError{Duration: d}
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}
