// Package effect provides Effect, a lazy computation that reads an
// environment and eventually produces a value or an error.
//
// An Effect does nothing until it is run. Running it is a pure function of
// the description and the environment passed to Run, plus whatever side
// effects its steps perform; the same Effect may be run any number of times.
//
// Composition:
//
//	AndThen  - sequential, dependent; stops at the first error
//	Map      - transforms the success value
//	MapErr   - transforms the error
//	Zip2..4  - runs independent effects concurrently on one environment
//	ZipAll   - Zip for a homogeneous slice of effects
//	Ask      - exposes the environment; Asks projects it; Local replaces it
//
// Since Effect is a function type, any func(context.Context, Env) (T, error)
// converts to it directly.
package effect

import (
	"context"

	"github.com/jzx17/gofx/pkg/combine"
	"github.com/jzx17/gofx/pkg/errctx"
	"github.com/jzx17/gofx/pkg/types"
	"github.com/jzx17/gofx/pkg/validation"
)

// Effect is a deferred computation over an environment of type Env.
type Effect[Env, T any] func(ctx context.Context, env Env) (T, error)

// AsyncFunc starts a computation and returns the channel its single result
// will be delivered on.
type AsyncFunc[Env, T any] func(ctx context.Context, env Env) <-chan types.Result[T]

// Pure always succeeds with value and ignores the environment.
func Pure[Env, T any](value T) Effect[Env, T] {
	return func(context.Context, Env) (T, error) {
		return value, nil
	}
}

// Fail always fails with err.
func Fail[Env, T any](err error) Effect[Env, T] {
	return func(context.Context, Env) (T, error) {
		var zero T
		return zero, err
	}
}

// FromFunc lifts a synchronous function of the environment.
func FromFunc[Env, T any](fn func(env Env) (T, error)) Effect[Env, T] {
	return func(_ context.Context, env Env) (T, error) {
		return fn(env)
	}
}

// FromResult lifts an already computed (value, error) pair.
func FromResult[Env, T any](value T, err error) Effect[Env, T] {
	return func(context.Context, Env) (T, error) {
		return value, err
	}
}

// FromAsync lifts an asynchronous computation. Running the effect starts fn
// and waits for its result or for ctx to be done, whichever comes first. A
// channel that is nil or closed without a value yields types.ErrNoResult.
func FromAsync[Env, T any](fn AsyncFunc[Env, T]) Effect[Env, T] {
	return func(ctx context.Context, env Env) (T, error) {
		var zero T
		ch := fn(ctx, env)
		if ch == nil {
			return zero, types.ErrNoResult
		}
		select {
		case res, ok := <-ch:
			if !ok {
				return zero, types.ErrNoResult
			}
			return res.Value, res.Error
		case <-ctx.Done():
			// a result that is already waiting still wins
			select {
			case res, ok := <-ch:
				if ok {
					return res.Value, res.Error
				}
			default:
			}
			return zero, ctx.Err()
		}
	}
}

// FromValidation lifts a validation outcome, using its failure as the error.
func FromValidation[Env, T any, E interface {
	combine.Combinable[E]
	error
}](v validation.Validation[T, E]) Effect[Env, T] {
	value, err := validation.IntoResult(v)
	return FromResult[Env](value, err)
}

// Run executes the effect against env and blocks until it settles.
func (e Effect[Env, T]) Run(ctx context.Context, env Env) (T, error) {
	if e == nil {
		var zero T
		return zero, types.ErrNilEffect
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return e(ctx, env)
}

// RunAsync executes the effect on a new goroutine. The returned channel
// delivers exactly one result and is then closed. Duration is measured with
// the clock carried by ctx.
func (e Effect[Env, T]) RunAsync(ctx context.Context, env Env) <-chan types.Result[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	out := make(chan types.Result[T], 1)
	go func() {
		defer close(out)
		clock := types.ClockFromContext(ctx)
		start := clock.Now()
		value, err := e.Run(ctx, env)
		out <- types.Result[T]{Value: value, Error: err, Duration: clock.Since(start)}
	}()
	return out
}

// MapErr transforms the error of a failed run. Successes pass through.
func (e Effect[Env, T]) MapErr(f func(error) error) Effect[Env, T] {
	return func(ctx context.Context, env Env) (T, error) {
		value, err := e.Run(ctx, env)
		if err != nil {
			return value, f(err)
		}
		return value, nil
	}
}

// Context wraps a failure in a new errctx.ContextError with msg as its trail.
func (e Effect[Env, T]) Context(msg string) Effect[Env, T] {
	return e.MapErr(func(err error) error {
		return errctx.Wrap(err, msg)
	})
}

// ContextChain appends msg to the trail of a failure that is already an
// errctx.ContextError, and starts a trail otherwise.
func (e Effect[Env, T]) ContextChain(msg string) Effect[Env, T] {
	return e.MapErr(func(err error) error {
		return errctx.Chain(err, msg)
	})
}
