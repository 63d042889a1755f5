package resilience

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jzx17/gofx/pkg/effect"
)

// Phase identifies a step of a bracket
type Phase uint8

const (
	// PhaseAcquire is the acquisition step
	PhaseAcquire Phase = iota
	// PhaseUse is the step that works with the resource
	PhaseUse
	// PhaseRelease is the release step
	PhaseRelease
)

// String returns the string representation of Phase
func (p Phase) String() string {
	switch p {
	case PhaseAcquire:
		return "acquire"
	case PhaseUse:
		return "use"
	case PhaseRelease:
		return "release"
	default:
		return fmt.Sprintf("Phase(%d)", p)
	}
}

// BracketError tags an error with the bracket phase that produced it.
type BracketError struct {
	Phase Phase
	Err   error
}

// Error implements the error interface
func (e *BracketError) Error() string {
	return fmt.Sprintf("gofx: bracket %s: %v", e.Phase, e.Err)
}

// Unwrap returns the underlying error
func (e *BracketError) Unwrap() error {
	return e.Err
}

// ReleaseFunc builds the effect that releases a resource.
type ReleaseFunc[Env, R any] func(resource R) effect.Effect[Env, struct{}]

// Closer releases resources by calling their Close method.
func Closer[Env any, R io.Closer]() ReleaseFunc[Env, R] {
	return func(resource R) effect.Effect[Env, struct{}] {
		return func(context.Context, Env) (struct{}, error) {
			return struct{}{}, resource.Close()
		}
	}
}

// Bracket acquires a resource, hands it to use and releases it exactly once
// afterwards, whether use succeeded, failed or panicked. Release is not run
// when acquire fails. Acquire and use errors are returned unchanged; release
// errors are logged and never returned.
func Bracket[Env, R, T any](
	acquire effect.Effect[Env, R],
	release ReleaseFunc[Env, R],
	use func(R) effect.Effect[Env, T],
	opts ...Option,
) effect.Effect[Env, T] {
	return func(ctx context.Context, env Env) (T, error) {
		o := newOptions(ctx, opts)
		resource, err := acquire.Run(ctx, env)
		if err != nil {
			var zero T
			return zero, err
		}
		value, useErr, releaseErr := useAndRelease(ctx, env, resource, release, use)
		if releaseErr != nil {
			o.logReleaseFailure(ctx, releaseErr, useErr)
		}
		return value, useErr
	}
}

// BracketFull is Bracket with every error tagged by its phase. A release
// failure is returned as PhaseRelease only when use succeeded; when use
// failed too, the PhaseUse error wins and the release failure is logged.
func BracketFull[Env, R, T any](
	acquire effect.Effect[Env, R],
	release ReleaseFunc[Env, R],
	use func(R) effect.Effect[Env, T],
	opts ...Option,
) effect.Effect[Env, T] {
	return func(ctx context.Context, env Env) (T, error) {
		var zero T
		o := newOptions(ctx, opts)
		resource, err := acquire.Run(ctx, env)
		if err != nil {
			return zero, &BracketError{Phase: PhaseAcquire, Err: err}
		}

		value, useErr, releaseErr := useAndRelease(ctx, env, resource, release, use)
		switch {
		case useErr != nil:
			if releaseErr != nil {
				o.logReleaseFailure(ctx, releaseErr, useErr)
			}
			return zero, &BracketError{Phase: PhaseUse, Err: useErr}
		case releaseErr != nil:
			return zero, &BracketError{Phase: PhaseRelease, Err: releaseErr}
		}
		return value, nil
	}
}

// useAndRelease runs use and then release from a deferred call, so release
// also runs when use panics. Release runs with a context that keeps the
// caller's values but not its cancellation.
func useAndRelease[Env, R, T any](
	ctx context.Context,
	env Env,
	resource R,
	release ReleaseFunc[Env, R],
	use func(R) effect.Effect[Env, T],
) (value T, useErr, releaseErr error) {
	defer func() {
		if release != nil {
			_, releaseErr = release(resource).Run(context.WithoutCancel(ctx), env)
		}
	}()
	value, useErr = use(resource).Run(ctx, env)
	return value, useErr, nil
}

func (o *options) logReleaseFailure(ctx context.Context, releaseErr, useErr error) {
	attrs := []slog.Attr{slog.Any("error", releaseErr)}
	if useErr != nil {
		attrs = append(attrs, slog.Any("use_error", useErr))
	}
	o.logger.LogAttrs(ctx, slog.LevelWarn, "bracket release failed", attrs...)
}
