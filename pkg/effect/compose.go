package effect

import "context"

// Map transforms the success value. Errors pass through unchanged.
func Map[Env, T, U any](e Effect[Env, T], f func(T) U) Effect[Env, U] {
	return func(ctx context.Context, env Env) (U, error) {
		value, err := e.Run(ctx, env)
		if err != nil {
			var zero U
			return zero, err
		}
		return f(value), nil
	}
}

// TryMap transforms the success value with a function that may fail.
func TryMap[Env, T, U any](e Effect[Env, T], f func(T) (U, error)) Effect[Env, U] {
	return func(ctx context.Context, env Env) (U, error) {
		value, err := e.Run(ctx, env)
		if err != nil {
			var zero U
			return zero, err
		}
		return f(value)
	}
}

// AndThen runs e, then the effect f builds from its value. The second step
// never starts if e fails, and never before e has settled.
func AndThen[Env, T, U any](e Effect[Env, T], f func(T) Effect[Env, U]) Effect[Env, U] {
	return func(ctx context.Context, env Env) (U, error) {
		value, err := e.Run(ctx, env)
		if err != nil {
			var zero U
			return zero, err
		}
		return f(value).Run(ctx, env)
	}
}

// Tap calls f with the success value and passes the value on.
func Tap[Env, T any](e Effect[Env, T], f func(T)) Effect[Env, T] {
	return func(ctx context.Context, env Env) (T, error) {
		value, err := e.Run(ctx, env)
		if err == nil {
			f(value)
		}
		return value, err
	}
}

// Flatten runs an effect that produces an effect, then runs the result.
func Flatten[Env, T any](e Effect[Env, Effect[Env, T]]) Effect[Env, T] {
	return AndThen(e, func(inner Effect[Env, T]) Effect[Env, T] { return inner })
}
