package effect

import "context"

// Ask succeeds with the whole environment.
func Ask[Env any]() Effect[Env, Env] {
	return func(_ context.Context, env Env) (Env, error) {
		return env, nil
	}
}

// Asks succeeds with a projection of the environment.
func Asks[Env, A any](f func(Env) A) Effect[Env, A] {
	return func(_ context.Context, env Env) (A, error) {
		return f(env), nil
	}
}

// Local runs e against the environment f derives from the caller's.
// The caller's environment value is left as it was.
func Local[Env, T any](f func(Env) Env, e Effect[Env, T]) Effect[Env, T] {
	return func(ctx context.Context, env Env) (T, error) {
		return e.Run(ctx, f(env))
	}
}

// Provide runs an effect written against a narrower environment by deriving
// that environment from the caller's.
func Provide[Outer, Inner, T any](f func(Outer) Inner, e Effect[Inner, T]) Effect[Outer, T] {
	return func(ctx context.Context, env Outer) (T, error) {
		return e.Run(ctx, f(env))
	}
}
