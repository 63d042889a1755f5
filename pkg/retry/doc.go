// Package retry provides retry policies and an executor that interprets them
// against effects.
//
// Key Features:
//
// 1. Pure, serializable policies:
//   - Constant: the same delay after every failure
//   - Linear: base delay multiplied by the attempt number
//   - Exponential: base delay doubled after every failure
//   - Fibonacci: base delay multiplied by the Fibonacci sequence
//
// 2. Policy builders:
//   - WithMaxRetries: total attempts are capped at n+1
//   - WithMaxDelay: computed delays are clamped to a ceiling
//   - WithJitter: the clamped delay is scaled by a factor drawn from [1-j, 1+j]
//
// 3. Executor:
//   - A factory builds a fresh effect for every attempt
//   - Sleeps use the injected clock and stop when the context is done
//   - Predicates stop retrying on errors the caller deems permanent
//   - Hooks observe every retry before its sleep
//   - Outcomes carry attempt counts and elapsed time
//
// Basic usage example:
//
//	policy := retry.Exponential(100 * time.Millisecond).
//		WithMaxRetries(3).
//		WithMaxDelay(2 * time.Second).
//		WithJitter(0.2)
//
//	fetch := retry.Retry(func() effect.Effect[Env, Order] {
//		return fetchOrder(id)
//	}, policy)
//
//	res, err := fetch.Run(ctx, env)
//	// res.Value, res.Attempts, res.Elapsed
//
// Custom retry conditions:
//
//	fetch := retry.RetryIf(factory, policy, func(err error) bool {
//		return !errors.Is(err, ErrNotFound)
//	})
//
// Configuration:
//
//	var cfg retry.PolicyConfig
//	_ = json.Unmarshal([]byte(`{"shape":"exponential","base_delay":"100ms","max_retries":3}`), &cfg)
//	policy, err := cfg.Build()
package retry
