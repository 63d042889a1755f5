package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/jzx17/gofx/pkg/effect"
	"github.com/jzx17/gofx/pkg/types"
)

// Factory builds a fresh effect for one attempt.
type Factory[Env, T any] func() effect.Effect[Env, T]

// Predicate decides whether a failure is worth retrying.
type Predicate func(err error) bool

// Hook observes a retry before its sleep. It runs on the executing
// goroutine and must return quickly.
type Hook func(Event)

// Event describes a failed attempt that is about to be retried.
type Event struct {
	// Attempt is the 1-indexed number of the attempt that failed
	Attempt uint32
	// Err is the error the attempt failed with
	Err error
	// NextDelay is how long the executor will sleep before the next attempt
	NextDelay time.Duration
	// Elapsed is the time since the first attempt started
	Elapsed time.Duration
}

// Success is the outcome of a retry run that eventually succeeded.
type Success[T any] struct {
	Value    T
	Attempts uint32
	Elapsed  time.Duration
}

// ExhaustedError is returned when the budget ran out or a predicate
// rejected the last error.
type ExhaustedError struct {
	// Err is the last error seen
	Err      error
	Attempts uint32
	Elapsed  time.Duration
}

// Error implements the error interface
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gofx: retry exhausted after %d attempts in %s: %v", e.Attempts, e.Elapsed, e.Err)
}

// Unwrap returns the last error seen
func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Retry runs the effects built by factory until one succeeds or policy's
// budget is spent. The first attempt runs immediately; each failure is
// followed by the policy's delay.
func Retry[Env, T any](factory Factory[Env, T], policy Policy, opts ...Option) effect.Effect[Env, Success[T]] {
	return func(ctx context.Context, env Env) (Success[T], error) {
		return execute(ctx, env, factory, policy, newOptions(ctx, opts))
	}
}

// RetryIf is Retry that gives up as soon as predicate rejects a failure.
func RetryIf[Env, T any](factory Factory[Env, T], policy Policy, predicate Predicate, opts ...Option) effect.Effect[Env, Success[T]] {
	return Retry(factory, policy, append(opts[:len(opts):len(opts)], If(predicate))...)
}

// RetryWithHooks is Retry that calls onRetry before every sleep.
func RetryWithHooks[Env, T any](factory Factory[Env, T], policy Policy, onRetry Hook, opts ...Option) effect.Effect[Env, Success[T]] {
	return Retry(factory, policy, append(opts[:len(opts):len(opts)], OnRetry(onRetry))...)
}

// Value drops the retry metadata and keeps only the value.
func Value[Env, T any](e effect.Effect[Env, Success[T]]) effect.Effect[Env, T] {
	return effect.Map(e, func(s Success[T]) T { return s.Value })
}

func execute[Env, T any](ctx context.Context, env Env, factory Factory[Env, T], policy Policy, o *options) (Success[T], error) {
	if factory == nil {
		return Success[T]{}, types.ErrNilFactory
	}

	start := o.clock.Now()
	var attempt uint32

	for {
		attempt++
		o.stats.update(func(s *StatsSnapshot) {
			s.TotalAttempts++
		})

		value, err := factory().Run(ctx, env)
		if err == nil {
			elapsed := o.clock.Since(start)
			o.stats.update(func(s *StatsSnapshot) {
				s.TotalSuccesses++
			})
			if attempt > 1 {
				o.logger.LogAttrs(ctx, slog.LevelDebug, "retry succeeded",
					slog.String("name", o.name),
					slog.Uint64("attempts", uint64(attempt)),
					slog.Duration("elapsed", elapsed))
			}
			return Success[T]{Value: value, Attempts: attempt, Elapsed: elapsed}, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			o.stats.update(func(s *StatsSnapshot) {
				s.TotalFailures++
			})
			return Success[T]{}, ctxErr
		}

		elapsed := o.clock.Since(start)
		if !o.shouldRetry(err) || !policy.AllowsRetry(attempt) {
			o.stats.update(func(s *StatsSnapshot) {
				s.TotalFailures++
			})
			o.logger.LogAttrs(ctx, slog.LevelWarn, "retry exhausted",
				slog.String("name", o.name),
				slog.Uint64("attempts", uint64(attempt)),
				slog.Duration("elapsed", elapsed),
				slog.Any("error", err))
			return Success[T]{}, &ExhaustedError{Err: err, Attempts: attempt, Elapsed: elapsed}
		}

		delay := policy.DelayFor(attempt, o.random)
		event := Event{Attempt: attempt, Err: err, NextDelay: delay, Elapsed: elapsed}
		for _, hook := range o.hooks {
			hook(event)
		}

		o.logger.LogAttrs(ctx, slog.LevelDebug, "retry scheduled",
			slog.String("name", o.name),
			slog.Uint64("attempt", uint64(attempt)),
			slog.Duration("delay", delay),
			slog.Any("error", err))
		o.stats.update(func(s *StatsSnapshot) {
			s.TotalRetries++
			s.TotalRetryDelay += delay
			s.LastRetryTime = o.clock.Now()
		})

		if delay > 0 {
			timer := o.clock.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				o.stats.update(func(s *StatsSnapshot) {
					s.TotalFailures++
				})
				return Success[T]{}, ctx.Err()
			case <-timer.C():
			}
		}
	}
}

// Option configures an executor run
type Option func(*options)

type options struct {
	name       string
	clock      types.Clock
	random     RandomSource
	logger     *slog.Logger
	stats      *Stats
	predicates []Predicate
	hooks      []Hook
}

func newOptions(ctx context.Context, opts []Option) *options {
	o := &options{name: "default"}
	for _, opt := range opts {
		opt(o)
	}
	if o.clock == nil {
		o.clock = types.ClockFromContext(ctx)
	}
	if o.random == nil {
		o.random = globalRandom{}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

func (o *options) shouldRetry(err error) bool {
	for _, p := range o.predicates {
		if !p(err) {
			return false
		}
	}
	return true
}

// WithName labels log records of this executor
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithClock sets the clock used for sleeps and elapsed time. By default the
// clock is taken from the run's context.
func WithClock(clock types.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithRandom sets the source jitter is drawn from.
func WithRandom(src RandomSource) Option {
	return func(o *options) {
		o.random = src
	}
}

// WithLogger sets the logger. Retries are logged at debug level and
// exhaustion at warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStats records counters of every run into stats
func WithStats(stats *Stats) Option {
	return func(o *options) {
		o.stats = stats
	}
}

// If adds a predicate; a failure is retried only if every predicate accepts it.
func If(predicate Predicate) Option {
	return func(o *options) {
		if predicate != nil {
			o.predicates = append(o.predicates, predicate)
		}
	}
}

// OnRetry adds a hook called before every sleep.
func OnRetry(hook Hook) Option {
	return func(o *options) {
		if hook != nil {
			o.hooks = append(o.hooks, hook)
		}
	}
}

// globalRandom draws from the goroutine-safe math/rand/v2 source.
type globalRandom struct{}

func (globalRandom) Float64() float64 {
	return rand.Float64()
}

// NewSeededRandom returns a deterministic source for reproducible jitter.
// It is not safe for concurrent use.
func NewSeededRandom(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
