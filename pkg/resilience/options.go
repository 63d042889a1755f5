// Package resilience races effects against deadlines and brackets resource
// use with guaranteed release.
package resilience

import (
	"context"
	"log/slog"

	"github.com/jzx17/gofx/pkg/types"
)

// Option configures a combinator
type Option func(*options)

type options struct {
	clock  types.Clock
	logger *slog.Logger
}

func newOptions(ctx context.Context, opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.clock == nil {
		o.clock = types.ClockFromContext(ctx)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// WithClock sets the clock deadlines are measured on. By default the clock
// is taken from the run's context.
func WithClock(clock types.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
