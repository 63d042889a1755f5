package retry

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidPolicy is returned when a policy description cannot be built.
var ErrInvalidPolicy = errors.New("gofx: invalid retry policy")

// Policy describes backoff shape, attempt budget, delay ceiling and jitter.
// It holds no execution state: a Policy is a comparable value that can be
// shared freely and reused across executions. Builders return modified
// copies.
type Policy struct {
	shape     Shape
	baseDelay time.Duration

	maxRetries    uint32
	hasMaxRetries bool

	maxDelay    time.Duration
	hasMaxDelay bool

	jitter    float64
	hasJitter bool
}

func newPolicy(shape Shape, base time.Duration) Policy {
	if base < 0 {
		base = 0
	}
	return Policy{shape: shape, baseDelay: base}
}

// Constant creates a policy that waits base after every failure.
func Constant(base time.Duration) Policy {
	return newPolicy(ShapeConstant, base)
}

// Linear creates a policy that waits base × attempt.
func Linear(base time.Duration) Policy {
	return newPolicy(ShapeLinear, base)
}

// Exponential creates a policy that waits base × 2^(attempt-1).
func Exponential(base time.Duration) Policy {
	return newPolicy(ShapeExponential, base)
}

// Fibonacci creates a policy that waits base × fib(attempt).
func Fibonacci(base time.Duration) Policy {
	return newPolicy(ShapeFibonacci, base)
}

// WithMaxRetries caps total attempts at n+1: the first attempt plus n
// retries. Without it a policy retries until the context is done.
func (p Policy) WithMaxRetries(n uint32) Policy {
	p.maxRetries, p.hasMaxRetries = n, true
	return p
}

// WithMaxDelay clamps every computed delay to d.
func (p Policy) WithMaxDelay(d time.Duration) Policy {
	if d < 0 {
		d = 0
	}
	p.maxDelay, p.hasMaxDelay = d, true
	return p
}

// WithJitter scales each clamped delay by a factor drawn from [1-j, 1+j].
// j is clamped to [0, 1].
func (p Policy) WithJitter(j float64) Policy {
	switch {
	case math.IsNaN(j) || j < 0:
		j = 0
	case j > 1:
		j = 1
	}
	p.jitter, p.hasJitter = j, true
	return p
}

// Shape returns the backoff shape
func (p Policy) Shape() Shape {
	return p.shape
}

// BaseDelay returns the base delay
func (p Policy) BaseDelay() time.Duration {
	return p.baseDelay
}

// MaxRetries returns the retry budget and whether one is set
func (p Policy) MaxRetries() (uint32, bool) {
	return p.maxRetries, p.hasMaxRetries
}

// MaxDelay returns the delay ceiling and whether one is set
func (p Policy) MaxDelay() (time.Duration, bool) {
	return p.maxDelay, p.hasMaxDelay
}

// Jitter returns the jitter factor and whether one is set
func (p Policy) Jitter() (float64, bool) {
	return p.jitter, p.hasJitter
}

// Delay returns the clamped delay after the given failed attempt, without
// jitter. Attempts are 1-indexed; 0 is treated as 1.
func (p Policy) Delay(attempt uint32) time.Duration {
	if attempt == 0 {
		attempt = 1
	}
	delay := maxDuration
	if f, ok := p.shape.factor(attempt); ok {
		delay = scale(p.baseDelay, f)
	} else if p.baseDelay <= 0 {
		delay = 0
	}
	if p.hasMaxDelay && delay > p.maxDelay {
		delay = p.maxDelay
	}
	return delay
}

// DelayFor returns the delay after the given failed attempt with jitter
// drawn from src. A nil src leaves the delay unjittered.
func (p Policy) DelayFor(attempt uint32, src RandomSource) time.Duration {
	delay := p.Delay(attempt)
	if p.hasJitter {
		delay = applyJitter(delay, p.jitter, src)
	}
	return delay
}

// AllowsRetry reports whether another attempt may follow the given number
// of failed attempts.
func (p Policy) AllowsRetry(failed uint32) bool {
	if failed == math.MaxUint32 {
		return false
	}
	return !p.hasMaxRetries || failed <= p.maxRetries
}

// String returns a compact description of the policy
func (p Policy) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(base=%s", p.shape, p.baseDelay)
	if p.hasMaxRetries {
		fmt.Fprintf(&b, ", max_retries=%d", p.maxRetries)
	}
	if p.hasMaxDelay {
		fmt.Fprintf(&b, ", max_delay=%s", p.maxDelay)
	}
	if p.hasJitter {
		fmt.Fprintf(&b, ", jitter=%.2f", p.jitter)
	}
	b.WriteString(")")
	return b.String()
}
