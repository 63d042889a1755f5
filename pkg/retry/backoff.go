package retry

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// maxDuration is the ceiling every computed delay saturates at.
const maxDuration = time.Duration(math.MaxInt64)

// Shape selects how the delay grows with the attempt number.
type Shape uint8

const (
	// ShapeConstant waits base_delay after every failure
	ShapeConstant Shape = iota
	// ShapeLinear waits base_delay × attempt
	ShapeLinear
	// ShapeExponential waits base_delay × 2^(attempt-1)
	ShapeExponential
	// ShapeFibonacci waits base_delay × fib(attempt)
	ShapeFibonacci
)

var shapeNames = [...]string{
	ShapeConstant:    "constant",
	ShapeLinear:      "linear",
	ShapeExponential: "exponential",
	ShapeFibonacci:   "fibonacci",
}

// String returns the string representation of Shape
func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", s)
}

// ParseShape parses a shape name, ignoring case.
func ParseShape(name string) (Shape, error) {
	for i, n := range shapeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown shape %q", ErrInvalidPolicy, name)
}

// MarshalText implements encoding.TextMarshaler
func (s Shape) MarshalText() ([]byte, error) {
	if int(s) >= len(shapeNames) {
		return nil, fmt.Errorf("%w: unknown shape %d", ErrInvalidPolicy, s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// fibTable holds fib(1), fib(2), ... up to the last value below MaxInt64.
var fibTable = func() []uint64 {
	table := []uint64{1, 1}
	for {
		next := table[len(table)-1] + table[len(table)-2]
		if next > math.MaxInt64 {
			return table
		}
		table = append(table, next)
	}
}()

// factor returns the multiplier the shape applies to the base delay for
// attempt, and false when the multiplier itself does not fit.
func (s Shape) factor(attempt uint32) (uint64, bool) {
	switch s {
	case ShapeLinear:
		return uint64(attempt), true
	case ShapeExponential:
		if attempt-1 >= 63 {
			return 0, false
		}
		return 1 << (attempt - 1), true
	case ShapeFibonacci:
		if int(attempt) > len(fibTable) {
			return 0, false
		}
		return fibTable[attempt-1], true
	default:
		return 1, true
	}
}

// scale multiplies base by factor, saturating at maxDuration.
func scale(base time.Duration, factor uint64) time.Duration {
	if base <= 0 || factor == 0 {
		return 0
	}
	if factor > uint64(maxDuration/base) {
		return maxDuration
	}
	return base * time.Duration(factor)
}

// RandomSource supplies uniformly distributed values in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}

// applyJitter scales delay by a factor drawn uniformly from [1-j, 1+j].
func applyJitter(delay time.Duration, j float64, src RandomSource) time.Duration {
	if delay <= 0 || j <= 0 || src == nil {
		return delay
	}
	u := src.Float64()
	if u < 0 || u >= 1 || math.IsNaN(u) {
		u = 0.5
	}
	scaled := float64(delay) * (1 - j + 2*j*u)
	if scaled >= float64(maxDuration) {
		return maxDuration
	}
	if scaled <= 0 {
		return 0
	}
	return time.Duration(scaled)
}
