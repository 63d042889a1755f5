package types

import "time"

// Result represents a settled computation
type Result[T any] struct {
	// Value is the success value
	Value T

	// Error is the failure, nil on success
	Error error

	// Duration is how long the computation took to settle
	Duration time.Duration
}

// Ok reports whether the result holds a value.
func (r Result[T]) Ok() bool {
	return r.Error == nil
}

// Unpack returns the result as a (value, error) pair.
func (r Result[T]) Unpack() (T, error) {
	return r.Value, r.Error
}

// Tuple2 is an ordered pair of independently produced values.
type Tuple2[A, B any] struct {
	First  A
	Second B
}

// Tuple3 is an ordered triple of independently produced values.
type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Tuple4 is an ordered quadruple of independently produced values.
type Tuple4[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// NewTuple2 creates a Tuple2
func NewTuple2[A, B any](a A, b B) Tuple2[A, B] {
	return Tuple2[A, B]{First: a, Second: b}
}

// NewTuple3 creates a Tuple3
func NewTuple3[A, B, C any](a A, b B, c C) Tuple3[A, B, C] {
	return Tuple3[A, B, C]{First: a, Second: b, Third: c}
}

// NewTuple4 creates a Tuple4
func NewTuple4[A, B, C, D any](a A, b B, c C, d D) Tuple4[A, B, C, D] {
	return Tuple4[A, B, C, D]{First: a, Second: b, Third: c, Fourth: d}
}
