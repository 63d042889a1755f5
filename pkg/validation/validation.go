// Package validation provides Validation, a success-or-accumulated-failure
// value for composing independent checks without short-circuiting.
//
// Independent checks are combined with All2, All3, All4 or All: every member
// is evaluated and the failures are merged left to right with the failure
// type's Combine method. Dependent checks are chained with AndThen, which
// stops at the first failure.
//
//	name := validation.Check(in.Name, notEmpty, combine.Errors{errEmptyName})
//	age := validation.Check(in.Age, adult, combine.Errors{errUnderage})
//
//	user := validation.Map(validation.All2(name, age), func(t types.Tuple2[string, int]) User {
//		return User{Name: t.First, Age: t.Second}
//	})
package validation

import (
	"fmt"

	"github.com/jzx17/gofx/pkg/combine"
)

// Validation is either a success holding a T or a failure holding an E.
// The zero value is a success holding the zero T.
type Validation[T any, E combine.Combinable[E]] struct {
	value  T
	err    E
	failed bool
}

// Success creates a successful validation.
//
// Success and Failure list first the type parameter their argument cannot
// supply, so callers name only that one: Success[combine.Errors](42) and
// Failure[int](err).
func Success[E combine.Combinable[E], T any](value T) Validation[T, E] {
	return Validation[T, E]{value: value}
}

// Failure creates a failed validation. See Success for the order of its
// type parameters.
func Failure[T any, E combine.Combinable[E]](err E) Validation[T, E] {
	return Validation[T, E]{err: err, failed: true}
}

// Check succeeds with value when pred holds and fails with err otherwise.
func Check[T any, E combine.Combinable[E]](value T, pred func(T) bool, err E) Validation[T, E] {
	if pred(value) {
		return Validation[T, E]{value: value}
	}
	return Failure[T](err)
}

// FromError lifts a Go (value, error) pair into a validation over
// combine.Errors. A combine.Errors failure is kept as is.
func FromError[T any](value T, err error) Validation[T, combine.Errors] {
	if err == nil {
		return Validation[T, combine.Errors]{value: value}
	}
	if errs, ok := err.(combine.Errors); ok && errs.Len() > 0 {
		return Failure[T](errs)
	}
	return Failure[T](combine.Errors{err})
}

// IsSuccess reports whether v holds a value.
func (v Validation[T, E]) IsSuccess() bool {
	return !v.failed
}

// IsFailure reports whether v holds a failure.
func (v Validation[T, E]) IsFailure() bool {
	return v.failed
}

// Value returns the success value, or the zero T on failure.
func (v Validation[T, E]) Value() T {
	return v.value
}

// Err returns the failure, or the zero E on success.
func (v Validation[T, E]) Err() E {
	return v.err
}

// Get returns the value, the failure and whether v is a success.
func (v Validation[T, E]) Get() (T, E, bool) {
	return v.value, v.err, !v.failed
}

// String formats v as Success(value) or Failure(err).
func (v Validation[T, E]) String() string {
	if v.failed {
		return fmt.Sprintf("Failure(%v)", v.err)
	}
	return fmt.Sprintf("Success(%v)", v.value)
}

// IntoResult converts v into Go's (value, error) form without transforming
// either side.
func IntoResult[T any, E interface {
	combine.Combinable[E]
	error
}](v Validation[T, E]) (T, error) {
	if v.failed {
		var zero T
		return zero, v.err
	}
	return v.value, nil
}

// Map transforms the success value. Failures pass through.
func Map[T, U any, E combine.Combinable[E]](v Validation[T, E], f func(T) U) Validation[U, E] {
	if v.failed {
		return Failure[U](v.err)
	}
	return Validation[U, E]{value: f(v.value)}
}

// MapErr transforms the failure. Successes pass through.
func MapErr[T any, E combine.Combinable[E], F combine.Combinable[F]](v Validation[T, E], f func(E) F) Validation[T, F] {
	if v.failed {
		return Failure[T](f(v.err))
	}
	return Validation[T, F]{value: v.value}
}

// AndThen feeds the success value into f. A failure is returned unchanged
// and f is never called, so nothing is accumulated across an AndThen.
func AndThen[T, U any, E combine.Combinable[E]](v Validation[T, E], f func(T) Validation[U, E]) Validation[U, E] {
	if v.failed {
		return Failure[U](v.err)
	}
	return f(v.value)
}
