// Package errctx attaches an ordered breadcrumb trail to an error as it
// propagates through nested operations.
//
// Wrap starts a trail; Chain appends to an existing one. The trail is kept
// innermost operation first, and Error renders it outermost first so the
// message reads like a call path:
//
//	err := errctx.Wrap(dbErr, "fetching order")
//	err = errctx.Chain(err, "processing order 999")
//
//	errctx.TrailOf(err) // ["fetching order", "processing order 999"]
//	err.Error()         // "processing order 999: fetching order: <dbErr>"
package errctx

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ContextError is an error together with the trail of operations it passed
// through. ContextError values are never modified once built.
type ContextError struct {
	// Err is the wrapped error
	Err error

	// Trail lists operation messages, innermost first
	Trail []string
}

// Error implements the error interface
func (e *ContextError) Error() string {
	var b strings.Builder
	for i := len(e.Trail) - 1; i >= 0; i-- {
		b.WriteString(e.Trail[i])
		b.WriteString(": ")
	}
	if e.Err == nil {
		b.WriteString("<nil>")
	} else {
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *ContextError) Unwrap() error {
	return e.Err
}

// Wrap starts a new trail for err. Wrapping a ContextError nests it rather
// than merging the trails. A nil err stays nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ContextError{Err: err, Trail: []string{msg}}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Chain appends msg to the trail of err when err is a *ContextError and
// keeps its inner error. Any other error is wrapped as by Wrap.
func Chain(err error, msg string) error {
	ce, ok := err.(*ContextError)
	if !ok {
		return Wrap(err, msg)
	}
	trail := make([]string, len(ce.Trail), len(ce.Trail)+1)
	copy(trail, ce.Trail)
	return &ContextError{Err: ce.Err, Trail: append(trail, msg)}
}

// Chainf is Chain with a formatted message.
func Chainf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Chain(err, fmt.Sprintf(format, args...))
}

// TrailOf returns a copy of the trail of the outermost ContextError in err's
// chain, or nil when there is none.
func TrailOf(err error) []string {
	var ce *ContextError
	if !errors.As(err, &ce) {
		return nil
	}
	return slices.Clone(ce.Trail)
}

// Cause follows nested ContextErrors down to the first error that is not one.
func Cause(err error) error {
	for {
		ce, ok := err.(*ContextError)
		if !ok {
			return err
		}
		err = ce.Err
	}
}
