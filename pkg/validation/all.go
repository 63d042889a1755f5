package validation

import (
	"github.com/jzx17/gofx/pkg/combine"
	"github.com/jzx17/gofx/pkg/types"
)

type accumulator[E combine.Combinable[E]] struct {
	err    E
	failed bool
}

func (a *accumulator[E]) add(failed bool, err E) {
	if !failed {
		return
	}
	if !a.failed {
		a.err, a.failed = err, true
		return
	}
	a.err = a.err.Combine(err)
}

func addAll[T any, E combine.Combinable[E]](acc *accumulator[E], v Validation[T, E]) {
	acc.add(v.failed, v.err)
}

// All2 evaluates both validations and pairs their values, or combines every
// failure in declaration order.
func All2[A, B any, E combine.Combinable[E]](a Validation[A, E], b Validation[B, E]) Validation[types.Tuple2[A, B], E] {
	var acc accumulator[E]
	addAll(&acc, a)
	addAll(&acc, b)
	if acc.failed {
		return Failure[types.Tuple2[A, B]](acc.err)
	}
	return Validation[types.Tuple2[A, B], E]{value: types.NewTuple2(a.value, b.value)}
}

// All3 is All2 for three validations.
func All3[A, B, C any, E combine.Combinable[E]](a Validation[A, E], b Validation[B, E], c Validation[C, E]) Validation[types.Tuple3[A, B, C], E] {
	var acc accumulator[E]
	addAll(&acc, a)
	addAll(&acc, b)
	addAll(&acc, c)
	if acc.failed {
		return Failure[types.Tuple3[A, B, C]](acc.err)
	}
	return Validation[types.Tuple3[A, B, C], E]{value: types.NewTuple3(a.value, b.value, c.value)}
}

// All4 is All2 for four validations.
func All4[A, B, C, D any, E combine.Combinable[E]](a Validation[A, E], b Validation[B, E], c Validation[C, E], d Validation[D, E]) Validation[types.Tuple4[A, B, C, D], E] {
	var acc accumulator[E]
	addAll(&acc, a)
	addAll(&acc, b)
	addAll(&acc, c)
	addAll(&acc, d)
	if acc.failed {
		return Failure[types.Tuple4[A, B, C, D]](acc.err)
	}
	return Validation[types.Tuple4[A, B, C, D], E]{value: types.NewTuple4(a.value, b.value, c.value, d.value)}
}

// All evaluates a homogeneous sequence of validations. With no members it
// succeeds with an empty slice.
func All[T any, E combine.Combinable[E]](vs ...Validation[T, E]) Validation[[]T, E] {
	var acc accumulator[E]
	values := make([]T, 0, len(vs))
	for _, v := range vs {
		acc.add(v.failed, v.err)
		if !acc.failed {
			values = append(values, v.value)
		}
	}
	if acc.failed {
		return Failure[[]T](acc.err)
	}
	return Validation[[]T, E]{value: values}
}

// Traverse applies check to every item and collects the results with All.
func Traverse[T, U any, E combine.Combinable[E]](items []T, check func(T) Validation[U, E]) Validation[[]U, E] {
	vs := make([]Validation[U, E], len(items))
	for i, item := range items {
		vs[i] = check(item)
	}
	return All(vs...)
}

// Ensure runs every check against value and keeps value when they all pass.
func Ensure[T any, E combine.Combinable[E]](value T, checks ...func(T) Validation[T, E]) Validation[T, E] {
	var acc accumulator[E]
	for _, check := range checks {
		v := check(value)
		acc.add(v.failed, v.err)
	}
	if acc.failed {
		return Failure[T](acc.err)
	}
	return Validation[T, E]{value: value}
}
