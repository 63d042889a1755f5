// Package combine defines the accumulation algebra used by validations: an
// associative merge over failure values.
//
// Any type can take part in accumulation by implementing Combinable for
// itself. The merge must be associative; no identity element is needed, and
// left-to-right order is the order in which the failures were declared.
//
// Two ready-made failure types are provided:
//
//	Errors  - an ordered sequence of errors, combined by concatenation
//	Message - a plain string, combined with a "; " separator
package combine

// Combinable is implemented by failure types that can be merged.
type Combinable[E any] interface {
	Combine(other E) E
}

// Combine merges a and b, keeping a on the left.
func Combine[E Combinable[E]](a, b E) E {
	return a.Combine(b)
}

// CombineAll folds first and rest from left to right.
func CombineAll[E Combinable[E]](first E, rest ...E) E {
	acc := first
	for _, e := range rest {
		acc = acc.Combine(e)
	}
	return acc
}
