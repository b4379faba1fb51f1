package predicate

import (
	"golang.org/x/exp/constraints"
)

// Between returns a predicate checking whether a value lies within
// [low, high]. Both bounds are inclusive and may be supplied in any order.
func Between[T constraints.Ordered](low, high T) func(T) bool {
	if high < low {
		low, high = high, low
	}
	return func(v T) bool {
		return v >= low && v <= high
	}
}

// GreaterThan returns a predicate checking whether a value is strictly
// greater than bound.
func GreaterThan[T constraints.Ordered](bound T) func(T) bool {
	return func(v T) bool {
		return v > bound
	}
}

// LessThan returns a predicate checking whether a value is strictly less
// than bound.
func LessThan[T constraints.Ordered](bound T) func(T) bool {
	return func(v T) bool {
		return v < bound
	}
}
