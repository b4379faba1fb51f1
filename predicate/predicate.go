// Package predicate provides factories for the conditions used by match
// clauses: equality, numeric ranges, string shapes, regular expressions and
// set membership. Every factory returns a plain func(T) bool so the
// predicates compose freely and carry no state beyond their configuration.
package predicate

import (
	"reflect"

	"github.com/fluentcase/fluentcase/value"
)

// EqualTo returns a predicate checking whether a value equals expected.
func EqualTo[T comparable](expected T) func(T) bool {
	return func(v T) bool {
		return v == expected
	}
}

// DeepEqualTo behaves like EqualTo for unconstrained types, comparing with
// reflect.DeepEqual.
func DeepEqualTo[T any](expected T) func(T) bool {
	return func(v T) bool {
		return reflect.DeepEqual(v, expected)
	}
}

// Not returns a predicate negating the result of p.
func Not[T any](p func(T) bool) func(T) bool {
	return func(v T) bool {
		return !p(v)
	}
}

// Null returns a predicate checking whether a value is nil, either as a
// plain nil interface or as a typed nil pointer, slice, map, channel or
// function.
func Null[T any]() func(T) bool {
	return func(v T) bool {
		return value.IsNull(v)
	}
}

// Empty returns a predicate checking whether a value is empty i.e. "", nil,
// 0, [], {}, false, etc.
func Empty[T any]() func(T) bool {
	return func(v T) bool {
		return value.IsEmpty(v)
	}
}

// NotEmpty returns the negation of Empty.
func NotEmpty[T any]() func(T) bool {
	return Not(Empty[T]())
}
