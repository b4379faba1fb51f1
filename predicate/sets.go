package predicate

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// OneOf returns a predicate checking whether a value is one of the provided
// values. This also covers enumeration checks: pass the valid enum members.
func OneOf[T comparable](values ...T) func(T) bool {
	return InSet(mapset.NewThreadUnsafeSet(values...))
}

// InSet returns a predicate checking membership of set. A nil set matches
// nothing.
func InSet[T comparable](set mapset.Set[T]) func(T) bool {
	return func(v T) bool {
		if set == nil {
			return false
		}
		return set.Contains(v)
	}
}
