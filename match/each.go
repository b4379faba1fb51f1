package match

import (
	"iter"
	"slices"
)

// EachSequence lazily matches every subject of a sequence against a fresh
// matcher configured by declare. Per-item matchers do not short-circuit:
// every satisfied clause of an item contributes a result. The returned
// sequence yields every result, concatenated in item order then, within an
// item, in clause order.
func EachSequence[T, R any](subjects iter.Seq[T], declare func(*Matcher[T, R])) iter.Seq[R] {
	return func(yield func(R) bool) {
		if subjects == nil || declare == nil {
			return
		}
		for subject := range subjects {
			m := New[T, R](subject, WithoutShortCircuit[T]())
			declare(m)
			for _, result := range m.AllResults() {
				if !yield(result) {
					return
				}
			}
		}
	}
}

// Each behaves like EachSequence over a slice of subjects and realises the
// results eagerly.
func Each[S ~[]T, T, R any](s S, declare func(*Matcher[T, R])) []R {
	return slices.Collect(EachSequence(slices.Values(s), declare))
}
