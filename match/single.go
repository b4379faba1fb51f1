package match

import (
	"github.com/fluentcase/fluentcase/commonerrors"
)

// ValueCase associates a literal value with the result to produce when the
// subject equals it.
type ValueCase[T comparable, R any] struct {
	When T
	Then func() R
}

// PredicateCase associates a predicate with the result to produce when the
// subject satisfies it.
type PredicateCase[T, R any] struct {
	When Predicate[T]
	Then func() R
}

// ByValue matches subject against the cases in order and returns the result
// of the first case whose value equals the subject. When no case matches,
// the optional default is used; without one, an error wrapping ErrUnmatched
// is returned. Whether anything matched is decided by the matcher's matched
// flag, so a case legitimately producing the zero value is still a match.
func ByValue[T comparable, R any](subject T, cases []ValueCase[T, R], def ...func() R) (R, error) {
	m := New[T, R](subject)
	for i := range cases {
		c := cases[i]
		m.Case(func(s T) bool { return s == c.When }, c.Then)
	}
	return resolve(m, def)
}

// ByPredicate matches subject against the cases in order and returns the
// result of the first case whose predicate holds, with the same default and
// unmatched behaviour as ByValue.
func ByPredicate[T, R any](subject T, cases []PredicateCase[T, R], def ...func() R) (R, error) {
	m := New[T, R](subject)
	for i := range cases {
		c := cases[i]
		m.Case(c.When, c.Then)
	}
	return resolve(m, def)
}

func resolve[T, R any](m *Matcher[T, R], def []func() R) (R, error) {
	if len(def) > 0 && def[0] != nil {
		return m.Default(def[0]), nil
	}
	result, matched := m.Result()
	if !matched {
		return result, commonerrors.New(commonerrors.ErrUnmatched, "no clause produced a result")
	}
	return result, nil
}
