package match

import (
	"reflect"

	"github.com/fluentcase/fluentcase/commonerrors"
	"github.com/fluentcase/fluentcase/field"
	"github.com/fluentcase/fluentcase/value"
)

func (m *Matcher[T, R]) predicateOf(predicate Predicate[T]) func() (bool, error) {
	return func() (bool, error) {
		if predicate == nil {
			return false, commonerrors.New(commonerrors.ErrUndefined, "missing clause predicate")
		}
		return predicate(m.subject), nil
	}
}

func produceBody[R any](produce func() R) func() (*R, error) {
	return func() (*R, error) {
		if produce == nil {
			return nil, commonerrors.New(commonerrors.ErrUndefined, "missing clause body")
		}
		return field.ToOptional(produce()), nil
	}
}

func doBody[R any](do func()) func() (*R, error) {
	return func() (*R, error) {
		if do == nil {
			return nil, commonerrors.New(commonerrors.ErrUndefined, "missing clause body")
		}
		do()
		return nil, nil
	}
}

// Case declares a clause: when no previous clause has matched (or the
// matcher does not short-circuit) and predicate holds for the subject,
// produce is called and its value becomes the current result. Failures in
// the predicate or the body are contained at the clause boundary and routed
// through the error handler chain.
func (m *Matcher[T, R]) Case(predicate Predicate[T], produce func() R, opts ...CaseOption[T]) *Matcher[T, R] {
	m.evaluate(newClauseSettings(opts), "", m.predicateOf(predicate), produceBody(produce))
	return m
}

// CaseDo behaves like Case with a side-effecting body producing no result.
func (m *Matcher[T, R]) CaseDo(predicate Predicate[T], do func(), opts ...CaseOption[T]) *Matcher[T, R] {
	m.evaluate(newClauseSettings(opts), "", m.predicateOf(predicate), doBody[R](do))
	return m
}

// CaseValue declares a clause matching when the subject equals expected.
// Equality follows reflect.DeepEqual so that unconstrained subject types,
// including slices and maps, can be compared.
func (m *Matcher[T, R]) CaseValue(expected T, produce func() R, opts ...CaseOption[T]) *Matcher[T, R] {
	m.evaluate(newClauseSettings(opts), "", m.equalsPredicate(expected), produceBody(produce))
	return m
}

// CaseValueDo behaves like CaseValue with a side-effecting body.
func (m *Matcher[T, R]) CaseValueDo(expected T, do func(), opts ...CaseOption[T]) *Matcher[T, R] {
	m.evaluate(newClauseSettings(opts), "", m.equalsPredicate(expected), doBody[R](do))
	return m
}

func (m *Matcher[T, R]) equalsPredicate(expected T) func() (bool, error) {
	return func() (bool, error) {
		return reflect.DeepEqual(m.subject, expected), nil
	}
}

// CaseNull declares a clause matching when the subject is null, i.e. a nil
// interface or a typed nil pointer, slice, map, channel or function.
func (m *Matcher[T, R]) CaseNull(produce func() R, opts ...CaseOption[T]) *Matcher[T, R] {
	m.evaluate(newClauseSettings(opts), "null", m.nullPredicate(), produceBody(produce))
	return m
}

// CaseNullDo behaves like CaseNull with a side-effecting body.
func (m *Matcher[T, R]) CaseNullDo(do func(), opts ...CaseOption[T]) *Matcher[T, R] {
	m.evaluate(newClauseSettings(opts), "null", m.nullPredicate(), doBody[R](do))
	return m
}

func (m *Matcher[T, R]) nullPredicate() func() (bool, error) {
	return func() (bool, error) {
		return value.IsNull(m.subject), nil
	}
}

// CaseTry behaves like Case with a body that can report failure. A returned
// error is routed through the error handler chain exactly like a panicking
// body and leaves the match state untouched.
func (m *Matcher[T, R]) CaseTry(predicate Predicate[T], produce func() (R, error), opts ...CaseOption[T]) *Matcher[T, R] {
	m.evaluate(newClauseSettings(opts), "", m.predicateOf(predicate), func() (*R, error) {
		if produce == nil {
			return nil, commonerrors.New(commonerrors.ErrUndefined, "missing clause body")
		}
		result, err := produce()
		if err != nil {
			return nil, err
		}
		return field.ToOptional(result), nil
	})
	return m
}

// CaseType declares a clause matching when the subject's runtime type is
// TCase (or implements it, when TCase is an interface). The body receives
// the subject narrowed to TCase. Unless labelled explicitly, the clause is
// logged under the name of TCase.
func CaseType[TCase any, T, R any](m *Matcher[T, R], body func(TCase) R, opts ...CaseOption[T]) *Matcher[T, R] {
	var narrowed TCase
	m.evaluate(newClauseSettings(opts), reflect.TypeFor[TCase]().String(),
		func() (bool, error) {
			v, ok := any(m.subject).(TCase)
			if ok {
				narrowed = v
			}
			return ok, nil
		},
		func() (*R, error) {
			if body == nil {
				return nil, commonerrors.New(commonerrors.ErrUndefined, "missing clause body")
			}
			return field.ToOptional(body(narrowed)), nil
		})
	return m
}

// CaseTypeDo behaves like CaseType with a side-effecting body.
func CaseTypeDo[TCase any, T, R any](m *Matcher[T, R], do func(TCase), opts ...CaseOption[T]) *Matcher[T, R] {
	var narrowed TCase
	m.evaluate(newClauseSettings(opts), reflect.TypeFor[TCase]().String(),
		func() (bool, error) {
			v, ok := any(m.subject).(TCase)
			if ok {
				narrowed = v
			}
			return ok, nil
		},
		func() (*R, error) {
			if do == nil {
				return nil, commonerrors.New(commonerrors.ErrUndefined, "missing clause body")
			}
			do(narrowed)
			return nil, nil
		})
	return m
}

// Default runs produce only when no clause has matched, records its value
// exactly as a successful clause would and returns the (possibly
// pre-existing) result. Default bodies are trusted: they are not routed
// through the error handler chain and a panic propagates to the caller.
func (m *Matcher[T, R]) Default(produce func() R) R {
	if !m.matched && produce != nil {
		result := field.ToOptional(produce())
		m.matched = true
		m.result = result
		m.allResults = append(m.allResults, *result)
		m.append(defaultLabel, result, nil)
	}
	var zero R
	return field.Optional(m.result, zero)
}

// DefaultDo runs do only when no clause has matched and records a default
// log entry carrying no result.
func (m *Matcher[T, R]) DefaultDo(do func()) {
	if !m.matched && do != nil {
		do()
		m.matched = true
		m.append(defaultLabel, nil, nil)
	}
}
