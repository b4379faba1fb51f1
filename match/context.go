package match

import (
	"context"

	"github.com/fluentcase/fluentcase/commonerrors"
	"github.com/fluentcase/fluentcase/field"
)

// ContextualPredicate evaluates a subject under a context and can report
// failure, e.g. when the check requires I/O.
type ContextualPredicate[T any] func(ctx context.Context, subject T) (bool, error)

// CaseContext declares a clause whose predicate and body run under ctx and
// may block, e.g. on I/O. The clause is still evaluated in declaration
// order, strictly after every previously declared clause has completed: the
// matcher never evaluates two clauses concurrently. The matcher imposes no
// timeout and performs no cancellation of its own; ctx is handed to the
// predicate and body which are responsible for honouring it. Errors,
// including a ctx error surfaced by the body, are routed through the error
// handler chain like any clause failure.
func (m *Matcher[T, R]) CaseContext(ctx context.Context, predicate ContextualPredicate[T], produce func(context.Context) (R, error), opts ...CaseOption[T]) *Matcher[T, R] {
	m.evaluate(newClauseSettings(opts), "",
		m.contextualPredicateOf(ctx, predicate),
		func() (*R, error) {
			if produce == nil {
				return nil, commonerrors.New(commonerrors.ErrUndefined, "missing clause body")
			}
			result, err := produce(ctx)
			if err != nil {
				return nil, err
			}
			return field.ToOptional(result), nil
		})
	return m
}

// CaseContextDo behaves like CaseContext with a side-effecting body.
func (m *Matcher[T, R]) CaseContextDo(ctx context.Context, predicate ContextualPredicate[T], do func(context.Context) error, opts ...CaseOption[T]) *Matcher[T, R] {
	m.evaluate(newClauseSettings(opts), "",
		m.contextualPredicateOf(ctx, predicate),
		func() (*R, error) {
			if do == nil {
				return nil, commonerrors.New(commonerrors.ErrUndefined, "missing clause body")
			}
			return nil, do(ctx)
		})
	return m
}

func (m *Matcher[T, R]) contextualPredicateOf(ctx context.Context, predicate ContextualPredicate[T]) func() (bool, error) {
	return func() (bool, error) {
		if predicate == nil {
			return false, commonerrors.New(commonerrors.ErrUndefined, "missing clause predicate")
		}
		return predicate(ctx, m.subject)
	}
}

// DefaultContextDo behaves like DefaultDo with a context-aware fallible
// body. When ctx is already done the body is not run and the context's
// error is returned; a body error is returned to the caller and, as for any
// default clause, never recorded in the evaluation log.
func (m *Matcher[T, R]) DefaultContextDo(ctx context.Context, do func(context.Context) error) error {
	if err := commonerrors.ErrFromContext(ctx); err != nil {
		return err
	}
	if !m.matched && do != nil {
		if err := do(ctx); err != nil {
			return err
		}
		m.matched = true
		m.append(defaultLabel, nil, nil)
	}
	return nil
}

// DefaultContext behaves like Default with a context-aware fallible body.
// When ctx is already done the body is not run and the context's error is
// returned, categorised as ErrCancelled or ErrTimeout; a body error is
// returned to the caller directly and, as for any default clause, never
// recorded in the evaluation log.
func (m *Matcher[T, R]) DefaultContext(ctx context.Context, produce func(context.Context) (R, error)) (R, error) {
	var zero R
	if err := commonerrors.ErrFromContext(ctx); err != nil {
		return field.Optional(m.result, zero), err
	}
	if !m.matched && produce != nil {
		result, err := produce(ctx)
		if err != nil {
			return zero, err
		}
		m.matched = true
		m.result = field.ToOptional(result)
		m.allResults = append(m.allResults, result)
		m.append(defaultLabel, m.result, nil)
	}
	return field.Optional(m.result, zero), nil
}
