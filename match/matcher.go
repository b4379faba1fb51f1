// Package match implements a fluent, chainable pattern matcher: a subject
// value is confronted with an ordered list of clauses, each made of a
// condition and a body, and the matcher records which clause fired in an
// evaluation log. By default the first satisfied clause wins and every
// later clause is skipped; the matcher can also be configured to collect
// the results of every satisfied clause.
package match

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/atomic"

	"github.com/fluentcase/fluentcase/commonerrors"
	"github.com/fluentcase/fluentcase/field"
)

// Predicate evaluates a subject and returns true when the subject satisfies
// the clause condition.
type Predicate[T any] func(T) bool

// ErrorHandler is offered a clause failure together with the subject being
// matched. It returns true when it considers the error handled.
type ErrorHandler[T any] func(err error, subject T) bool

// ErrorPolicy controls what happens to a clause error which the handler
// chain left unhandled.
type ErrorPolicy int

const (
	// SwallowAndLog records the error in the evaluation log and carries on
	// with the rest of the chain. This is the default policy: a single bad
	// clause never aborts a match chain and callers inspect Log or Err to
	// discover swallowed failures.
	SwallowAndLog ErrorPolicy = iota
	// Rethrow panics with the unhandled error once it has been logged.
	Rethrow
)

const defaultLabel = "default"

// LogEntry describes one clause evaluation. Entries are appended in
// evaluation order and never reordered nor pruned. At most one of Result
// and Err is set; both are nil for a clause whose body produced no value.
type LogEntry[T, R any] struct {
	Index     int
	Timestamp time.Time
	Label     string
	Subject   T
	Result    *R
	Err       error
}

type settings[T any] struct {
	shortCircuit bool
	handler      ErrorHandler[T]
	policy       ErrorPolicy
	logger       logr.Logger
}

// Option configures a matcher at construction time.
type Option[T any] func(*settings[T])

// WithoutShortCircuit makes the matcher evaluate every clause and collect
// the result of each satisfied one instead of stopping at the first match.
func WithoutShortCircuit[T any]() Option[T] {
	return func(s *settings[T]) {
		s.shortCircuit = false
	}
}

// WithErrorHandler registers a session-wide fallback handler offered any
// clause failure not handled by a clause-local handler.
func WithErrorHandler[T any](handler ErrorHandler[T]) Option[T] {
	return func(s *settings[T]) {
		s.handler = handler
	}
}

// WithErrorPolicy sets the policy applied to clause errors which the whole
// handler chain left unhandled.
func WithErrorPolicy[T any](policy ErrorPolicy) Option[T] {
	return func(s *settings[T]) {
		s.policy = policy
	}
}

// WithLogger sets a logger emitting a debug line per clause evaluation on
// top of the matcher's own evaluation log.
func WithLogger[T any](logger logr.Logger) Option[T] {
	return func(s *settings[T]) {
		s.logger = logger
	}
}

type clauseSettings[T any] struct {
	label   *string
	handler ErrorHandler[T]
}

// CaseOption configures a single clause.
type CaseOption[T any] func(*clauseSettings[T])

// WithLabel names the clause in the evaluation log.
func WithLabel[T any](label string) CaseOption[T] {
	return func(s *clauseSettings[T]) {
		s.label = field.ToOptional(label)
	}
}

// WithClauseErrorHandler registers a handler offered this clause's failures
// before the matcher's session-wide handler.
func WithClauseErrorHandler[T any](handler ErrorHandler[T]) CaseOption[T] {
	return func(s *clauseSettings[T]) {
		s.handler = handler
	}
}

func newClauseSettings[T any](opts []CaseOption[T]) *clauseSettings[T] {
	s := &clauseSettings[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *clauseSettings[T]) resolveLabel(fallback string, evaluation uint64) string {
	if s.label != nil {
		return *s.label
	}
	if fallback != "" {
		return fallback
	}
	return fmt.Sprintf("case %d", evaluation)
}

// Matcher holds one matching session: the subject, the outcome of the
// clauses declared so far and the evaluation log. A matcher is driven by
// exactly one logical call chain at a time; it performs no internal locking
// and must not be mutated concurrently.
type Matcher[T, R any] struct {
	subject      T
	shortCircuit bool
	matched      bool
	result       *R
	allResults   []R
	log          []LogEntry[T, R]
	handler      ErrorHandler[T]
	policy       ErrorPolicy
	logger       logr.Logger
	failures     *multierror.Error
	evaluations  *atomic.Uint64
}

// New creates a matcher for subject. Unless configured otherwise the
// matcher short-circuits on the first satisfied clause.
func New[T, R any](subject T, opts ...Option[T]) *Matcher[T, R] {
	s := settings[T]{
		shortCircuit: true,
		policy:       SwallowAndLog,
		logger:       logr.Discard(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return &Matcher[T, R]{
		subject:      subject,
		shortCircuit: s.shortCircuit,
		handler:      s.handler,
		policy:       s.policy,
		logger:       s.logger,
		evaluations:  atomic.NewUint64(0),
	}
}

// Subject returns the value being matched.
func (m *Matcher[T, R]) Subject() T {
	return m.subject
}

// Matched returns whether at least one clause or default has fired. This is
// the authoritative signal: a clause may legitimately produce the zero
// value, so the result alone cannot tell a match from no match.
func (m *Matcher[T, R]) Matched() bool {
	return m.matched
}

// Result returns the value produced by the most recent successful clause
// together with the matched flag. A match through a side-effecting clause
// leaves the value at its zero value while still reporting true.
func (m *Matcher[T, R]) Result() (R, bool) {
	var zero R
	return field.Optional(m.result, zero), m.matched
}

// MustResult returns the result and panics with an error wrapping
// commonerrors.ErrUnmatched when nothing has matched.
func (m *Matcher[T, R]) MustResult() R {
	if !m.matched {
		panic(commonerrors.New(commonerrors.ErrUnmatched, "no clause nor default produced a result"))
	}
	var zero R
	return field.Optional(m.result, zero)
}

// AllResults returns every result produced so far, in evaluation order.
func (m *Matcher[T, R]) AllResults() []R {
	return slices.Clone(m.allResults)
}

// Log returns the evaluation log: one entry per clause actually evaluated,
// in evaluation order. Clauses skipped by short-circuiting leave no entry.
func (m *Matcher[T, R]) Log() []LogEntry[T, R] {
	return slices.Clone(m.log)
}

// Err returns the aggregation of every clause error the handler chain left
// unhandled, or nil when there is none.
func (m *Matcher[T, R]) Err() error {
	return m.failures.ErrorOrNil()
}

func (m *Matcher[T, R]) skip() bool {
	return m.matched && m.shortCircuit
}

// protect runs f and converts a panic into an error wrapping ErrUnexpected
// so that a misbehaving clause is contained at the clause boundary.
func protect[V any](f func() (V, error)) (v V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = commonerrors.Newf(commonerrors.ErrUnexpected, "clause panicked: %v", r)
		}
	}()
	return f()
}

func (m *Matcher[T, R]) evaluate(s *clauseSettings[T], fallbackLabel string, predicate func() (bool, error), body func() (*R, error)) {
	if m.skip() {
		return
	}
	label := s.resolveLabel(fallbackLabel, m.evaluations.Inc())
	ok, err := protect(predicate)
	if err != nil {
		m.fail(label, err, s.handler)
		return
	}
	if !ok {
		m.logger.V(1).Info("clause did not match", "label", label)
		return
	}
	result, err := protect(body)
	if err != nil {
		m.fail(label, err, s.handler)
		return
	}
	m.succeed(label, result)
}

func (m *Matcher[T, R]) succeed(label string, result *R) {
	m.matched = true
	if result != nil {
		m.result = result
		m.allResults = append(m.allResults, *result)
	}
	m.append(label, result, nil)
	m.logger.V(1).Info("clause matched", "label", label)
}

func (m *Matcher[T, R]) fail(label string, err error, handler ErrorHandler[T]) {
	handled := false
	if handler != nil {
		handled = handler(err, m.subject)
	}
	if !handled && m.handler != nil {
		handled = m.handler(err, m.subject)
	}
	m.append(label, nil, err)
	m.logger.Error(err, "clause failed", "label", label, "handled", handled)
	if handled {
		return
	}
	m.failures = multierror.Append(m.failures, err)
	if m.policy == Rethrow {
		panic(err)
	}
}

func (m *Matcher[T, R]) append(label string, result *R, err error) {
	m.log = append(m.log, LogEntry[T, R]{
		Index:     len(m.log),
		Timestamp: time.Now(),
		Label:     label,
		Subject:   m.subject,
		Result:    result,
		Err:       err,
	})
}
