package match

import (
	"errors"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluentcase/fluentcase/commonerrors"
	"github.com/fluentcase/fluentcase/commonerrors/errortest"
	"github.com/fluentcase/fluentcase/predicate"
)

func TestCaseFirstMatchWins(t *testing.T) {
	result := New[string, string]("foobar").
		Case(predicate.Contains[string]("foo"), func() string { return "Contains foo" }).
		Case(predicate.HasPrefix[string]("bar"), func() string { return "Starts with bar" }).
		Default(func() string { return "No match" })
	assert.Equal(t, "Contains foo", result)
}

func TestCaseRangeScenario(t *testing.T) {
	m := New[int, string](42).
		CaseValue(1, func() string { return "One" }).
		Case(predicate.Between(10, 100), func() string { return "Big range" })
	result := m.Default(func() string { return "Other" })
	assert.Equal(t, "Big range", result)
	assert.True(t, m.Matched())
}

func TestCaseNull(t *testing.T) {
	var subject *string
	result := New[*string, string](subject).
		CaseNull(func() string { return "Is null" }).
		Case(func(s *string) bool { return *s == "set" }, func() string { return "Is set" }).
		Default(func() string { return "Other" })
	assert.Equal(t, "Is null", result)

	word := faker.Word()
	result = New[*string, string](&word).
		CaseNull(func() string { return "Is null" }).
		Default(func() string { return "Not null" })
	assert.Equal(t, "Not null", result)
}

func TestShortCircuitInvariant(t *testing.T) {
	evaluated := 0
	m := New[int, string](2).
		Case(predicate.EqualTo(2), func() string { return "first" }).
		Case(func(int) bool { evaluated++; return true }, func() string { return "second" }).
		Case(func(int) bool { evaluated++; return true }, func() string { return "third" })

	assert.Zero(t, evaluated)
	assert.Len(t, m.AllResults(), 1)
	require.Len(t, m.Log(), 1)
	result, matched := m.Result()
	assert.True(t, matched)
	assert.Equal(t, "first", result)
}

func TestWithoutShortCircuit(t *testing.T) {
	m := New[int, string](4, WithoutShortCircuit[int]()).
		Case(predicate.EqualTo(4), func() string { return "four" }).
		Case(predicate.EqualTo(5), func() string { return "five" }).
		Case(predicate.Between(0, 10), func() string { return "small" })

	assert.Equal(t, []string{"four", "small"}, m.AllResults())
	result, matched := m.Result()
	assert.True(t, matched)
	assert.Equal(t, "small", result)

	// Default remains a no-op as soon as anything matched.
	assert.Equal(t, "small", m.Default(func() string { return "other" }))
	assert.Equal(t, []string{"four", "small"}, m.AllResults())
}

func TestLogCompleteness(t *testing.T) {
	label := faker.Word()
	m := New[int, string](7, WithoutShortCircuit[int]()).
		Case(predicate.EqualTo(1), func() string { return "one" }).
		Case(predicate.EqualTo(7), func() string { return "seven" }, WithLabel[int](label)).
		CaseDo(predicate.Between(0, 10), func() {})

	log := m.Log()
	// The non-matching clause leaves no entry.
	require.Len(t, log, 2)
	for i := range log {
		assert.Equal(t, i, log[i].Index)
		assert.Equal(t, 7, log[i].Subject)
		assert.False(t, log[i].Timestamp.IsZero())
		assert.NoError(t, log[i].Err)
	}
	assert.Equal(t, label, log[0].Label)
	require.NotNil(t, log[0].Result)
	assert.Equal(t, "seven", *log[0].Result)
	// Side-effecting match: present in the log, but carries no result.
	assert.Equal(t, "case 3", log[1].Label)
	assert.Nil(t, log[1].Result)
}

func TestCaseDo(t *testing.T) {
	ran := false
	m := New[string, string](faker.Word()).
		CaseDo(predicate.NotEmpty[string](), func() { ran = true })
	assert.True(t, ran)
	assert.True(t, m.Matched())
	assert.Empty(t, m.AllResults())
	result, matched := m.Result()
	assert.True(t, matched)
	assert.Empty(t, result)
}

func TestCaseValue(t *testing.T) {
	subject := []string{faker.Word(), faker.Word()}
	m := New[[]string, int](subject).
		CaseValue([]string{"other"}, func() int { return 1 }).
		CaseValue(append([]string{}, subject...), func() int { return 2 })
	result, matched := m.Result()
	assert.True(t, matched)
	assert.Equal(t, 2, result)

	ran := false
	New[int, int](3).CaseValueDo(3, func() { ran = true })
	assert.True(t, ran)
}

type shape interface {
	area() float64
}

type square struct {
	side float64
}

func (s square) area() float64 { return s.side * s.side }

func TestCaseType(t *testing.T) {
	var subject any = square{side: 2}
	m := New[any, string](subject)
	CaseType[string](m, func(string) string { return "text" })
	CaseType[square](m, func(s square) string {
		assert.Equal(t, 4.0, s.area())
		return "square"
	})
	result, matched := m.Result()
	assert.True(t, matched)
	assert.Equal(t, "square", result)

	log := m.Log()
	require.Len(t, log, 1)
	assert.Equal(t, "match.square", log[0].Label)

	// Interface satisfaction also narrows.
	narrowed := false
	m2 := New[any, string](subject)
	CaseTypeDo[shape](m2, func(s shape) {
		narrowed = true
		assert.Equal(t, 4.0, s.area())
	})
	assert.True(t, narrowed)
	assert.Equal(t, "match.shape", m2.Log()[0].Label)
}

func TestDefault(t *testing.T) {
	m := New[int, string](9)
	assert.Equal(t, "fallback", m.Default(func() string { return "fallback" }))
	assert.True(t, m.Matched())
	require.Len(t, m.Log(), 1)
	assert.Equal(t, "default", m.Log()[0].Label)

	// A second default is a pure no-op.
	assert.Equal(t, "fallback", m.Default(func() string { return "again" }))
	assert.Len(t, m.Log(), 1)
}

func TestDefaultDo(t *testing.T) {
	ran := false
	m := New[int, string](9)
	m.DefaultDo(func() { ran = true })
	assert.True(t, ran)
	assert.True(t, m.Matched())
	require.Len(t, m.Log(), 1)
	assert.Nil(t, m.Log()[0].Result)
	assert.NoError(t, m.Log()[0].Err)

	ran = false
	m.DefaultDo(func() { ran = true })
	assert.False(t, ran)
}

func TestNoMatchNoDefault(t *testing.T) {
	m := New[int, string](9).
		Case(predicate.EqualTo(1), func() string { return "one" })
	result, matched := m.Result()
	assert.False(t, matched)
	assert.Empty(t, result)
	assert.Empty(t, m.Log())
}

func TestErrorIsolation(t *testing.T) {
	failure := errors.New(faker.Sentence())
	m := New[int, string](42, WithLogger[int](testr.New(t))).
		CaseTry(predicate.EqualTo(42), func() (string, error) { return "", failure }, WithLabel[int]("failing")).
		Case(predicate.Between(10, 100), func() string { return "Big range" })

	// The failing clause never aborts the chain nor counts as a match.
	result, matched := m.Result()
	assert.True(t, matched)
	assert.Equal(t, "Big range", result)

	log := m.Log()
	require.Len(t, log, 2)
	assert.Equal(t, "failing", log[0].Label)
	errortest.AssertError(t, log[0].Err, failure)
	assert.Nil(t, log[0].Result)
	errortest.AssertError(t, m.Err(), failure)
}

func TestPanicIsolation(t *testing.T) {
	m := New[int, string](42, WithoutShortCircuit[int]()).
		Case(func(int) bool { panic("broken predicate") }, func() string { return "never" }).
		Case(predicate.EqualTo(42), func() string { panic("broken body") }).
		Case(predicate.Between(10, 100), func() string { return "Big range" })

	assert.Equal(t, []string{"Big range"}, m.AllResults())
	log := m.Log()
	require.Len(t, log, 3)
	errortest.AssertError(t, log[0].Err, commonerrors.ErrUnexpected)
	errortest.AssertError(t, log[1].Err, commonerrors.ErrUnexpected)
	assert.NoError(t, log[2].Err)
}

func TestErrorHandlerChain(t *testing.T) {
	failure := errors.New(faker.Sentence())
	localCalls, globalCalls := 0, 0

	// A local handler claiming the error keeps it out of Err().
	m := New[int, string](42, WithErrorHandler[int](func(error, int) bool { globalCalls++; return false })).
		CaseTry(predicate.EqualTo(42), func() (string, error) { return "", failure },
			WithClauseErrorHandler[int](func(err error, subject int) bool {
				localCalls++
				assert.Equal(t, 42, subject)
				errortest.AssertError(t, err, failure)
				return true
			}))
	assert.Equal(t, 1, localCalls)
	assert.Zero(t, globalCalls)
	assert.NoError(t, m.Err())
	require.Len(t, m.Log(), 1)
	errortest.AssertError(t, m.Log()[0].Err, failure)

	// Without a local handler the session handler is offered the error.
	m = New[int, string](42, WithErrorHandler[int](func(error, int) bool { globalCalls++; return true })).
		CaseTry(predicate.EqualTo(42), func() (string, error) { return "", failure })
	assert.Equal(t, 1, globalCalls)
	assert.NoError(t, m.Err())

	// Unhandled errors are swallowed after logging under the default policy.
	m = New[int, string](42).
		CaseTry(predicate.EqualTo(42), func() (string, error) { return "", failure }).
		Case(predicate.EqualTo(42), func() string { return "recovered" })
	errortest.AssertError(t, m.Err(), failure)
	result, matched := m.Result()
	assert.True(t, matched)
	assert.Equal(t, "recovered", result)
}

func TestRethrowPolicy(t *testing.T) {
	failure := errors.New(faker.Sentence())
	m := New[int, string](42, WithErrorPolicy[int](Rethrow))
	recovered := func() (recovered error) {
		defer func() {
			if r := recover(); r != nil {
				recovered, _ = r.(error)
			}
		}()
		m.CaseTry(predicate.EqualTo(42), func() (string, error) { return "", failure })
		return
	}()
	errortest.AssertError(t, recovered, failure)
	// The error was logged before being rethrown.
	require.Len(t, m.Log(), 1)
	errortest.AssertError(t, m.Log()[0].Err, failure)

	// A handled error is not rethrown.
	assert.NotPanics(t, func() {
		New[int, string](42,
			WithErrorPolicy[int](Rethrow),
			WithErrorHandler[int](func(error, int) bool { return true })).
			CaseTry(predicate.EqualTo(42), func() (string, error) { return "", failure })
	})
}

func TestMustResult(t *testing.T) {
	m := New[int, string](42).
		Case(predicate.EqualTo(42), func() string { return "match" })
	assert.Equal(t, "match", m.MustResult())

	unmatched := New[int, string](1).
		Case(predicate.EqualTo(42), func() string { return "match" })
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		errortest.AssertError(t, err, commonerrors.ErrUnmatched)
	}()
	unmatched.MustResult()
}

func TestUndefinedClause(t *testing.T) {
	m := New[int, string](42).
		Case(nil, func() string { return "never" }).
		Case(predicate.EqualTo(42), nil)
	assert.False(t, m.Matched())
	log := m.Log()
	require.Len(t, log, 2)
	errortest.AssertError(t, log[0].Err, commonerrors.ErrUndefined)
	errortest.AssertError(t, log[1].Err, commonerrors.ErrUndefined)
}

func TestSubject(t *testing.T) {
	word := faker.Word()
	assert.Equal(t, word, New[string, string](word).Subject())
}
