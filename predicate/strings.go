package predicate

import (
	"regexp"
	"strings"
)

// Contains returns a predicate checking whether a string contains sub.
func Contains[T ~string](sub string) func(T) bool {
	return func(v T) bool {
		return strings.Contains(string(v), sub)
	}
}

// HasPrefix returns a predicate checking whether a string starts with prefix.
func HasPrefix[T ~string](prefix string) func(T) bool {
	return func(v T) bool {
		return strings.HasPrefix(string(v), prefix)
	}
}

// HasSuffix returns a predicate checking whether a string ends with suffix.
func HasSuffix[T ~string](suffix string) func(T) bool {
	return func(v T) bool {
		return strings.HasSuffix(string(v), suffix)
	}
}

// EqualFold returns a predicate checking whether a string equals other
// under Unicode case-folding.
func EqualFold[T ~string](other string) func(T) bool {
	return func(v T) bool {
		return strings.EqualFold(string(v), other)
	}
}

// Matches returns a predicate checking whether a string matches re.
// A nil expression matches nothing.
func Matches[T ~string](re *regexp.Regexp) func(T) bool {
	return func(v T) bool {
		if re == nil {
			return false
		}
		return re.MatchString(string(v))
	}
}

// MatchesPattern returns a predicate checking whether a string matches the
// pattern. The pattern is compiled once; like regexp.MustCompile, an
// invalid pattern panics.
func MatchesPattern[T ~string](pattern string) func(T) bool {
	return Matches[T](regexp.MustCompile(pattern))
}
