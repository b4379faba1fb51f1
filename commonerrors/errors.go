// Package commonerrors defines the error taxonomy used across the library.
// Errors are built by wrapping one of the sentinel values below so that
// callers can categorise failures with errors.Is regardless of the message.
package commonerrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUndefined  = errors.New("undefined")
	ErrInvalid    = errors.New("invalid")
	ErrUnexpected = errors.New("unexpected")
	ErrUnmatched  = errors.New("unmatched")
	ErrCancelled  = errors.New("cancelled")
	ErrTimeout    = errors.New("timeout")
	ErrConflict   = errors.New("conflict")
)

// New returns an error wrapping the sentinel errType with a description.
func New(errType error, description string) error {
	return fmt.Errorf("%w: %v", errType, description)
}

// Newf returns an error wrapping the sentinel errType with a formatted description.
func Newf(errType error, format string, args ...any) error {
	return fmt.Errorf("%w: %v", errType, fmt.Sprintf(format, args...))
}

// WrapError wraps err with the sentinel errType and an optional message.
// If err is nil, it behaves like New.
func WrapError(errType, err error, message string) error {
	if err == nil {
		return New(errType, message)
	}
	if message == "" {
		return fmt.Errorf("%w: %v", errType, err.Error())
	}
	return fmt.Errorf("%w: %v: %v", errType, message, err.Error())
}

// Any returns whether the target error corresponds to any of the errors provided.
func Any(target error, err ...error) bool {
	for _, e := range err {
		if errors.Is(e, target) || errors.Is(target, e) {
			return true
		}
	}
	return false
}

// None returns whether the target error corresponds to none of the errors provided.
func None(target error, err ...error) bool {
	for _, e := range err {
		if errors.Is(e, target) || errors.Is(target, e) {
			return false
		}
	}
	return true
}

// CorrespondTo determines whether the target error's description contains
// any of the descriptions provided. The comparison is case-insensitive.
func CorrespondTo(target error, description ...string) bool {
	if target == nil {
		return false
	}
	errDesc := strings.ToLower(target.Error())
	for _, d := range description {
		if strings.Contains(errDesc, strings.ToLower(d)) {
			return true
		}
	}
	return false
}

// Ignore returns nil if the error corresponds to any of the errors to ignore.
func Ignore(target error, ignore ...error) error {
	if Any(target, ignore...) {
		return nil
	}
	return target
}

// ErrFromContext determines the error to report from a context's state:
// a deadline overrun maps to ErrTimeout and a cancellation to ErrCancelled.
func ErrFromContext(ctx context.Context) error {
	err := ctx.Err()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return WrapError(ErrTimeout, context.Cause(ctx), "")
	default:
		return WrapError(ErrCancelled, context.Cause(ctx), "")
	}
}
