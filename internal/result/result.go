// Package result implements the success/failure envelope returned by every
// service operation.
//
// A Result is either Ok, holding data, or Err, holding one or more Errors.
// Fields are unexported so that the two states can only be produced by the
// constructors in this package and never mixed afterwards.
package result

import (
	"time"
)

const (
	DefaultSuccessMessage = "Operation succeeded"
	DefaultFailureMessage = "Operation failed"
	DefaultFaultMessage   = "An unexpected error occurred"
)

// Void is the payload of results that carry no data.
type Void struct{}

// Result is the outcome of a service operation.
type Result[T any] struct {
	ok        bool
	message   string
	data      T
	errors    []Error
	timestamp time.Time
}

// Success returns an Ok result wrapping data.
func Success[T any](data T, message ...string) Result[T] {
	return Result[T]{
		ok:        true,
		message:   pick(message, DefaultSuccessMessage),
		data:      data,
		timestamp: now(),
	}
}

// Done returns an Ok result without data.
func Done(message ...string) Result[Void] {
	return Success(Void{}, message...)
}

// Fail returns an Err result holding a single error built from code and message.
func Fail[T any](code Code, message string) Result[T] {
	return FailWith[T](Error{Code: code, Message: message})
}

// FailWith returns an Err result holding e. The envelope message is e's message.
func FailWith[T any](e Error) Result[T] {
	return Result[T]{
		message:   e.Message,
		errors:    []Error{e},
		timestamp: now(),
	}
}

// FailMany returns an Err result holding errs, e.g. several field validation
// errors at once. An empty list still yields a failure with an internal error.
func FailMany[T any](errs []Error, message ...string) Result[T] {
	msg := pick(message, DefaultFailureMessage)
	if len(errs) == 0 {
		errs = []Error{{Code: CodeInternal, Message: msg}}
	}
	return Result[T]{
		message:   msg,
		errors:    append([]Error(nil), errs...),
		timestamp: now(),
	}
}

// FailErr wraps an unanticipated fault as an Err result.
func FailErr[T any](err error, message ...string) Result[T] {
	return Result[T]{
		message:   pick(message, DefaultFaultMessage),
		errors:    []Error{FromError(err)},
		timestamp: now(),
	}
}

// FromPtr converts a nullable value into a Result: nil yields a DATA_NULL
// failure, anything else a success holding the pointed-to value.
func FromPtr[T any](v *T) Result[T] {
	if v == nil {
		return Fail[T](CodeDataNull, "Data is null")
	}
	return Success(*v)
}

// Map transforms the data of an Ok result. Err results keep their errors,
// message and timestamp.
func Map[A, B any](r Result[A], fn func(A) B) Result[B] {
	if !r.ok {
		return Result[B]{message: r.message, errors: r.errors, timestamp: r.timestamp}
	}
	return Result[B]{ok: true, message: r.message, data: fn(r.data), timestamp: r.timestamp}
}

// IsSuccess reports whether r is Ok.
func (r Result[T]) IsSuccess() bool { return r.ok }

// Data returns the payload and true for Ok results, or the zero value and
// false for Err results.
func (r Result[T]) Data() (T, bool) {
	if !r.ok {
		var zero T
		return zero, false
	}
	return r.data, true
}

// Errors returns a copy of the errors of an Err result; nil for Ok results.
func (r Result[T]) Errors() []Error {
	if r.ok {
		return nil
	}
	return append([]Error(nil), r.errors...)
}

// FirstCode returns the code of the first error, or "" for Ok results.
func (r Result[T]) FirstCode() Code {
	if r.ok || len(r.errors) == 0 {
		return ""
	}
	return r.errors[0].Code
}

func (r Result[T]) Message() string      { return r.message }
func (r Result[T]) Timestamp() time.Time { return r.timestamp }

func pick(message []string, fallback string) string {
	if len(message) > 0 && message[0] != "" {
		return message[0]
	}
	return fallback
}

var now = func() time.Time { return time.Now().UTC() }
