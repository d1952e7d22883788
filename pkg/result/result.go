// Package result is the outcome type returned by every application service.
//
// A Result either carries data (OK) or a failure Kind with a message and an
// optional list of detail messages. Controllers translate the Kind into an
// HTTP status with Status; services never deal with HTTP.
package result

import "net/http"

// Kind classifies a failure.
type Kind int

const (
	KindNone Kind = iota
	// NotFound: the addressed entity does not exist.
	NotFound
	// Validation: malformed or conflicting input (duplicate code, empty order,
	// insufficient stock...).
	Validation
	// InvalidCredentials: login failed. Deliberately vague.
	InvalidCredentials
	// Conflict: the operation is blocked by referencing rows.
	Conflict
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Validation:
		return "validation"
	case InvalidCredentials:
		return "invalid_credentials"
	case Conflict:
		return "conflict"
	}
	return "none"
}

// Status maps a failure kind to the HTTP status the API answers with.
func (k Kind) Status() int {
	switch k {
	case KindNone:
		return http.StatusOK
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// Result is the uniform success/failure envelope.
type Result[T any] struct {
	OK      bool
	Data    T
	Kind    Kind
	Message string
	Errors  []string
}

// Success wraps data in a successful Result.
func Success[T any](data T) Result[T] {
	return Result[T]{OK: true, Data: data}
}

// Failure builds a failed Result with a single message.
func Failure[T any](kind Kind, message string) Result[T] {
	return Result[T]{Kind: kind, Message: message}
}

// Failures builds a failed Result from a list of messages. The first one
// doubles as the summary message.
func Failures[T any](kind Kind, messages ...string) Result[T] {
	r := Result[T]{Kind: kind, Errors: messages}
	if len(messages) > 0 {
		r.Message = messages[0]
	}
	return r
}

// Status is shorthand for r.Kind.Status().
func (r Result[T]) Status() int {
	return r.Kind.Status()
}
