package httpx

import (
	"fmt"
	"net/http"
)

// Kind classifies a request failure. Every error that crosses the handler
// boundary carries one, and the HTTP status is derived from it.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthorization
	KindNotFound
	KindConflict
	KindStorage
)

// Error is the request-scoped failure type shared by all handlers. Message is
// what the caller sees; Err holds internal detail that is logged and never
// written to the wire.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to its HTTP status code. Conflicts surface as
// 400, matching what signup clients already handle.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Storage wraps an underlying store failure. The caller-facing message is
// deliberately generic; the wrapped error goes to the log, not the response.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "internal server error", Err: err}
}
