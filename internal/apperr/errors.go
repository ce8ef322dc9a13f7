// Package apperr defines the error kinds that cross the route boundary.
// Services return *Error values; httpx turns them into responses.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindAuthenticationFailed
	KindForbidden
	KindBadRequest
	KindConflict
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindAuthenticationFailed:
		return "authentication_failed"
	case KindForbidden:
		return "forbidden"
	case KindBadRequest:
		return "bad_request"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Messages shared by several routes.
const (
	MsgAuthenticationFailed = "Authentication failed"
	MsgUnauthorized         = "Unauthorized"
	MsgMissingID            = "Missing id"
	MsgInternal             = "Internal server error"
)

// Error is a typed application error. Message is safe to show to clients;
// Err carries the underlying cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so errors.Is(err, apperr.NotFound(""))
// style checks work regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func AuthenticationFailed() *Error { return newError(KindAuthenticationFailed, MsgAuthenticationFailed) }
func Forbidden() *Error            { return newError(KindForbidden, MsgUnauthorized) }
func MissingID() *Error            { return newError(KindBadRequest, MsgMissingID) }
func BadRequest(msg string) *Error { return newError(KindBadRequest, msg) }
func Conflict(msg string) *Error   { return newError(KindConflict, msg) }
func NotFound(msg string) *Error   { return newError(KindNotFound, msg) }

// Invalid reports field violations as a BadRequest.
func Invalid(details any) *Error {
	return &Error{Kind: KindBadRequest, Message: "Invalid input", Details: details}
}

// Internal wraps an unexpected failure. The cause never reaches the client.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: MsgInternal, Err: err}
}

// KindOf returns the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// As returns err as *Error, wrapping unknown errors as Internal.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
