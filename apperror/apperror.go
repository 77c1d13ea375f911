// Package apperror carries the domain error taxonomy shared by services and
// the HTTP layer: a kind that decides the HTTP status, plus the status code
// embedded in the response envelope.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindUnsupported
	KindConflict
)

// Embedded envelope codes understood by existing clients.
const (
	CodeSuccess = 200
	CodeInvalid = 220
	CodeFailed  = 230
)

type Error struct {
	Kind    Kind
	Code    int
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error kind to a response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUnsupported:
		return http.StatusNotAcceptable
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validation(code int, msg string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: msg}
}

func ValidationFields(msg string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: CodeInvalid, Message: msg, Fields: fields}
}

func NotFound(code int, msg string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Code: CodeFailed, Message: msg}
}

func Unsupported(msg string) *Error {
	return &Error{Kind: KindUnsupported, Code: CodeFailed, Message: msg}
}

func Conflict(code int, msg string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: msg}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeFailed, Message: msg, Err: err}
}

// As extracts an *Error from err. Anything else is reported as an internal
// error so callers always get a renderable value.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("Failed to process your request!", err)
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
