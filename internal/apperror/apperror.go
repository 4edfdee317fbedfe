// Package apperror defines the error taxonomy shared by repositories,
// services and controllers: NotFound, PreconditionFailed, Validation,
// Transient and Internal. Repositories classify storage failures into this
// taxonomy at the boundary; controllers map kinds onto HTTP statuses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindPreconditionFailed
	KindValidation
	KindTransient
)

type Error struct {
	Kind    Kind
	Code    string // machine-readable, stable for clients
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func PreconditionFailed(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindPreconditionFailed, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Validation(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Transient(code, message string, err error) *Error {
	return &Error{Kind: KindTransient, Code: code, Message: message, Err: err}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: "INTERNAL", Message: message, Err: err}
}

// KindOf unwraps err looking for a taxonomy Error; anything unclassified is
// treated as internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message; wrapped driver internals stay
// out of responses.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "unexpected error"
}

func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL"
}

func IsNotFound(err error) bool  { return KindOf(err) == KindNotFound }
func IsTransient(err error) bool { return KindOf(err) == KindTransient }

// HTTPStatus maps an error kind onto the wire status. Precondition failures
// surface as 403: the caller must change state (publish the test, get resume
// approval) before retrying, which is distinct from a malformed request.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindPreconditionFailed:
		return http.StatusForbidden
	case KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
