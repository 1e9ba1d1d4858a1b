package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for the transport layer
type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindForbidden  Kind = "FORBIDDEN"
	KindValidation Kind = "VALIDATION_ERROR"
	KindInternal   Kind = "INTERNAL_ERROR"
)

// Error is the typed failure returned across the service boundary.
// Code is stable and machine-readable; Message is diagnostic text only.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

func NotFound(code, message string, err error) *Error {
	return New(KindNotFound, code, message, err)
}

func Forbidden(code, message string, err error) *Error {
	return New(KindForbidden, code, message, err)
}

func Validation(code, message string, err error) *Error {
	return New(KindValidation, code, message, err)
}

// KindOf returns the kind of err, KindInternal for untyped errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps a kind to its status code
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
