// Package errors is the coded error type shared by repos, services and transports.
// Import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// Code is the machine readable class of an error, stable on the wire
type Code string

const (
	CodeInternal     Code = "internal"
	CodeUnavailable  Code = "unavailable"
	CodeUnauthorized Code = "unauthorized"
	CodeInvalid      Code = "invalid_argument"
	CodeValidation   Code = "validation"
	CodeBadJSON      Code = "bad_json"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeDB           Code = "db"
)

// Status maps a code to the HTTP status transports answer with
func (c Code) Status() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalid:
		return http.StatusUnprocessableEntity
	case CodeValidation, CodeBadJSON:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrNotFound is returned by store helpers when a single-row read finds nothing
var ErrNotFound = New(CodeNotFound, "not found")

// Error carries a code, a caller facing message, an optional offending field
// and the wrapped cause
type Error struct {
	code  Code
	msg   string
	field string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

// Code returns the error class
func (e *Error) Code() Code { return e.code }

// Message returns the message without the cause chain
func (e *Error) Message() string { return e.msg }

// Field names the offending input, empty when not tied to one
func (e *Error) Field() string { return e.field }

// New returns a coded error
func New(code Code, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a coded error with a formatted message
func Newf(code Code, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap attaches a code and message to cause; nil cause yields nil
func Wrap(cause error, code Code, msg string) error {
	if cause == nil {
		return nil
	}
	return &Error{code: code, msg: msg, cause: cause}
}

// As finds the first *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns err's code; foreign errors are CodeInternal
func CodeOf(err error) Code {
	if e, ok := As(err); ok {
		return e.code
	}
	return CodeInternal
}

// IsCode reports whether err carries code
func IsCode(err error, code Code) bool { return err != nil && CodeOf(err) == code }

// HTTPStatus returns the status for err, 200 for nil
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return CodeOf(err).Status()
}

// WithField returns a copy of err tagged with field. Foreign errors are
// wrapped as CodeInternal first
func WithField(err error, field string) error {
	if err == nil {
		return nil
	}
	e, ok := As(err)
	if !ok {
		return &Error{code: CodeInternal, msg: err.Error(), field: field, cause: err}
	}
	c := *e
	c.field = field
	return &c
}

// NotFoundf reports a missing resource
func NotFoundf(format string, a ...any) error { return Newf(CodeNotFound, format, a...) }

// InvalidArgf reports a malformed but well-typed argument
func InvalidArgf(format string, a ...any) error { return Newf(CodeInvalid, format, a...) }

// Unauthorizedf reports a request with no usable caller identity
func Unauthorizedf(format string, a ...any) error { return Newf(CodeUnauthorized, format, a...) }

// BadJSONf reports a body that could not be decoded
func BadJSONf(format string, a ...any) error { return Newf(CodeBadJSON, format, a...) }
