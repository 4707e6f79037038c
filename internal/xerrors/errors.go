// Package xerrors carries HTTP-facing errors from handlers to WriteError.
package xerrors

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// Error is an error with the status, stable code and client-facing message
// it should be reported with. Cause is logged, never sent.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	Cause      error

	// Fields holds per-field validation messages.
	Fields map[string]string
	// RetryAfter and Reason are set on rate limit rejections.
	RetryAfter time.Duration
	Reason     string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func Unauthorized(opts ...Option) *Error       { return New(http.StatusUnauthorized, opts...) }
func Forbidden(opts ...Option) *Error          { return New(http.StatusForbidden, opts...) }
func BadRequest(opts ...Option) *Error         { return New(http.StatusBadRequest, opts...) }
func NotFound(opts ...Option) *Error           { return New(http.StatusNotFound, opts...) }
func Conflict(opts ...Option) *Error           { return New(http.StatusConflict, opts...) }
func Internal(opts ...Option) *Error           { return New(http.StatusInternalServerError, opts...) }
func ServiceUnavailable(opts ...Option) *Error { return New(http.StatusServiceUnavailable, opts...) }
func TooManyRequests(opts ...Option) *Error    { return New(http.StatusTooManyRequests, opts...) }

func Validation(fields map[string]string, opts ...Option) *Error {
	e := New(http.StatusUnprocessableEntity, opts...)
	e.Fields = fields
	return e
}

// New builds an error for status. Message and Code default to the status
// text, e.g. "not found" and "not_found".
func New(status int, opts ...Option) *Error {
	text := strings.ToLower(http.StatusText(status))
	e := &Error{
		StatusCode: status,
		Code:       strings.ReplaceAll(text, " ", "_"),
		Message:    text,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type Option func(*Error)

func WithMessage(msg string) Option { return func(e *Error) { e.Message = msg } }
func WithCode(code string) Option   { return func(e *Error) { e.Code = code } }
func WithCause(err error) Option    { return func(e *Error) { e.Cause = err } }

func WithRetryAfter(d time.Duration) Option { return func(e *Error) { e.RetryAfter = d } }
func WithReason(reason string) Option       { return func(e *Error) { e.Reason = reason } }

// As returns the first *Error in err's chain, or nil.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
