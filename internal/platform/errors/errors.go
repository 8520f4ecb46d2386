// Package errors is the project error type. Import it as perr.
//
// An *Error carries a caller facing message and an ErrorCode, plus optional
// field, op and detail. Only code, message and field ever reach a client; op,
// detail and the wrapped cause are diagnostics.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failure. The numeric value is internal, the name is the wire value
type ErrorCode uint16

// Codes, in wire order. Each maps to one HTTP status through Status.
const (
	// ErrorCodeUnknown is the default for foreign and unclassified errors
	ErrorCodeUnknown ErrorCode = iota
	// ErrorCodePanic is a recovered handler panic
	ErrorCodePanic
	// ErrorCodeConfig covers a missing or unusable credential
	ErrorCodeConfig
	// ErrorCodeValidation is bad caller input, local or upstream
	ErrorCodeValidation
	// ErrorCodeJSON is a request body that does not decode
	ErrorCodeJSON
	// ErrorCodeUnauthorized is a rejected credential
	ErrorCodeUnauthorized
	// ErrorCodeNotFound is a database or page the integration cannot see
	ErrorCodeNotFound
	// ErrorCodeNoDataSource is a database exposing zero data sources
	ErrorCodeNoDataSource
	// ErrorCodeConflict is an ambiguous data source choice
	ErrorCodeConflict
	// ErrorCodeMalformedResponse is an upstream body that is not the expected JSON
	ErrorCodeMalformedResponse
	// ErrorCodeTooManyRequests is an upstream 429
	ErrorCodeTooManyRequests
	// ErrorCodeUnavailable is a network failure or an unreachable dependency
	ErrorCodeUnavailable
	// ErrorCodeTimeout is a call that outlived its deadline
	ErrorCodeTimeout
	// ErrorCodeUpstream is any other non-2xx upstream answer
	ErrorCodeUpstream
)

type codeInfo struct {
	name      string
	status    int
	retryable bool
}

var codes = [...]codeInfo{
	ErrorCodeUnknown:           {"unknown", http.StatusInternalServerError, false},
	ErrorCodePanic:             {"panic", http.StatusInternalServerError, false},
	ErrorCodeConfig:            {"config_error", http.StatusInternalServerError, false},
	ErrorCodeValidation:        {"validation_error", http.StatusBadRequest, false},
	ErrorCodeJSON:              {"json_error", http.StatusBadRequest, false},
	ErrorCodeUnauthorized:      {"unauthorized", http.StatusUnauthorized, false},
	ErrorCodeNotFound:          {"not_found", http.StatusNotFound, false},
	ErrorCodeNoDataSource:      {"no_data_source", http.StatusBadRequest, false},
	ErrorCodeConflict:          {"conflict", http.StatusConflict, false},
	ErrorCodeMalformedResponse: {"upstream_malformed_response", http.StatusBadGateway, false},
	ErrorCodeTooManyRequests:   {"rate_limited", http.StatusTooManyRequests, true},
	ErrorCodeUnavailable:       {"unavailable", http.StatusServiceUnavailable, true},
	ErrorCodeTimeout:           {"timeout", http.StatusGatewayTimeout, true},
	ErrorCodeUpstream:          {"upstream_error", http.StatusBadGateway, false},
}

func (c ErrorCode) info() (codeInfo, bool) {
	if int(c) < len(codes) {
		return codes[c], true
	}
	return codeInfo{}, false
}

// String is the wire name, or code_N for values outside the table
func (c ErrorCode) String() string {
	if i, ok := c.info(); ok {
		return i.name
	}
	return fmt.Sprintf("code_%d", uint16(c))
}

// MarshalText renders the code by name
func (c ErrorCode) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Status is the HTTP status for c; unknown codes are 500
func (c ErrorCode) Status() int {
	if i, ok := c.info(); ok {
		return i.status
	}
	return http.StatusInternalServerError
}

// Error is the structured error
type Error struct {
	code   ErrorCode
	msg    string
	field  string
	op     string
	detail string
	orig   error
}

// Wire is what a client sees
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// Diagnostics is the development only view
type Diagnostics struct {
	Op     string `json:"op,omitempty"`
	Cause  string `json:"cause,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Error is the message followed by the cause's text, if any
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig == nil:
		return e.msg
	}
	return e.msg + ": " + e.orig.Error()
}

// Unwrap returns the wrapped cause
func (e *Error) Unwrap() error { return e.orig }

// Code is the classification
func (e *Error) Code() ErrorCode { return e.code }

// Message is the caller facing text
func (e *Error) Message() string { return e.msg }

// Field names the offending input, empty when none applies
func (e *Error) Field() string { return e.field }

// Op names the failing operation, e.g. "notion GET /databases/{id}"
func (e *Error) Op() string { return e.op }

// Detail is free form diagnostic text
func (e *Error) Detail() string { return e.detail }

func (e *Error) wire() Wire { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// As finds the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf is ErrorCodeUnknown for nil and foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err's outermost *Error carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is the status for err's code; foreign errors are 500
func HTTPStatus(err error) int { return CodeOf(err).Status() }

// Retryable reports whether the same call may succeed later. Nothing in this
// repo retries; callers decide.
func Retryable(err error) bool {
	i, _ := CodeOf(err).info()
	return i.retryable
}

// WireFrom never exposes the text of a foreign error
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.wire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: "Internal server error"}
}

// HTTP is HTTPStatus and WireFrom together; nil is a 200
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err)
}

// DiagnosticsFrom collects op, detail and cause for logs and dev responses
func DiagnosticsFrom(err error) Diagnostics {
	if err == nil {
		return Diagnostics{}
	}
	e, ok := As(err)
	if !ok {
		return Diagnostics{Cause: err.Error()}
	}
	d := Diagnostics{Op: e.op, Detail: e.detail}
	if e.orig != nil {
		d.Cause = e.orig.Error()
	}
	return d
}

// The With* helpers copy the *Error; a foreign err comes back unchanged.

// WithField sets the offending input name
func WithField(err error, field string) error {
	return edit(err, func(e *Error) { e.field = field })
}

// WithOp sets the failing operation
func WithOp(err error, op string) error {
	return edit(err, func(e *Error) { e.op = op })
}

// WithDetail sets diagnostic text
func WithDetail(err error, detail string) error {
	return edit(err, func(e *Error) { e.detail = detail })
}

func edit(err error, fn func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	fn(&c)
	return &c
}

// Remessage swaps the client message and keeps everything else; err becomes the cause
func Remessage(err error, msg string) error {
	out := &Error{code: ErrorCodeUnknown, msg: msg, orig: err}
	if e, ok := As(err); ok {
		out.code, out.field, out.op, out.detail = e.code, e.field, e.op, e.detail
	}
	return out
}

// New builds an *Error with no cause
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with a format
func Newf(code ErrorCode, format string, a ...any) error {
	return New(code, fmt.Sprintf(format, a...))
}

// Wrap keeps orig as the cause; its text shows in Error() but never on the wire
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Shorthands for Newf with a fixed code.

// NotFoundf is ErrorCodeNotFound
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// Validationf is ErrorCodeValidation
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// Configf is ErrorCodeConfig
func Configf(format string, a ...any) error { return Newf(ErrorCodeConfig, format, a...) }

// JSONErrf is ErrorCodeJSON
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf is ErrorCodePanic
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unauthorizedf is ErrorCodeUnauthorized
func Unauthorizedf(format string, a ...any) error { return Newf(ErrorCodeUnauthorized, format, a...) }

// Conflictf is ErrorCodeConflict
func Conflictf(format string, a ...any) error { return Newf(ErrorCodeConflict, format, a...) }

// NoDataSourcef is ErrorCodeNoDataSource
func NoDataSourcef(format string, a ...any) error { return Newf(ErrorCodeNoDataSource, format, a...) }

// Malformedf is ErrorCodeMalformedResponse
func Malformedf(format string, a ...any) error { return Newf(ErrorCodeMalformedResponse, format, a...) }

// Upstreamf is ErrorCodeUpstream
func Upstreamf(format string, a ...any) error { return Newf(ErrorCodeUpstream, format, a...) }

// Internalf is ErrorCodeUnknown
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }
