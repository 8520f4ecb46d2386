// Package httpkit is what modules mount routes with; they never import the
// platform http package or chi directly
package httpkit

import (
	"net/http"

	phttp "caserelay/internal/platform/net/http"
	"caserelay/internal/platform/net/http/bind"
)

type (
	// Envelope is the response body every endpoint writes
	Envelope = phttp.Envelope
	// Page carries list pagination
	Page     = phttp.Page
	Response = phttp.Response
	Handler  = phttp.Handler
	Router   = phttp.Router
)

// OK, Created, NoContent, Error and List build responses for Handle
func OK(data any) Response      { return phttp.OK(data) }
func Created(data any) Response { return phttp.Created(data) }
func NoContent() Response       { return phttp.NoContent() }
func Error(err error) Response  { return phttp.Error(err) }
func List(items any, count int, cursor string, hasMore bool) Response {
	return phttp.List(items, count, cursor, hasMore)
}

// JSON binds and validates the body into T, then answers like Call
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Call(func(r *http.Request) (any, error) {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return nil, err
		}
		return fn(r, in)
	})
}

// Call answers with fn's Response as is, any other value as 200, or the error envelope
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		return asResponse(out)
	})
}

// Handle adapts a Response-returning func directly
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

func asResponse(v any) Response {
	if resp, ok := v.(Response); ok {
		return resp
	}
	return phttp.OK(v)
}
