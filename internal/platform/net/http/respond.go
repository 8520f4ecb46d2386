// Package http holds the chi router seam, the server and the response envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"
	"sync/atomic"

	perr "caserelay/internal/platform/errors"
	pnet "caserelay/internal/platform/net"
)

// Envelope is the body of every API response. Error is always present
type Envelope struct {
	Error     bool              `json:"error"`
	Message   string            `json:"message,omitempty"`
	Code      string            `json:"code,omitempty"`
	Field     string            `json:"field,omitempty"`
	Retryable bool              `json:"retryable,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Data      any               `json:"data,omitempty"`
	Page      *Page             `json:"page,omitempty"`
	Details   *perr.Diagnostics `json:"details,omitempty"`
}

// Page is cursor pagination: Count items in this page, Cursor resumes after it
type Page struct {
	Count   int    `json:"count"`
	Cursor  string `json:"cursor,omitempty"`
	HasMore bool   `json:"has_more"`
}

var diagnostics atomic.Bool

// SetDiagnostics adds the details block to error envelopes; development only
func SetDiagnostics(on bool) { diagnostics.Store(on) }

// Diagnostics reports the current setting
func Diagnostics() bool { return diagnostics.Load() }

// ErrorEnvelope maps err to its status and envelope
func ErrorEnvelope(err error, reqID string) (int, Envelope) {
	status, wr := perr.HTTP(err)
	env := Envelope{
		Error:     true,
		Message:   wr.Message,
		Code:      wr.Code.String(),
		Field:     wr.Field,
		Retryable: perr.Retryable(err),
		RequestID: reqID,
	}
	if diagnostics.Load() {
		d := perr.DiagnosticsFrom(err)
		env.Details = &d
	}
	return status, env
}

// JSON writes v with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return-style handlers produce. An error Body wins over Status
type Response struct {
	Status  int
	Body    any
	Message string
	Page    *Page
	Header  stdhttp.Header
}

// WithMessage sets the success message
func (resp Response) WithMessage(msg string) Response {
	resp.Message = msg
	return resp
}

// Handle adapts a return-style handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, pnet.RequestID(r.Context()))
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, reqID string) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if err, ok := resp.Body.(error); ok && err != nil {
		status, env := ErrorEnvelope(err, reqID)
		JSON(w, status, env)
		return
	}

	status := resp.Status
	switch status {
	case 0:
		status = stdhttp.StatusOK
	case stdhttp.StatusNoContent:
		w.WriteHeader(status)
		return
	}
	JSON(w, status, Envelope{
		Message:   resp.Message,
		RequestID: reqID,
		Data:      resp.Body,
		Page:      resp.Page,
	})
}

func OK(data any) Response      { return Response{Status: stdhttp.StatusOK, Body: data} }
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }
func NoContent() Response       { return Response{Status: stdhttp.StatusNoContent} }
func Error(err error) Response  { return Response{Body: err} }

// List answers 200 with items as data and the page block set
func List(items any, count int, cursor string, hasMore bool) Response {
	resp := OK(items)
	resp.Page = &Page{Count: count, Cursor: cursor, HasMore: hasMore}
	return resp
}
