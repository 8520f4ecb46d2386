package net

import (
	"net/http"

	perr "caserelay/internal/platform/errors"
)

// Wire is the transport neutral envelope used outside the chi handlers
// (middleware short circuits, CLI output)
type Wire struct {
	Error     bool   `json:"error"`
	Message   string `json:"message,omitempty"`
	Code      string `json:"code,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// OK builds a 200 envelope
func OK(data any, reqID string) (int, Wire) {
	return http.StatusOK, Wire{RequestID: reqID, Data: data}
}

// Created builds a 201 envelope
func Created(data any, reqID string) (int, Wire) {
	return http.StatusCreated, Wire{RequestID: reqID, Data: data}
}

// Error builds an error envelope
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return OK(nil, reqID)
	}
	status, w := perr.HTTP(err)
	return status, Wire{
		Error:     true,
		Message:   w.Message,
		Code:      w.Code.String(),
		Retryable: perr.Retryable(err),
		RequestID: reqID,
	}
}
