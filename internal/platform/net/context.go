// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyBearer ctxKey = "bearer"

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithBearer annotates context with a caller supplied upstream credential
// The value is opaque here; the credential package decides whether to trust it
func WithBearer(ctx context.Context, token string) context.Context {
	if token != "" {
		ctx = context.WithValue(ctx, keyBearer, token)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// Bearer returns the caller supplied credential on the context if present
func Bearer(ctx context.Context) string {
	if v, ok := ctx.Value(keyBearer).(string); ok {
		return v
	}
	return ""
}
