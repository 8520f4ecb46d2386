// Package middleware adapts chi middleware and holds the in house ones
// (access log, metrics, scope, auth, JSON recover); chi types stay in here
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"

	pstrings "caserelay/internal/platform/strings"
)

// Middleware is the stdlib middleware shape
type Middleware = func(http.Handler) http.Handler

// chi passthroughs
func RequestID() Middleware              { return chimw.RequestID }
func RealIP() Middleware                 { return chimw.RealIP }
func NoCache() Middleware                { return chimw.NoCache }
func StripSlashes() Middleware           { return chimw.StripSlashes }
func Heartbeat(path string) Middleware   { return chimw.Heartbeat(path) }
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }
func Compress(level int) Middleware      { return chimw.Compress(level, "application/json") }

// CORSOptions is the subset of go-chi/cors the API sets
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
	MaxAge         int
}

// CORS answers preflight itself. Credentials are never allowed: the caller
// token travels in Authorization, not cookies
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{
			http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions,
		}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{
			"Accept", "Authorization", "Content-Type", "X-Request-ID",
		}),
		ExposedHeaders: o.ExposedHeaders,
		MaxAge:         o.MaxAge,
	})
}
