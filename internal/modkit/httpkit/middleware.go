package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "caserelay/internal/platform/net/http"
	"caserelay/internal/platform/net/middleware"
)

// StackOptions tunes CommonStackWith
type StackOptions struct {
	// CORSOrigins defaults to "*" when empty
	CORSOrigins []string
	// Slow marks access log lines as warn, 0 uses 2s
	Slow time.Duration
	// Timeout bounds a whole request; a cold create is two sequential upstream calls
	Timeout time.Duration
}

// CommonStack returns a baseline per module middleware slice with default options
func CommonStack() []func(http.Handler) http.Handler {
	return CommonStackWith(StackOptions{})
}

// CommonStackWith returns the baseline middleware slice
// compose with your auth middleware as needed in main
func CommonStackWith(o StackOptions) []func(http.Handler) http.Handler {
	if len(o.CORSOrigins) == 0 {
		o.CORSOrigins = []string{"*"}
	}
	if o.Slow <= 0 {
		o.Slow = 2 * time.Second
	}
	if o.Timeout <= 0 {
		o.Timeout = 65 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestScope,

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.Slow}),
		middleware.Metrics,

		// cross-origin; preflight is answered here before routing
		middleware.CORS(middleware.CORSOptions{
			AllowedOrigins: o.CORSOrigins,
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
