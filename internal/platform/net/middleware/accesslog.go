package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"caserelay/internal/platform/logger"
)

// AccessLogOptions configures AccessLog
type AccessLogOptions struct {
	// Slow logs at warn at or above this duration; 0 never does
	Slow time.Duration
}

// AccessLog writes one line per request on the request scoped logger.
// The route pattern is logged next to the path so ids do not explode
// cardinality; headers are never logged
func AccessLog(opt AccessLogOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			log := logger.C(r.Context())
			evt := log.Info()
			switch {
			case ww.Status() >= http.StatusInternalServerError:
				evt = log.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				evt = log.Warn()
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if id := r.URL.Query().Get("databaseId"); id != "" {
				evt = evt.Str("database_id", id)
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed).
				Msg("request")
		})
	}
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		return rc.RoutePattern()
	}
	return ""
}
