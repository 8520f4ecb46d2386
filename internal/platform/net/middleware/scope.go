package middleware

import (
	"net/http"

	"caserelay/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestScope copies the chi request id onto the logger context so logger.C picks it up
// Mount after RequestID
func RequestScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := chimw.GetReqID(r.Context())
		if rid != "" {
			w.Header().Set("X-Request-ID", rid)
		}
		next.ServeHTTP(w, r.WithContext(logger.WithRequest(r.Context(), rid)))
	})
}
