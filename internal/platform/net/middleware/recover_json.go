package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	perr "caserelay/internal/platform/errors"
	"caserelay/internal/platform/logger"
	pnet "caserelay/internal/platform/net"
)

// RecoverJSON turns a handler panic into the 500 envelope. The stack goes to the
// log only; http.ErrAbortHandler is re-raised so net/http can abort the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			switch v {
			case nil:
				return
			case http.ErrAbortHandler:
				panic(v)
			}

			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Str("path", r.URL.Path).
				Msg("handler panicked")

			status, body := pnet.Error(perr.PanicErrf("Internal server error"), reqID)
			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(body)
		}()
		next.ServeHTTP(w, r)
	})
}
