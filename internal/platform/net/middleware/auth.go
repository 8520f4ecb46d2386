package middleware

import (
	"net/http"

	pnet "caserelay/internal/platform/net"
)

// AuthPort pulls the caller's Notion token out of a request.
// ("", nil) means no token was sent, so the server credential is used.
type AuthPort interface {
	Parse(r *http.Request) (token string, err error)
}

// ErrorWriter renders a failed Parse; phttp.JSON fits
type ErrorWriter func(w http.ResponseWriter, status int, body any)

// Auth runs p for every request and puts whatever it returns on the context
// for pnet.Bearer. A nil p lets every request through unchanged.
func Auth(p AuthPort, write ErrorWriter) Middleware {
	if p == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, err := p.Parse(r)
			if err == nil {
				next.ServeHTTP(w, r.WithContext(pnet.WithBearer(r.Context(), tok)))
				return
			}
			status, body := pnet.Error(err, pnet.RequestID(r.Context()))
			write(w, status, body)
		})
	}
}
