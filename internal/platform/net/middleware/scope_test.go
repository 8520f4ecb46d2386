package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"caserelay/internal/platform/logger"
	"caserelay/internal/platform/net/middleware"
)

func TestRequestScope_MirrorsRequestID(t *testing.T) {
	var logged bytes.Buffer
	h := middleware.RequestID()(middleware.RequestScope(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := logger.C(r.Context()).Output(&logged)
		l.Info().Msg("inside")
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "rid-scope")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-ID"); got != "rid-scope" {
		t.Fatalf("expected mirrored request id, got %q", got)
	}
	if !strings.Contains(logged.String(), "rid-scope") {
		t.Fatalf("request id missing from log line %q", logged.String())
	}
}
