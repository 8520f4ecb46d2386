package middleware_test

import (
	"compress/flate"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"caserelay/internal/platform/net/middleware"
)

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{
		AllowedOrigins: []string{"https://app.example"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cases/create-page", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("allow origin %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Fatalf("credentials must stay off, got %q", got)
	}
}

func TestCORS_RejectsUnlistedOrigin(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://app.example"}})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("unlisted origin was allowed")
	}
}

func TestCompress_JSONOnly(t *testing.T) {
	body := `{"data":"` + strings.Repeat("case ", 400) + `"}`
	h := middleware.Compress(flate.BestSpeed)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip, headers %v", rec.Header())
	}
}

func TestTimeout_CancelsContext(t *testing.T) {
	h := middleware.Timeout(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestAccessLog_PassesThrough(t *testing.T) {
	h := middleware.AccessLog(middleware.AccessLogOptions{Slow: time.Nanosecond})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, "ok")
		}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cases/create-page?databaseId=abc", nil))
	if rec.Code != http.StatusCreated || rec.Body.String() != "ok" {
		t.Fatalf("status %d body %q", rec.Code, rec.Body.String())
	}
}

func TestMetrics_CountsByRoutePattern(t *testing.T) {
	mux := chi.NewRouter()
	mux.Use(middleware.Metrics)
	mux.Get("/cases/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })

	before := testutil.ToFloat64(middleware.HTTPRequestsCounter().WithLabelValues(http.MethodGet, "/cases/{id}", "202"))
	for _, id := range []string{"a", "b"} {
		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cases/"+id, nil))
	}
	after := testutil.ToFloat64(middleware.HTTPRequestsCounter().WithLabelValues(http.MethodGet, "/cases/{id}", "202"))
	if after-before != 2 {
		t.Fatalf("counter moved by %v", after-before)
	}
}
