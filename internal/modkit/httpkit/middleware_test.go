package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	pnet "caserelay/internal/platform/net"
)

func stacked(o StackOptions, h http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(CommonStackWith(o)...)
	r.Get("/api/v1/cases/list-pages", h)
	r.Post("/api/v1/cases/create-page", h)
	return r
}

func TestCommonStack(t *testing.T) {
	var seenRID string
	h := stacked(StackOptions{CORSOrigins: []string{"https://app.example"}}, func(w http.ResponseWriter, r *http.Request) {
		seenRID = pnet.RequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("heartbeat answers before routing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("code %d", rec.Code)
		}
	})

	t.Run("request id reaches the handler and the response", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cases/list-pages/", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("trailing slash not stripped: %d", rec.Code)
		}
		if rid := rec.Header().Get("X-Request-ID"); rid == "" || rid != seenRID {
			t.Fatalf("header %q context %q", rid, seenRID)
		}
		if rec.Header().Get("Cache-Control") == "" {
			t.Fatal("expected no-cache headers")
		}
	})

	t.Run("preflight from an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/cases/create-page", nil)
		req.Header.Set("Origin", "https://app.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
			t.Fatalf("allow origin %q code %d", got, rec.Code)
		}
	})
}

func TestCommonStack_PanicBecomesEnvelope(t *testing.T) {
	h := stacked(StackOptions{}, func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cases/list-pages", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code %d", rec.Code)
	}
}

func TestAuth_NilPortIsPassThrough(t *testing.T) {
	hit := false
	Auth(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { hit = true })).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !hit {
		t.Fatal("handler not reached")
	}
}
