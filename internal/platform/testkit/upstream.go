package testkit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Upstream is an httptest server with a route table keyed by "METHOD /path"
// It counts every request so tests can assert how many network calls happened
type Upstream struct {
	*httptest.Server

	mu    sync.Mutex
	calls map[string]int
	total int
}

// NewUpstream starts a fake upstream and closes it on test cleanup
// Unknown routes answer 404 with a JSON error body in the upstream's shape
func NewUpstream(t *testing.T, routes map[string]http.HandlerFunc) *Upstream {
	t.Helper()
	u := &Upstream{calls: map[string]int{}}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		u.mu.Lock()
		u.calls[key]++
		u.total++
		u.mu.Unlock()

		if h, ok := routes[key]; ok {
			h(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"object":"error","status":404,"code":"object_not_found","message":"no route ` + key + `"}`))
	}))
	t.Cleanup(u.Close)
	return u
}

// Calls returns how many times "METHOD /path" was hit
func (u *Upstream) Calls(key string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls[key]
}

// Total returns the number of requests seen on any route
func (u *Upstream) Total() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.total
}

// JSON returns a handler that writes body with status as application/json
func JSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}
