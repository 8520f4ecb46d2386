package testkit

import (
	"io"
	"net/http"
	"testing"
)

func TestUpstream_CountsAndRoutes(t *testing.T) {
	u := NewUpstream(t, map[string]http.HandlerFunc{
		"GET /databases/x": JSON(http.StatusOK, `{"id":"x"}`),
	})

	res, err := http.Get(u.URL + "/databases/x")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(res.Body)
	_ = res.Body.Close()
	MustContain(t, string(b), `"id":"x"`)

	res, err = http.Get(u.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	_ = res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", res.StatusCode)
	}

	if u.Calls("GET /databases/x") != 1 || u.Total() != 2 {
		t.Fatalf("unexpected counts: route=%d total=%d", u.Calls("GET /databases/x"), u.Total())
	}
}
