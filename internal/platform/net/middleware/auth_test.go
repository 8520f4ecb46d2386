package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "caserelay/internal/platform/errors"
	pnet "caserelay/internal/platform/net"
	"caserelay/internal/platform/net/middleware"
)

type portFunc func(*http.Request) (string, error)

func (f portFunc) Parse(r *http.Request) (string, error) { return f(r) }

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestAuth(t *testing.T) {
	cases := []struct {
		name     string
		port     middleware.AuthPort
		wantCode int
		wantTok  string
		reached  bool
	}{
		{name: "nil port", port: nil, wantCode: http.StatusOK, reached: true},
		{
			name:     "caller token",
			port:     portFunc(func(*http.Request) (string, error) { return "ntn_caller", nil }),
			wantCode: http.StatusOK, wantTok: "ntn_caller", reached: true,
		},
		{
			name:     "no token sent",
			port:     portFunc(func(*http.Request) (string, error) { return "", nil }),
			wantCode: http.StatusOK, reached: true,
		},
		{
			name: "rejected",
			port: portFunc(func(*http.Request) (string, error) {
				return "", perr.Unauthorizedf("Invalid Notion API token or insufficient permissions")
			}),
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "foreign error",
			port:     portFunc(func(*http.Request) (string, error) { return "", errors.New("keyring locked") }),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var reached bool
			var tok string
			h := middleware.Auth(tc.port, writeJSON)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				tok = pnet.Bearer(r.Context())
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cases/create-page", nil))

			if rec.Code != tc.wantCode || reached != tc.reached || tok != tc.wantTok {
				t.Fatalf("code=%d reached=%v token=%q", rec.Code, reached, tok)
			}
		})
	}
}

func TestAuth_ForeignErrorIsOpaque(t *testing.T) {
	h := middleware.Auth(portFunc(func(*http.Request) (string, error) {
		return "", errors.New("secret backend says ntn_leaked")
	}), writeJSON)(http.NotFoundHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var body pnet.Wire
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != perr.ErrorCodeUnknown.String() {
		t.Fatalf("code %q", body.Code)
	}
	if got := rec.Body.String(); strings.Contains(got, "ntn_leaked") {
		t.Fatalf("error leaked: %s", got)
	}
}
