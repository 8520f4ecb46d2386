package httpkit

import (
	"net/http"

	perrs "caserelay/internal/platform/errors"
	pnet "caserelay/internal/platform/net"
)

// Token returns the caller token the auth middleware stored on the request
func Token(r *http.Request) (string, error) {
	tok := pnet.Bearer(r.Context())
	if tok == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return tok, nil
}

// MustToken returns the caller token or panics
// only use on routes mounted with Protected
func MustToken(r *http.Request) string {
	tok, err := Token(r)
	if err != nil {
		panic(err)
	}
	return tok
}
