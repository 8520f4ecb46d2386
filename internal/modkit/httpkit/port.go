// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"net/http"
	"strings"

	perrs "caserelay/internal/platform/errors"
)

// TokenFunc checks a caller supplied bearer token before it is forwarded upstream
type TokenFunc func(token string) error

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	check    TokenFunc
	optional bool
}

// NewPortFunc builds a Port from a check function; nil accepts any non-empty token
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{check: fn}
}

// NewOptionalPort is like NewPortFunc but lets requests without Authorization through
// with an empty token so the server side credential applies
func NewOptionalPort(fn TokenFunc) *Port {
	return &Port{check: fn, optional: true}
}

// Parse extracts the bearer token from Authorization
// returns unauthorized when the header is missing, malformed, or the check rejects it
func (p *Port) Parse(r *http.Request) (string, error) {
	if p != nil && p.optional && strings.TrimSpace(r.Header.Get("Authorization")) == "" {
		return "", nil
	}
	raw, err := HeaderToken(r)
	if err != nil {
		return "", err
	}
	if p != nil && p.check != nil {
		if err := p.check(raw); err != nil {
			return "", perrs.Unauthorizedf("invalid bearer token")
		}
	}
	return raw, nil
}

// HeaderToken returns the raw bearer token from the Authorization header
// the scheme match is case-insensitive and surrounding spaces are ignored
func HeaderToken(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer"
	// the scheme must be followed by a space or tab, so "Bearerxyz" is not a token
	if len(s) <= len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) ||
		(s[len(prefix)] != ' ' && s[len(prefix)] != '\t') {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}
