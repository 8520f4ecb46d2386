// Package credential supplies the upstream bearer token from configuration or a secret store
// A Credential is read once, validated and never logged in cleartext
package credential

import (
	"context"
	"strings"

	perr "caserelay/internal/platform/errors"
	pstrings "caserelay/internal/platform/strings"
)

// Prefixes are the token prefixes the upstream issues for integrations
var Prefixes = []string{"secret_", "ntn_"}

// Credential is an opaque bearer value
type Credential struct {
	value  string
	source string
}

// Value returns the raw token for the Authorization header only
func (c Credential) Value() string { return c.value }

// Present reports whether a token was found
func (c Credential) Present() bool { return c.value != "" }

// Source names where the token came from (env, aws, keychain, caller, static)
func (c Credential) Source() string { return c.source }

// String renders a redacted fingerprint, safe for logs
func (c Credential) String() string { return pstrings.Redact(c.value) }

// Provider returns the current credential or an ErrorCodeConfig error
type Provider interface {
	Credential(ctx context.Context) (Credential, error)
}

// ProviderFunc adapts a function to Provider
type ProviderFunc func(ctx context.Context) (Credential, error)

// Credential implements Provider
func (f ProviderFunc) Credential(ctx context.Context) (Credential, error) { return f(ctx) }

// New validates raw and wraps it as a Credential from source
func New(raw, source string) (Credential, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Credential{}, perr.WithOp(perr.Configf("Notion API token is not configured"), "credential."+source)
	}
	if !hasKnownPrefix(raw) {
		return Credential{}, perr.WithOp(
			perr.Configf("Notion API token has an unexpected format (expected prefix %s)", strings.Join(Prefixes, " or ")),
			"credential."+source,
		)
	}
	return Credential{value: raw, source: source}, nil
}

// Static always returns the same token; for tests and the CLI --token flag
func Static(raw string) Provider {
	c, err := New(raw, "static")
	return ProviderFunc(func(context.Context) (Credential, error) { return c, err })
}

func hasKnownPrefix(s string) bool {
	for _, p := range Prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
