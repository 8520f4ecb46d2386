package credential

import (
	"context"

	pnet "caserelay/internal/platform/net"
)

// Passthrough prefers a caller supplied bearer on the context and falls back to next
// The caller token is validated like any other source
type Passthrough struct {
	Next Provider
}

// Credential implements Provider
func (p Passthrough) Credential(ctx context.Context) (Credential, error) {
	if tok := pnet.Bearer(ctx); tok != "" {
		return New(tok, "caller")
	}
	if p.Next == nil {
		return New("", "caller")
	}
	return p.Next.Credential(ctx)
}
