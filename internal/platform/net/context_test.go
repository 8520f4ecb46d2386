package net_test

import (
	"context"
	"testing"

	pnet "caserelay/internal/platform/net"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	t.Run("sets request id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "req-123")
		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
	})

	t.Run("sets bearer", func(t *testing.T) {
		ctx := pnet.WithBearer(base, "ntn_abc")
		if got := pnet.Bearer(ctx); got != "ntn_abc" {
			t.Fatalf("Bearer got %q want %q", got, "ntn_abc")
		}
		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
	})

	t.Run("empty values return same ctx", func(t *testing.T) {
		ctx := pnet.WithBearer(pnet.WithRequest(base, ""), "")
		// should be the same reference since nothing was set
		if ctx != base {
			t.Fatalf("expected ctx to be unchanged when values are empty")
		}
		if pnet.RequestID(ctx) != "" || pnet.Bearer(ctx) != "" {
			t.Fatalf("expected empty getters")
		}
	})
}
