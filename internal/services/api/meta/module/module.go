// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"context"
	"time"

	modkit "caserelay/internal/modkit"
	"caserelay/internal/modkit/httpkit"

	metahttp "caserelay/internal/services/api/meta/http"
)

// ServiceName is reported by health and service endpoints
const ServiceName = "caserelay-api"

// Module serves liveness, readiness and version
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)

	m := &Module{startedAt: time.Now()}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName:   ServiceName,
			StartedAt:     m.startedAt,
			NotionVersion: notionVersion(deps),
			Checks:        checks(deps),
		})
	})
	return m
}

// Ports is nil; meta shares nothing
func (m *Module) Ports() any { return nil }

// checks builds readiness probes: the credential must load and Redis must answer when configured
func checks(deps modkit.Deps) []metahttp.Check {
	cred := metahttp.Check{Name: "credential"}
	if deps.Creds != nil {
		cred.Fn = func(ctx context.Context) error {
			_, err := deps.Creds.Credential(ctx)
			return err
		}
	}
	rc := metahttp.Check{Name: "redis"}
	if deps.Redis != nil {
		rc.Fn = func(ctx context.Context) error { return deps.Redis.Ping(ctx).Err() }
	}
	return []metahttp.Check{cred, rc}
}

func notionVersion(deps modkit.Deps) string {
	if v, ok := deps.Notion.(interface{ Version() string }); ok {
		return v.Version()
	}
	return ""
}
