// Package module wires exports into the API using modkit
package module

import (
	modkit "caserelay/internal/modkit"
	"caserelay/internal/modkit/httpkit"
	"caserelay/internal/platform/logger"
	casesdomain "caserelay/internal/services/cases/domain"
	"caserelay/internal/services/export/domain"
	exporthttp "caserelay/internal/services/export/http"
	exportsvc "caserelay/internal/services/export/service"
)

// Ports consumed from other modules
type Ports struct {
	Resolver casesdomain.ResolverPort
}

// Module implements the export module
type Module struct {
	modkit.Base
	svc domain.ExporterPort
}

// New constructs the export module; the cases resolver must be injected with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("export"), modkit.WithPrefix("/export")}, opts...)

	in, ok := b.Ports.(Ports)
	if !ok || in.Resolver == nil {
		logger.Get().Panic().Msg("export module needs the cases resolver port")
	}

	var search exportsvc.Searcher
	if deps.CourtListener != nil {
		search = deps.CourtListener
	}

	m := &Module{svc: exportsvc.New(deps.Notion, in.Resolver, search)}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { exporthttp.Register(r, m.svc) })
	return m
}

// Ports returns the exporter
func (m *Module) Ports() any { return m.svc }
