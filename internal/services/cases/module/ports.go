package module

import (
	"context"

	"caserelay/internal/services/cases/domain"
	casessvc "caserelay/internal/services/cases/service"
)

// Ports exposed by the cases module
type Ports struct {
	Cases    domain.ServicePort
	Resolver domain.ResolverPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptCasesPort struct{ svc casessvc.Service }

// TestConnection probes a database through the cases service
func (a adaptCasesPort) TestConnection(ctx context.Context, in domain.TestConnectionInput) (domain.ConnectionInfo, error) {
	return a.svc.TestConnection(ctx, in)
}

// CreateRecord creates a record through the cases service
func (a adaptCasesPort) CreateRecord(ctx context.Context, in domain.CreateInput) (domain.Created, error) {
	return a.svc.CreateRecord(ctx, in)
}

// QueryRecords queries records through the cases service
func (a adaptCasesPort) QueryRecords(ctx context.Context, in domain.QueryInput) (domain.QueryResult, error) {
	return a.svc.QueryRecords(ctx, in)
}

// Forget drops a cached data source id
func (a adaptCasesPort) Forget(ctx context.Context, databaseID string) error {
	return a.svc.Forget(ctx, databaseID)
}
