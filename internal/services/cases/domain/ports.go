package domain

import "context"

// ServicePort defines the service contract for cases
type ServicePort interface {
	TestConnection(ctx context.Context, in TestConnectionInput) (ConnectionInfo, error)
	CreateRecord(ctx context.Context, in CreateInput) (Created, error)
	QueryRecords(ctx context.Context, in QueryInput) (QueryResult, error)
	Forget(ctx context.Context, databaseID string) error
}

// ResolverPort maps a database id to its data source id
type ResolverPort interface {
	Resolve(ctx context.Context, databaseID string) (string, error)
	Forget(ctx context.Context, databaseID string) error
}
