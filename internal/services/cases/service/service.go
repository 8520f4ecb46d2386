// Package service contains the case operations: test connection, create and query.
// Each one validates input, resolves the data source, then makes one upstream call.
package service

import (
	"context"
	"sort"

	"caserelay/internal/adapters/notion"
	"caserelay/internal/core/dbid"
	perr "caserelay/internal/platform/errors"
	"caserelay/internal/platform/logger"
	"caserelay/internal/services/cases/domain"
)

// Service defines the service contract for cases
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	d       notion.Dispatcher
	res     domain.ResolverPort
	version string
}

// New creates a cases service; version is echoed as api_version in responses
func New(d notion.Dispatcher, res domain.ResolverPort, version string) *Svc {
	if d == nil {
		panic("cases.Service requires a non nil Dispatcher")
	}
	if res == nil {
		panic("cases.Service requires a non nil Resolver")
	}
	return &Svc{d: d, res: res, version: version}
}

// TestConnection resolves the data source and returns database metadata
func (s *Svc) TestConnection(ctx context.Context, in domain.TestConnectionInput) (domain.ConnectionInfo, error) {
	id, err := dbid.Normalize(in.DatabaseID)
	if err != nil {
		return domain.ConnectionInfo{}, err
	}
	ctx = logger.WithDatabase(ctx, id)

	dsID, err := s.res.Resolve(ctx, id)
	if err != nil {
		return domain.ConnectionInfo{}, callerError(err)
	}
	db, err := notion.RetrieveDatabase(ctx, s.d, id)
	if err != nil {
		return domain.ConnectionInfo{}, callerError(err)
	}

	props := sortedKeys(db.Properties)
	if len(props) == 0 {
		// newer versions keep the schema on the data source
		ds, err := notion.RetrieveDataSource(ctx, s.d, dsID)
		if err != nil {
			logger.C(ctx).Warn().Err(err).Str("data_source_id", dsID).Msg("data source schema unavailable")
		} else {
			props = sortedKeys(ds.Properties)
		}
	}

	sources := make([]domain.DataSourceInfo, 0, len(db.DataSources))
	for _, ds := range db.DataSources {
		sources = append(sources, domain.DataSourceInfo{ID: ds.ID, Name: ds.Name})
	}

	logger.C(ctx).Info().Str("data_source_id", dsID).Int("properties", len(props)).Msg("connection ok")
	return domain.ConnectionInfo{
		ID:             db.ID,
		Title:          notion.PlainText(db.Title),
		Properties:     props,
		DataSourceID:   dsID,
		DataSources:    sources,
		IsMultiSource:  len(sources) > 1,
		CreatedTime:    db.CreatedTime,
		LastEditedTime: db.LastEditedTime,
		APIVersion:     s.version,
	}, nil
}

// CreateRecord creates one page whose parent is the resolved data source
func (s *Svc) CreateRecord(ctx context.Context, in domain.CreateInput) (domain.Created, error) {
	id, err := dbid.Normalize(in.DatabaseID)
	if err != nil {
		return domain.Created{}, err
	}
	props, err := buildProperties(in)
	if err != nil {
		return domain.Created{}, err
	}
	ctx = logger.WithDatabase(ctx, id)

	dsID, err := s.res.Resolve(ctx, id)
	if err != nil {
		return domain.Created{}, callerError(err)
	}
	page, err := notion.CreatePage(ctx, s.d, notion.CreatePageRequest{
		Parent:     notion.DataSourceParent(dsID),
		Properties: props,
	})
	if err != nil {
		return domain.Created{}, callerError(err)
	}

	logger.C(ctx).Info().Str("page_id", page.ID).Str("data_source_id", dsID).Msg("record created")
	return domain.Created{
		ID:             page.ID,
		URL:            page.URL,
		CreatedTime:    page.CreatedTime,
		LastEditedTime: page.LastEditedTime,
		Properties:     flatten(page.Properties),
		DataSourceID:   dsID,
		APIVersion:     s.version,
	}, nil
}

// QueryRecords runs one query page against the resolved data source
func (s *Svc) QueryRecords(ctx context.Context, in domain.QueryInput) (domain.QueryResult, error) {
	id, err := dbid.Normalize(in.DatabaseID)
	if err != nil {
		return domain.QueryResult{}, err
	}
	q, err := buildQuery(in)
	if err != nil {
		return domain.QueryResult{}, err
	}
	ctx = logger.WithDatabase(ctx, id)

	dsID, err := s.res.Resolve(ctx, id)
	if err != nil {
		return domain.QueryResult{}, callerError(err)
	}
	resp, err := notion.QueryDataSource(ctx, s.d, dsID, q)
	if err != nil {
		return domain.QueryResult{}, callerError(err)
	}

	out := domain.QueryResult{
		Results:      make([]domain.Record, 0, len(resp.Results)),
		NextCursor:   resp.NextCursor,
		HasMore:      resp.HasMore,
		APIVersion:   s.version,
		DataSourceID: dsID,
	}
	for _, p := range resp.Results {
		out.Results = append(out.Results, toRecord(p))
	}
	out.TotalCount = len(out.Results)

	logger.C(ctx).Debug().Int("results", out.TotalCount).Bool("has_more", out.HasMore).Msg("records queried")
	return out, nil
}

// Forget drops the cached data source for a database
func (s *Svc) Forget(ctx context.Context, databaseID string) error {
	if err := s.res.Forget(ctx, databaseID); err != nil {
		return perr.WithField(err, dbid.Field)
	}
	return nil
}

func toRecord(p notion.Page) domain.Record {
	return domain.Record{
		ID:             p.ID,
		CreatedTime:    p.CreatedTime,
		LastEditedTime: p.LastEditedTime,
		URL:            p.URL,
		Properties:     flatten(p.Properties),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
