// Package service exports every record of a database as one JSON document,
// optionally enriched with CourtListener opinion searches
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"caserelay/internal/adapters/courtlistener"
	"caserelay/internal/adapters/notion"
	"caserelay/internal/core/dbid"
	perr "caserelay/internal/platform/errors"
	"caserelay/internal/platform/logger"
	casesdomain "caserelay/internal/services/cases/domain"
	"caserelay/internal/services/export/domain"
)

const pageSize = 100

// Searcher is the CourtListener surface used for enrichment
type Searcher interface {
	Enabled() bool
	Search(ctx context.Context, caseName string, limit int) (courtlistener.SearchResult, error)
}

// Exporter pages through a data source and summarizes each record
type Exporter struct {
	d      notion.Dispatcher
	res    casesdomain.ResolverPort
	search Searcher

	now   func() time.Time
	newID func() string
}

// New builds an Exporter; search may be nil
func New(d notion.Dispatcher, res casesdomain.ResolverPort, search Searcher) *Exporter {
	if d == nil || res == nil {
		panic("export.New requires a Dispatcher and a Resolver")
	}
	return &Exporter{
		d:      d,
		res:    res,
		search: search,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// Export reads all records of databaseID and returns the document
func (e *Exporter) Export(ctx context.Context, databaseID string, o domain.Options) (domain.Document, error) {
	id, err := dbid.Normalize(databaseID)
	if err != nil {
		return domain.Document{}, err
	}
	ctx = logger.WithDatabase(ctx, id)
	log := logger.C(ctx)

	dsID, err := e.res.Resolve(ctx, id)
	if err != nil {
		return domain.Document{}, err
	}

	pages, err := e.readAll(ctx, dsID, o.MaxRecords)
	if err != nil {
		return domain.Document{}, err
	}

	cases := make([]domain.CaseSummary, 0, len(pages))
	for _, p := range pages {
		cases = append(cases, Summarize(p))
	}

	enrich := o.Enrich && e.search != nil && e.search.Enabled()
	if enrich {
		e.enrich(ctx, cases, o.SearchLimit)
	} else if o.Enrich {
		log.Info().Msg("courtlistener key not configured, skipping searches")
	}

	doc := domain.Document{
		ExportID:             e.newID(),
		ExportedAt:           e.now().UTC(),
		DatabaseID:           id,
		DataSourceID:         dsID,
		Count:                len(cases),
		CourtListenerEnabled: enrich,
		Cases:                cases,
		Summary:              SummarizeAll(cases),
	}
	log.Info().Str("export_id", doc.ExportID).Int("count", doc.Count).Msg("export complete")
	return doc, nil
}

func (e *Exporter) readAll(ctx context.Context, dsID string, max int) ([]notion.Page, error) {
	var (
		out    []notion.Page
		cursor string
	)
	for {
		resp, err := notion.QueryDataSource(ctx, e.d, dsID, notion.QueryRequest{
			PageSize:    pageSize,
			StartCursor: cursor,
			Sorts:       []notion.Sort{{Timestamp: "created_time", Direction: "descending"}},
		})
		if err != nil {
			return nil, perr.WithOp(err, "export.read")
		}
		out = append(out, resp.Results...)

		if max > 0 && len(out) >= max {
			return out[:max], nil
		}
		if !resp.HasMore {
			return out, nil
		}
		if resp.NextCursor == nil || *resp.NextCursor == "" || *resp.NextCursor == cursor {
			return nil, perr.WithOp(perr.Malformedf("Notion API reported more results without a usable cursor"), "export.read")
		}
		cursor = *resp.NextCursor
	}
}

// enrich searches each named case; failures leave the case without results
// credential problems stop further searches
func (e *Exporter) enrich(ctx context.Context, cases []domain.CaseSummary, limit int) {
	log := logger.C(ctx)
	for i := range cases {
		name := cases[i].CaseName
		if name == "" {
			continue
		}
		res, err := e.search.Search(ctx, name, limit)
		if err != nil {
			log.Warn().Err(err).Str("case", name).Msg("courtlistener search failed")
			if perr.IsCode(err, perr.ErrorCodeUnauthorized) || perr.IsCode(err, perr.ErrorCodeConfig) || ctx.Err() != nil {
				return
			}
			continue
		}
		cases[i].CourtListener = &res
	}
}
