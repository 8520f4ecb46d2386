package notion

import (
	"context"
	"net/http"
	"net/url"
)

// RetrieveDatabase reads GET /databases/{id}
func RetrieveDatabase(ctx context.Context, d Dispatcher, databaseID string) (Database, error) {
	var out Database
	err := d.Dispatch(ctx, http.MethodGet, "/databases/"+url.PathEscape(databaseID), nil, &out)
	return out, err
}

// RetrieveDataSource reads GET /data_sources/{id}
func RetrieveDataSource(ctx context.Context, d Dispatcher, dataSourceID string) (DataSource, error) {
	var out DataSource
	err := d.Dispatch(ctx, http.MethodGet, "/data_sources/"+url.PathEscape(dataSourceID), nil, &out)
	return out, err
}

// QueryDataSource runs POST /data_sources/{id}/query
func QueryDataSource(ctx context.Context, d Dispatcher, dataSourceID string, q QueryRequest) (QueryResponse, error) {
	var out QueryResponse
	err := d.Dispatch(ctx, http.MethodPost, "/data_sources/"+url.PathEscape(dataSourceID)+"/query", q, &out)
	return out, err
}

// CreatePage runs POST /pages
func CreatePage(ctx context.Context, d Dispatcher, req CreatePageRequest) (Page, error) {
	var out Page
	err := d.Dispatch(ctx, http.MethodPost, "/pages", req, &out)
	return out, err
}
