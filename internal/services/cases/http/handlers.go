// Package http provides http transport for cases
package http

import (
	stdhttp "net/http"

	"caserelay/internal/core/dbid"
	"caserelay/internal/modkit/httpkit"
	"caserelay/internal/services/cases/domain"
)

// Register mounts case endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// database metadata and data source probe
	httpkit.Get(r, "/test-connection", h.testConnection)

	// one record per call, parented on the resolved data source
	httpkit.PostJSON[domain.CreateInput](r, "/create-page", h.createPage)

	// one page of records
	httpkit.PostJSON[domain.QueryInput](r, "/query-database", h.queryDatabase)

	// drop a cached data source id
	httpkit.Delete(r, "/cache", h.forget)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route GET /cases/test-connection Cases casesTestConnection
// @Summary Check access to a database and resolve its data source
// @Tags Cases
// @Produce json
// @Param databaseId query string true "Database id, 32 hex characters, dashes optional"
// @Param Authorization header string false "Bearer token forwarded upstream"
// @Success 200 {object} domain.ConnectionInfo "ok"
// @Failure 400 {object} httpkit.Envelope "invalid id or no data source"
// @Failure 401 {object} httpkit.Envelope "unauthorized"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /cases/test-connection [get]
func (h *handlers) testConnection(r *stdhttp.Request) (any, error) {
	info, err := h.svc.TestConnection(r.Context(), domain.TestConnectionInput{
		DatabaseID: r.URL.Query().Get(dbid.Field),
	})
	if err != nil {
		return nil, err
	}
	return httpkit.OK(info).WithMessage("Connection successful"), nil
}

// swagger:route POST /cases/create-page Cases casesCreatePage
// @Summary Create a case record
// @Tags Cases
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Database id with raw properties or a case record"
// @Success 201 {object} domain.Created "created"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Failure 502 {object} httpkit.Envelope "upstream"
// @Router /cases/create-page [post]
func (h *handlers) createPage(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	out, err := h.svc.CreateRecord(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out).WithMessage("Record created"), nil
}

// swagger:route POST /cases/query-database Cases casesQueryDatabase
// @Summary Query case records
// @Tags Cases
// @Accept json
// @Produce json
// @Param payload body domain.QueryInput true "Query"
// @Success 200 {object} domain.QueryResult "ok"
// @Failure 400 {object} httpkit.Envelope "validation or no data source"
// @Router /cases/query-database [post]
func (h *handlers) queryDatabase(r *stdhttp.Request, in domain.QueryInput) (any, error) {
	out, err := h.svc.QueryRecords(r.Context(), in)
	if err != nil {
		return nil, err
	}
	var cursor string
	if out.NextCursor != nil {
		cursor = *out.NextCursor
	}
	return httpkit.List(out, out.TotalCount, cursor, out.HasMore), nil
}

// swagger:route DELETE /cases/cache Cases casesForget
// @Summary Forget the cached data source of a database
// @Tags Cases
// @Param databaseId query string true "Database id"
// @Success 204 "forgotten"
// @Router /cases/cache [delete]
func (h *handlers) forget(r *stdhttp.Request) (any, error) {
	id, err := dbid.Normalize(r.URL.Query().Get(dbid.Field))
	if err != nil {
		return nil, err
	}
	if err := h.svc.Forget(r.Context(), id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
