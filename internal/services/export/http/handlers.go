// Package http provides http transport for exports
package http

import (
	stdhttp "net/http"
	"strconv"

	"caserelay/internal/core/dbid"
	"caserelay/internal/modkit/httpkit"
	perr "caserelay/internal/platform/errors"
	"caserelay/internal/services/export/domain"
)

// Register mounts export endpoints on the given router
func Register(r httpkit.Router, s domain.ExporterPort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.export)
}

type handlers struct{ svc domain.ExporterPort }

// swagger:route GET /export Export exportDatabase
// @Summary Export every record of a database as one document
// @Tags Export
// @Produce json
// @Param databaseId query string true "Database id"
// @Param enrich query bool false "Search CourtListener for each named case"
// @Param limit query int false "Stop after this many records"
// @Success 200 {object} domain.Document "ok"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Router /export [get]
func (h *handlers) export(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	o := domain.Options{}

	if v := q.Get("enrich"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, perr.WithField(perr.Validationf("enrich must be true or false"), "enrich")
		}
		o.Enrich = b
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, perr.WithField(perr.Validationf("limit must be a non negative integer"), "limit")
		}
		o.MaxRecords = n
	}
	return h.svc.Export(r.Context(), q.Get(dbid.Field), o)
}
