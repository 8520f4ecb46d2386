package cli

import (
	"context"

	"github.com/google/uuid"

	"caserelay/internal/platform/config"
	"caserelay/internal/platform/logger"
	casesdomain "caserelay/internal/services/cases/domain"
	casesmod "caserelay/internal/services/cases/module"
	casessvc "caserelay/internal/services/cases/service"
	exportdomain "caserelay/internal/services/export/domain"
	exportsvc "caserelay/internal/services/export/service"
)

// app is one command's view of the services
type app struct {
	ctx    context.Context
	reqID  string
	cases  casesdomain.ServicePort
	export exportdomain.ExporterPort
	close  func()
}

// open wires the services for one invocation; construction errors are returned, never panicked
func (g *globals) open(ctx context.Context) (*app, error) {
	reqID := uuid.NewString()
	ctx = logger.WithRequest(ctx, reqID)

	d, closeFn, err := g.deps(ctx)
	if err != nil {
		closeFn()
		return &app{ctx: ctx, reqID: reqID, close: func() {}}, err
	}

	o := casesmod.FromConfig(config.New())
	if g.cache != "" {
		o.Cache = g.cache
	}
	res, err := casesmod.NewResolver(d, o)
	if err != nil {
		closeFn()
		return &app{ctx: ctx, reqID: reqID, close: func() {}}, err
	}

	version := ""
	if v, ok := d.Notion.(interface{ Version() string }); ok {
		version = v.Version()
	}

	var search exportsvc.Searcher
	if d.CourtListener != nil {
		search = d.CourtListener
	}

	return &app{
		ctx:    ctx,
		reqID:  reqID,
		cases:  casessvc.New(d.Notion, res, version),
		export: exportsvc.New(d.Notion, res, search),
		close:  closeFn,
	}, nil
}
