// Package api provides the HTTP API for the application
package api

import (
	"net/http"

	phttp "caserelay/internal/platform/net/http"

	"caserelay/internal/modkit"
	"caserelay/internal/modkit/httpkit"
	"caserelay/internal/modkit/module"
	"caserelay/internal/modkit/swaggerkit"

	metamod "caserelay/internal/services/api/meta/module"
	casesdomain "caserelay/internal/services/cases/domain"
	casesmod "caserelay/internal/services/cases/module"
	exportmod "caserelay/internal/services/export/module"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options are the API options
// Deps.Cfg is the root config; modules add their own prefixes
type Options struct {
	Deps           modkit.Deps
	Stack          httpkit.StackOptions
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Modules builds the module set in dependency order
// cases is constructed first so export can borrow its resolver
func Modules(deps modkit.Deps) []module.Module {
	cases := casesmod.New(deps)
	res := module.MustPortsOf[casesdomain.ResolverPort](cases)

	return []module.Module{
		metamod.New(deps),
		cases,
		exportmod.New(deps, modkit.WithPorts(exportmod.Ports{Resolver: res})),
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	mods := Modules(opt.Deps)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStackWith(opt.Stack), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	if opt.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}
}

// Handler builds a standalone handler over a fresh chi mux
func Handler(opt Options) http.Handler {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), opt)
	return mux
}
