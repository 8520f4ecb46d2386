// @title         Caserelay API
// @version       0.1.0
// @description   Relay for a Notion legal case database: connection checks, record creation, queries and exports

package main

import (
	"context"
	"os/signal"
	"syscall"

	"caserelay/internal/modkit"
	"caserelay/internal/modkit/httpkit"
	"caserelay/internal/platform/config"
	"caserelay/internal/platform/logger"
	phttp "caserelay/internal/platform/net/http"

	"caserelay/internal/services/api"
)

func main() {
	root := config.New()
	// service-scoped config for HTTP etc (CORE_API_*)
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, closeDeps, err := modkit.Wire(ctx, root)
	if err != nil {
		l.Panic().Err(err).Msg("wiring failed")
	}
	defer closeDeps()

	env := apiCfg.MayEnum("ENV", "production", "production", "development")
	phttp.SetDiagnostics(env == "development")

	// CORE_API_PORT and the CORE_API_*_TIMEOUT keys
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Deps: deps,
			Stack: httpkit.StackOptions{
				CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
			},
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			EnableMetrics:  apiCfg.MayBool("METRICS", true),
		},
	)

	l.Info().
		Str("env", env).
		Bool("redis", deps.Redis != nil).
		Bool("courtlistener", deps.CourtListener.Enabled()).
		Msg("caserelay api starting")

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("caserelay api stopped")
}
