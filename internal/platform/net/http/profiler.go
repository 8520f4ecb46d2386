package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves net/http/pprof under prefix, e.g. "/debug/pprof/heap" for "/debug".
// Nothing is mounted unless enabled
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	pprof := stdhttp.StripPrefix(prefix, middleware.Profiler())
	r.Handle(prefix, pprof)
	r.Handle(prefix+"/*", pprof)
}
