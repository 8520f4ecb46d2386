package httpkit

import (
	"net/http"
	"strings"
)

// MountAPI scopes mount under /api/<version> with mw applied to that scope only.
// "v1" and "/v1/" both yield /api/v1
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/"+strings.Trim(version, "/ "), func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}

// MountAPIV1 mounts under /api/v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
