package httpkit

import (
	"caserelay/internal/platform/net/middleware"
)

// Protected groups routes under bearer auth; handlers read the caller token with Token
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}

// Optional mounts routes under Protected when p is non-nil, otherwise as-is
func Optional(r Router, p middleware.AuthPort, fn func(Router)) {
	if p == nil {
		fn(r)
		return
	}
	Protected(r, p, fn)
}

var _ middleware.AuthPort = (*Port)(nil)
