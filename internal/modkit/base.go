package modkit

import (
	"net/http"

	"caserelay/internal/modkit/httpkit"
	"caserelay/internal/platform/net/middleware"
	str "caserelay/internal/platform/strings"
)

// Base is embedded by modules; it owns name, prefix, middleware and mounting
// The embedding module supplies routes and Ports
type Base struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	routes func(httpkit.Router)
	extra  func(httpkit.Router)
	guard  middleware.AuthPort
}

// NewBase binds b to the module's route registration
func NewBase(b Built, routes func(httpkit.Router)) Base {
	return Base{
		name:   str.MustString(b.Name, "module name"),
		prefix: str.MustPrefix(b.Prefix),
		mws:    b.Mw,
		routes: routes,
		extra:  b.Extra,
	}
}

// Guard puts the module's routes behind p; nil leaves them open
func (m *Base) Guard(p middleware.AuthPort) { m.guard = p }

// Name returns the module name
func (m Base) Name() string { return m.name }

// Prefix returns the route root
func (m Base) Prefix() string { return m.prefix }

// Middlewares returns the module scoped middleware
func (m Base) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// MountRoutes mounts routes and extras under the prefix, behind the guard when set
func (m Base) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		httpkit.Optional(rr, m.guard, func(ar httpkit.Router) {
			if m.routes != nil {
				m.routes(ar)
			}
			if m.extra != nil {
				m.extra(ar)
			}
		})
	})
}
