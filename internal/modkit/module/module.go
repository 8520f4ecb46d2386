// Package module holds the module contract and port lookups, apart from modkit
// so services can name a Module without importing the deps graph
package module

import (
	phttp "caserelay/internal/platform/net/http"
)

// Module is one mountable slice of the API
type Module interface {
	Name() string
	// Prefix is the route root under /api/v1, e.g. /cases
	Prefix() string
	MountRoutes(r phttp.Router)
	// Ports is what other modules may borrow; nil when nothing is shared
	Ports() any
}
