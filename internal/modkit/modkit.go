// Package modkit builds API modules: shared deps, construction options and
// the routing half every module has in common
package modkit

import "caserelay/internal/modkit/module"

// Module is re-exported so constructors can return modkit.Module
type Module = module.Module
