package modkit

import (
	"net/http"

	"caserelay/internal/modkit/httpkit"
)

// Option adjusts how a module is built
type Option func(*Built)

// Built is the resolved option set a constructor reads
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	// Ports are injected from other modules; the importer owns the concrete type
	Ports any
	// Extra attaches routes next to the module's own, mostly for tests
	Extra func(httpkit.Router)
}

// Build applies defaults first and caller options after, so callers win
func Build(defaults []Option, opts ...Option) Built {
	var b Built
	for _, o := range defaults {
		o(&b)
	}
	for _, o := range opts {
		o(&b)
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// WithName names the module in logs and panics
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix mounts the module under prefix
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends module scoped middleware, applied in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects ports another module exposes
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithExtra adds routes under the module prefix
func WithExtra(fn func(httpkit.Router)) Option { return func(b *Built) { b.Extra = fn } }
