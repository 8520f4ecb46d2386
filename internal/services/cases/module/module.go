// Package module wires cases into the API using modkit
package module

import (
	"strings"

	"caserelay/internal/adapters/credential"
	modkit "caserelay/internal/modkit"
	"caserelay/internal/modkit/httpkit"
	perr "caserelay/internal/platform/errors"
	"caserelay/internal/platform/logger"
	"caserelay/internal/platform/net/middleware"
	caseshttp "caserelay/internal/services/cases/http"
	"caserelay/internal/services/cases/resolver"
	casessvc "caserelay/internal/services/cases/service"
)

// apiVersionReporter is implemented by dispatchers that know their upstream version header
type apiVersionReporter interface{ Version() string }

// Module implements the cases module
type Module struct {
	modkit.Base

	ports Ports
	svc   casessvc.Service
	res   *resolver.Resolver
}

// New constructs the cases module
// configuration errors panic at startup so a bad deploy never serves traffic
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return NewWith(deps, FromConfig(deps.Cfg), opts...)
}

// NewWith constructs the cases module from explicit options
func NewWith(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("cases"), modkit.WithPrefix("/cases")}, opts...)

	res, err := NewResolver(deps, o)
	if err != nil {
		logger.Get().Panic().Err(err).Msg("cases resolver misconfigured")
	}

	version := ""
	if v, ok := deps.Notion.(apiVersionReporter); ok {
		version = v.Version()
	}
	svc := casessvc.New(deps.Notion, res, version)

	m := &Module{svc: svc, res: res}
	m.ports = Ports{Cases: adaptCasesPort{svc: svc}, Resolver: res}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { caseshttp.Register(r, m.ports.Cases) })
	m.Guard(callerPort(o.CallerToken))
	return m
}

// NewResolver builds the data source resolver and its cache store from options
func NewResolver(deps modkit.Deps, o Options) (*resolver.Resolver, error) {
	if deps.Notion == nil {
		return nil, perr.Configf("cases requires a Notion dispatcher")
	}
	policy, err := resolver.ParsePolicy(o.Policy)
	if err != nil {
		return nil, err
	}

	var store resolver.Store
	switch strings.ToLower(o.Cache) {
	case CacheRedis:
		if deps.Redis == nil {
			return nil, perr.Configf("CASES_CACHE=redis needs CASES_REDIS_ADDR")
		}
		prefix := o.RedisPrefix
		if prefix == "" {
			prefix = resolver.DefaultRedisPrefix
		}
		store = resolver.NewRedisStore(deps.Redis, prefix, o.CacheTTL)
	default:
		store = resolver.NewMemoryStore(o.CacheTTL)
	}

	res := resolver.New(deps.Notion, store, resolver.Options{Policy: policy, Name: o.SourceName})
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// callerPort returns nil when caller tokens are ignored
func callerPort(mode string) middleware.AuthPort {
	check := func(tok string) error {
		_, err := credential.New(tok, "caller")
		return err
	}
	switch strings.ToLower(mode) {
	case CallerTokenRequired:
		return httpkit.NewPortFunc(check)
	case CallerTokenOff:
		return nil
	default:
		return httpkit.NewOptionalPort(check)
	}
}

// Resolver returns the resolver so other surfaces share its cache
func (m *Module) Resolver() *resolver.Resolver { return m.res }
