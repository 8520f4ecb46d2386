// Package resolver maps a database id onto the data source the relay reads and writes.
// Since Notion-Version 2025-09-03 pages are addressed by data source, so every case
// operation resolves through here first. Results are memoized in an injected Store.
package resolver

import (
	"context"
	"strings"

	"caserelay/internal/adapters/notion"
	"caserelay/internal/core/dbid"
	perr "caserelay/internal/platform/errors"
	"caserelay/internal/platform/logger"
)

// Policy chooses among several data sources of one database
type Policy string

const (
	// PolicyFirst takes index 0
	PolicyFirst Policy = "first"
	// PolicySingle refuses databases that expose more than one data source
	PolicySingle Policy = "single"
	// PolicyNamed picks the data source whose name matches Options.Name
	PolicyNamed Policy = "named"
)

// ParsePolicy validates a policy name; empty means PolicyFirst
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyFirst, nil
	case PolicyFirst, PolicySingle, PolicyNamed:
		return p, nil
	default:
		return "", perr.Configf("unknown data source policy %q (want first, single or named)", s)
	}
}

// Options configures a Resolver
type Options struct {
	Policy Policy
	// Name is required with PolicyNamed and matched case-insensitively
	Name string
}

// Resolver resolves and caches database id to data source id
// Concurrent cold lookups of the same id may both reach the upstream; the
// read is idempotent and the last write into the store wins
type Resolver struct {
	d     notion.Dispatcher
	store Store
	opts  Options
	log   logger.Logger
}

// New builds a Resolver; a nil store gets a fresh MemoryStore without expiry
func New(d notion.Dispatcher, store Store, opts Options) *Resolver {
	if d == nil {
		panic("resolver.New requires a non nil Dispatcher")
	}
	if store == nil {
		store = NewMemoryStore(0)
	}
	if opts.Policy == "" {
		opts.Policy = PolicyFirst
	}
	return &Resolver{d: d, store: store, opts: opts, log: *logger.Named("resolver")}
}

// Validate reports configuration errors early, for startup checks
func (r *Resolver) Validate() error {
	if _, err := ParsePolicy(string(r.opts.Policy)); err != nil {
		return err
	}
	if r.opts.Policy == PolicyNamed && strings.TrimSpace(r.opts.Name) == "" {
		return perr.Configf("data source policy %q needs a data source name", PolicyNamed)
	}
	return nil
}

// Resolve returns the data source id for databaseID, consulting the store first
func (r *Resolver) Resolve(ctx context.Context, databaseID string) (string, error) {
	id, err := dbid.Normalize(databaseID)
	if err != nil {
		return "", err
	}
	key := r.key(id)

	if v, ok := r.cached(ctx, key); ok {
		r.log.Debug().Str("database_id", id).Str("data_source_id", v).Msg("data source cache hit")
		return v, nil
	}

	db, err := notion.RetrieveDatabase(ctx, r.d, id)
	if err != nil {
		return "", err
	}
	ds, err := r.pick(db.DataSources)
	if err != nil {
		return "", perr.WithOp(perr.WithField(err, dbid.Field), "resolver.resolve")
	}

	if err := r.store.Set(ctx, key, ds.ID); err != nil {
		cacheLookups.WithLabelValues("error").Inc()
		r.log.Warn().Err(err).Str("database_id", id).Msg("data source cache write failed")
	}
	r.log.Debug().
		Str("database_id", id).
		Str("data_source_id", ds.ID).
		Int("candidates", len(db.DataSources)).
		Msg("data source resolved")
	return ds.ID, nil
}

// Forget drops the cached mapping for databaseID
func (r *Resolver) Forget(ctx context.Context, databaseID string) error {
	id, err := dbid.Normalize(databaseID)
	if err != nil {
		return err
	}
	del, ok := r.store.(Deleter)
	if !ok {
		return perr.Internalf("data source cache does not support invalidation")
	}
	if err := del.Delete(ctx, r.key(id)); err != nil {
		return perr.WithOp(perr.Wrap(err, perr.ErrorCodeUnavailable, "data source cache unavailable"), "resolver.forget")
	}
	return nil
}

// cached treats store failures as misses so a flaky cache never blocks a request
func (r *Resolver) cached(ctx context.Context, key string) (string, bool) {
	v, ok, err := r.store.Get(ctx, key)
	switch {
	case err != nil:
		cacheLookups.WithLabelValues("error").Inc()
		r.log.Warn().Err(err).Str("key", key).Msg("data source cache read failed")
		return "", false
	case !ok || v == "":
		cacheLookups.WithLabelValues("miss").Inc()
		return "", false
	default:
		cacheLookups.WithLabelValues("hit").Inc()
		return v, true
	}
}

func (r *Resolver) pick(list []notion.DataSourceRef) (notion.DataSourceRef, error) {
	if len(list) == 0 {
		return notion.DataSourceRef{}, perr.NoDataSourcef("Database has no data sources")
	}

	var ds notion.DataSourceRef
	switch r.opts.Policy {
	case PolicySingle:
		if len(list) > 1 {
			return ds, perr.Conflictf("Database has %d data sources; configure a data source name to choose one", len(list))
		}
		ds = list[0]
	case PolicyNamed:
		want := strings.TrimSpace(r.opts.Name)
		found := false
		for _, c := range list {
			if strings.EqualFold(strings.TrimSpace(c.Name), want) {
				ds, found = c, true
				break
			}
		}
		if !found {
			return ds, perr.NoDataSourcef("Database has no data source named %q", want)
		}
	default:
		ds = list[0]
	}

	if ds.ID == "" {
		return ds, perr.Malformedf("Notion API returned a data source without an id")
	}
	return ds, nil
}

// key namespaces named lookups so processes with different policies can share a store
func (r *Resolver) key(id string) string {
	if r.opts.Policy == PolicyNamed {
		return id + "/" + strings.ToLower(strings.TrimSpace(r.opts.Name))
	}
	return id
}
