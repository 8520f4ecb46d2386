package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "caserelay_resolver_cache_lookups_total",
	Help: "Data source id cache lookups by result (hit, miss, error)",
}, []string{"result"})
