package notion

import (
	"strings"
	"time"

	perr "caserelay/internal/platform/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caserelay_notion_requests_total",
		Help: "Calls to the Notion API by endpoint and outcome",
	}, []string{"method", "endpoint", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "caserelay_notion_request_duration_seconds",
		Help:    "Notion API call latency by endpoint",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"method", "endpoint"})
)

func observe(method, endpoint, outcome string, lat time.Duration) {
	requestsTotal.WithLabelValues(method, endpoint, outcome).Inc()
	if lat > 0 {
		requestDuration.WithLabelValues(method, endpoint).Observe(lat.Seconds())
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	return perr.CodeOf(err).String()
}

// endpointLabel replaces identifier segments with {id} to keep label cardinality bounded
// /databases/40c4.../query -> /databases/{id}/query
func endpointLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if looksLikeID(s) {
			segs[i] = "{id}"
		}
	}
	return strings.Join(segs, "/")
}

func looksLikeID(s string) bool {
	if len(s) < 8 {
		return false
	}
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
