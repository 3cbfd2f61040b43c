// Package prom adapts observability hooks to Prometheus collectors.
//
// All collectors are registered on the Registerer passed to [New], so tests
// and the CLI can use a private registry instead of the global default.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	qerrors "github.com/matzehuels/qroute/pkg/errors"
	"github.com/matzehuels/qroute/pkg/observability"
)

const namespace = "qroute"

// Hooks implements observability.RoutingHooks and observability.CacheHooks.
type Hooks struct {
	// PrecomputeTotal counts table-family precomputations.
	// Labels: source (computed, cache), status (success, error)
	PrecomputeTotal *prometheus.CounterVec

	// PrecomputeSeconds measures precomputation latency.
	// Labels: source
	PrecomputeSeconds *prometheus.HistogramVec

	// QueriesTotal counts routing queries.
	// Labels: op (distance, steiner, rec_steiner, shortest_path), code
	QueriesTotal *prometheus.CounterVec

	// QuerySeconds measures routing query latency.
	// Labels: op
	QuerySeconds *prometheus.HistogramVec

	// TreeEdges tracks Steiner tree sizes.
	// Labels: policy
	TreeEdges *prometheus.HistogramVec

	// TreeSteinerPoints tracks auxiliary vertices per tree.
	// Labels: policy
	TreeSteinerPoints *prometheus.HistogramVec

	// CacheOpsTotal counts cache traffic.
	// Labels: key_type (tables, memo), result (hit, miss, set)
	CacheOpsTotal *prometheus.CounterVec

	// CacheBytesTotal sums bytes written to the table cache.
	CacheBytesTotal prometheus.Counter
}

// New creates and registers the collectors on reg.
// It panics if they are already registered on reg.
func New(reg prometheus.Registerer) *Hooks {
	f := promauto.With(reg)
	return &Hooks{
		PrecomputeTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "precompute_total",
			Help:      "Table-family precomputations by source and status",
		}, []string{"source", "status"}),
		PrecomputeSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "precompute_duration_seconds",
			Help:      "Table-family precomputation duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
		}, []string{"source"}),
		QueriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Routing queries by operation and error code",
		}, []string{"op", "code"}),
		QuerySeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Routing query duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"op"}),
		TreeEdges: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "steiner_tree_edges",
			Help:      "Edges per Steiner tree",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64, 128},
		}, []string{"policy"}),
		TreeSteinerPoints: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "steiner_tree_points",
			Help:      "Auxiliary Steiner points per tree",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}, []string{"policy"}),
		CacheOpsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache operations by key type and result",
		}, []string{"key_type", "result"}),
		CacheBytesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the table cache",
		}),
	}
}

// Register installs h as the global routing and cache hooks.
func (h *Hooks) Register() {
	observability.SetRoutingHooks(h)
	observability.SetCacheHooks(h)
}

// code labels an error by its taxonomy code, "ok" for success.
func code(err error) string {
	if err == nil {
		return "ok"
	}
	if c := qerrors.GetCode(err); c != "" {
		return string(c)
	}
	return "unknown"
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// OnPrecomputeStart implements observability.RoutingHooks.
func (h *Hooks) OnPrecomputeStart(context.Context, string, int) {}

// OnPrecomputeComplete implements observability.RoutingHooks.
func (h *Hooks) OnPrecomputeComplete(_ context.Context, _ string, source string, _ int, d time.Duration, err error) {
	h.PrecomputeTotal.WithLabelValues(source, status(err)).Inc()
	h.PrecomputeSeconds.WithLabelValues(source).Observe(d.Seconds())
}

// OnQuery implements observability.RoutingHooks.
func (h *Hooks) OnQuery(_ string, op string, d time.Duration, err error) {
	h.QueriesTotal.WithLabelValues(op, code(err)).Inc()
	h.QuerySeconds.WithLabelValues(op).Observe(d.Seconds())
}

// OnTree implements observability.RoutingHooks.
func (h *Hooks) OnTree(_ string, policy string, _, steinerPoints, edges int) {
	h.TreeEdges.WithLabelValues(policy).Observe(float64(edges))
	h.TreeSteinerPoints.WithLabelValues(policy).Observe(float64(steinerPoints))
}

// OnCacheHit implements observability.CacheHooks.
func (h *Hooks) OnCacheHit(_ context.Context, keyType string) {
	h.CacheOpsTotal.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (h *Hooks) OnCacheMiss(_ context.Context, keyType string) {
	h.CacheOpsTotal.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (h *Hooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.CacheOpsTotal.WithLabelValues(keyType, "set").Inc()
	h.CacheBytesTotal.Add(float64(size))
}

var (
	_ observability.RoutingHooks = (*Hooks)(nil)
	_ observability.CacheHooks   = (*Hooks)(nil)
)
