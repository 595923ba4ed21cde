// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"insightgraph/application/queries/bus"
)

// Metrics bundles every collector the service registers. It satisfies
// both ports.LayoutMetrics and the query bus Metrics interface.
type Metrics struct {
	registry *prometheus.Registry

	layoutRuns      prometheus.Counter
	layoutDuration  prometheus.Histogram
	layoutCacheHits prometheus.Counter

	sceneBuilds prometheus.Counter
	linksPruned prometheus.Counter

	opsCount    *prometheus.CounterVec
	opsDuration *prometheus.HistogramVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates the collectors on a private registry so tests can build
// as many instances as they need.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: registry,
		layoutRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "insightgraph_layout_runs_total",
			Help: "Number of full force simulation runs.",
		}),
		layoutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "insightgraph_layout_duration_seconds",
			Help:    "Wall time of one force simulation run.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
		layoutCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "insightgraph_layout_cache_hits_total",
			Help: "Layout requests served from the memoization cache.",
		}),
		sceneBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "insightgraph_scene_builds_total",
			Help: "Number of assembled scene documents.",
		}),
		linksPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "insightgraph_scene_links_pruned_total",
			Help: "Links dropped during scene assembly by the dangling filter or the link cap.",
		}),
		opsCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insightgraph_ops_total",
			Help: "Command and query bus operations.",
		}, []string{"metric", "type"}),
		opsDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "insightgraph_ops_duration_seconds",
			Help:    "Command and query bus operation durations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"metric", "type"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insightgraph_http_requests_total",
			Help: "HTTP requests by method and status.",
		}, []string{"method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "insightgraph_http_request_duration_seconds",
			Help:    "HTTP request durations by method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}

	registry.MustRegister(
		m.layoutRuns,
		m.layoutDuration,
		m.layoutCacheHits,
		m.sceneBuilds,
		m.linksPruned,
		m.opsCount,
		m.opsDuration,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// LayoutComputed implements ports.LayoutMetrics
func (m *Metrics) LayoutComputed(seconds float64) {
	m.layoutRuns.Inc()
	m.layoutDuration.Observe(seconds)
}

// LayoutCacheHit implements ports.LayoutMetrics
func (m *Metrics) LayoutCacheHit() {
	m.layoutCacheHits.Inc()
}

// SceneBuilt implements ports.SceneMetrics
func (m *Metrics) SceneBuilt(prunedLinks int) {
	m.sceneBuilds.Inc()
	if prunedLinks > 0 {
		m.linksPruned.Add(float64(prunedLinks))
	}
}

// StartTimer implements the query bus Metrics interface
func (m *Metrics) StartTimer(metric, label string) bus.Timer {
	start := time.Now()
	return timerFunc(func() {
		m.opsDuration.WithLabelValues(metric, label).Observe(time.Since(start).Seconds())
	})
}

// Increment implements the query bus Metrics interface
func (m *Metrics) Increment(metric, label string) {
	m.opsCount.WithLabelValues(metric, label).Inc()
}

type timerFunc func()

func (f timerFunc) Stop() { f() }

// Handler serves the /metrics scrape endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// HTTPMiddleware records request counts and durations
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		m.httpRequests.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		m.httpDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
