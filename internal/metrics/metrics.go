// Package metrics exposes the service's Prometheus collectors. All methods
// are safe on a nil *Metrics so callers can run without instrumentation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fridge_tracker"

type Metrics struct {
	registry *prometheus.Registry

	mutations           *prometheus.CounterVec
	changeLogWrites     *prometheus.CounterVec
	assetDeleteFailures *prometheus.CounterVec
	statsDuration       prometheus.Histogram
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Entity mutations by entity kind, operation and outcome.",
		}, []string{"entity", "op", "outcome"}),
		changeLogWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "change_log_writes_total",
			Help:      "Change-log appends by outcome.",
		}, []string{"outcome"}),
		assetDeleteFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "asset_delete_failures_total",
			Help:      "Photo deletions the blob store refused, by call site.",
		}, []string{"site"}),
		statsDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stats_aggregate_duration_seconds",
			Help:      "Time spent aggregating change-log statistics.",
			Buckets:   prometheus.DefBuckets,
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Mutation(entity string, op string, err error) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(entity, op, outcome(err)).Inc()
}

func (m *Metrics) ChangeLogWrite(err error) {
	if m == nil {
		return
	}
	m.changeLogWrites.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) AssetDeleteFailed(site string) {
	if m == nil {
		return
	}
	m.assetDeleteFailures.WithLabelValues(site).Inc()
}

func (m *Metrics) ObserveStats(d time.Duration) {
	if m == nil {
		return
	}
	m.statsDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveHTTP(method string, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
