package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stress_advisor"

// Metrics owns the service collectors. Each instance has its own registry so
// tests can create as many as they need.
type Metrics struct {
	registry        *prometheus.Registry
	explanations    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rateLimited     prometheus.Counter
	stressScores    prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		explanations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "explanations_total",
			Help:      "Explanations served, by type and outcome.",
		}, []string{"type", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
		stressScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stress_score",
			Help:      "Distribution of computed stress scores.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
	}
	m.registry.MustRegister(
		m.explanations,
		m.requestDuration,
		m.rateLimited,
		m.stressScores,
		collectors.NewGoCollector(),
	)
	return m
}

// RecordExplain counts one explanation.
func (m *Metrics) RecordExplain(explainType, outcome string) {
	m.explanations.WithLabelValues(explainType, outcome).Inc()
}

func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.requestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *Metrics) IncRateLimited() {
	m.rateLimited.Inc()
}

func (m *Metrics) ObserveStressScore(score int) {
	m.stressScores.Observe(float64(score))
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
