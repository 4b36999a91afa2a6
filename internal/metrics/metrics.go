package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the dashboard's prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	AIRequests      *prometheus.CounterVec
	AILatency       prometheus.Histogram
	StaleResults    *prometheus.CounterVec
	GatedNavigation *prometheus.CounterVec
	Subscriptions   *prometheus.CounterVec
	Holdings        prometheus.Gauge
	HTTPRequests    *prometheus.CounterVec
}

// New creates the collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		AIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "investdash",
			Name:      "ai_requests_total",
			Help:      "AI text requests by kind and outcome.",
		}, []string{"kind", "outcome"}),
		AILatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "investdash",
			Name:      "ai_request_duration_seconds",
			Help:      "Latency of AI text requests.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
		}),
		StaleResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "investdash",
			Name:      "stale_results_dropped_total",
			Help:      "Async results discarded because a newer request owns the slot.",
		}, []string{"slot"}),
		GatedNavigation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "investdash",
			Name:      "gated_navigation_total",
			Help:      "Navigations to premium screens refused for lack of entitlement.",
		}, []string{"view"}),
		Subscriptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "investdash",
			Name:      "subscriptions_total",
			Help:      "Simulated subscription purchases by plan.",
		}, []string{"plan"}),
		Holdings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "investdash",
			Name:      "portfolio_holdings",
			Help:      "Number of line items in the portfolio ledger.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "investdash",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		m.AIRequests,
		m.AILatency,
		m.StaleResults,
		m.GatedNavigation,
		m.Subscriptions,
		m.Holdings,
		m.HTTPRequests,
	)
	return m
}

// Registry exposes the underlying registry (for tests and extra collectors)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
