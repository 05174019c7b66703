// Package metrics provides Prometheus observability for the gateway.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Login attempts by outcome: "success", "rejected", "locked_out", "error".
	Logins *prometheus.CounterVec

	// Full login operation latency.
	LoginLatency prometheus.Histogram

	// Backend verification latency by variant: "mock", "real".
	VerifierLatency *prometheus.HistogramVec

	// Inbound HTTP latency by route and status.
	HTTPLatency *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "authgw_logins_total",
			Help: "Total login attempts by outcome",
		}, []string{"outcome"}),

		LoginLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "authgw_login_duration_seconds",
			Help:    "Duration of full login operations",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		VerifierLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "authgw_verifier_duration_seconds",
			Help:    "Duration of backend verification calls by variant",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"variant"}),

		HTTPLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "authgw_http_request_duration_seconds",
			Help:    "Duration of inbound HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "status"}),
	}
}

// IncrementLogin records a login attempt outcome.
func (m *Metrics) IncrementLogin(outcome string) {
	if m != nil {
		m.Logins.WithLabelValues(outcome).Inc()
	}
}

// ObserveLoginLatency records the duration of a full login operation.
func (m *Metrics) ObserveLoginLatency(d time.Duration) {
	if m != nil {
		m.LoginLatency.Observe(d.Seconds())
	}
}

// ObserveVerifierLatency records the duration of a backend verification call.
func (m *Metrics) ObserveVerifierLatency(variant string, d time.Duration) {
	if m != nil {
		m.VerifierLatency.WithLabelValues(variant).Observe(d.Seconds())
	}
}

// ObserveHTTPLatency records the duration of an inbound HTTP request.
func (m *Metrics) ObserveHTTPLatency(route, status string, d time.Duration) {
	if m != nil {
		m.HTTPLatency.WithLabelValues(route, status).Observe(d.Seconds())
	}
}
