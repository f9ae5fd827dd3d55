// Package metrics exposes the Prometheus instruments shared across services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the clearance office: intake volume,
// processing outcomes and HTTP latency. Document generation internals are
// instrumented by the clearance module itself.
type Metrics struct {
	SubmissionsReceived   prometheus.Counter
	SubmissionsRejected   prometheus.Counter
	RegistrationsApproved prometheus.Counter
	RequestDuration       *prometheus.HistogramVec
}

// New creates a Metrics instance with all instruments registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		SubmissionsReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "barangay_submissions_received_total",
			Help: "Total number of clearance submissions filed",
		}),
		SubmissionsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "barangay_submissions_rejected_total",
			Help: "Total number of clearance submissions rejected",
		}),
		RegistrationsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "barangay_registrations_approved_total",
			Help: "Total number of resident registrations approved",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "barangay_http_request_duration_seconds",
			Help:    "Duration of HTTP requests, by method and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
		}, []string{"method", "status"}),
	}
}
