package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the clearance module. Tracks generated
// documents per type and the duration of the full copy+substitute sequence.
type Metrics struct {
	DocumentsGenerated *prometheus.CounterVec
	GenerateDuration   prometheus.Histogram
	CopyRetries        prometheus.Counter
	PhotoMisses        prometheus.Counter
}

// New creates a Metrics instance with all clearance module metrics registered.
func New() *Metrics {
	return &Metrics{
		DocumentsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "barangay_documents_generated_total",
			Help: "Total number of clearance documents generated, by clearance type",
		}, []string{"type"}),
		GenerateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "barangay_document_generate_duration_seconds",
			Help:    "Duration of the full template copy and substitution sequence",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		CopyRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "barangay_template_copy_retries_total",
			Help: "Total number of rate-limited template copy attempts that were retried",
		}),
		PhotoMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "barangay_photo_matches_missed_total",
			Help: "Total number of generations where no applicant photo could be matched",
		}),
	}
}

// IncrementGenerated records a successful generation for a clearance type.
func (m *Metrics) IncrementGenerated(clearanceType string) {
	m.DocumentsGenerated.WithLabelValues(clearanceType).Inc()
}

// ObserveGenerate records the duration of a generation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveGenerate(start time.Time) {
	m.GenerateDuration.Observe(time.Since(start).Seconds())
}
