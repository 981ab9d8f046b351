package transaction

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcome labels.
const (
	outcomeAccepted  = "accepted"
	outcomeRejected  = "rejected"
	outcomeStale     = "stale"
	outcomeTransport = "transport_error"
)

// Metrics counts submissions and confirmations. A nil *Metrics records
// nothing.
type Metrics struct {
	submissions   *prometheus.CounterVec
	confirmations *prometheus.CounterVec
	waitSeconds   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on registerer.
// A nil registerer leaves them unregistered.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "move_sdk",
			Subsystem: "transaction",
			Name:      "submissions_total",
			Help:      "Transaction submissions by outcome",
		}, []string{"outcome"}),
		confirmations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "move_sdk",
			Subsystem: "transaction",
			Name:      "confirmations_total",
			Help:      "Confirmation waits by final status",
		}, []string{"status"}),
		waitSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "move_sdk",
			Subsystem: "transaction",
			Name:      "confirmation_wait_seconds",
			Help:      "Time from the first poll to a terminal status or timeout",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}),
	}
}

func (m *Metrics) submission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) confirmation(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.confirmations.WithLabelValues(status).Inc()
	m.waitSeconds.Observe(elapsed.Seconds())
}
