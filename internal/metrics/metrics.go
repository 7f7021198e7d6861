package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	admissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reservas",
			Name:      "admission_total",
			Help:      "Commit-time admission checks by outcome.",
		},
		[]string{"kind", "outcome"},
	)

	statusDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reservas",
			Name:      "status_decision_total",
			Help:      "Appointment status changes made by staff.",
		},
		[]string{"status"},
	)

	holdsExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reservas",
			Name:      "holds_expired_total",
			Help:      "Temporary holds removed by the sweeper.",
		},
	)

	availabilityLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reservas",
			Name:      "availability_query_seconds",
			Help:      "Latency of day and slot availability queries.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	rateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reservas",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(admissions, statusDecisions, holdsExpired, availabilityLatency, rateLimited)
	})
}

// IncAdmission records one admission attempt. kind is "appointment" or
// "hold"; outcome is "admitted" or the business error code.
func IncAdmission(kind, outcome string) {
	admissions.WithLabelValues(kind, outcome).Inc()
}

func IncStatusDecision(status string) {
	statusDecisions.WithLabelValues(status).Inc()
}

func AddHoldsExpired(n int64) {
	if n > 0 {
		holdsExpired.Add(float64(n))
	}
}

func ObserveAvailability(query string, since time.Time) {
	availabilityLatency.WithLabelValues(query).Observe(time.Since(since).Seconds())
}

func IncRateLimited() {
	rateLimited.Inc()
}
