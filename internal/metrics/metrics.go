package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors exposed on /metrics.
	Registry = prometheus.NewRegistry()

	HTTPInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "wedding",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wedding",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wedding",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	InvitationEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wedding",
			Subsystem: "invitation",
			Name:      "events_total",
			Help:      "Stage machine events fired, by event and whether the stage changed.",
		},
		[]string{"event", "changed"},
	)

	InvitationSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "wedding",
			Subsystem: "invitation",
			Name:      "sessions",
			Help:      "Invitation sessions currently held in memory.",
		},
	)

	PaymentsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wedding",
			Subsystem: "ledger",
			Name:      "payments_recorded_total",
			Help:      "Tie-money entries created, by currency.",
		},
		[]string{"currency"},
	)

	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wedding",
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Sign-in attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		HTTPInFlight,
		HTTPRequests,
		HTTPDuration,
		InvitationEvents,
		InvitationSessions,
		PaymentsRecorded,
		LoginAttempts,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registered collectors.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
