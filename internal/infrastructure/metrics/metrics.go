package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Vetra API metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vetra",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Admission outcomes
	AdmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vetra",
			Subsystem: "api",
			Name:      "admissions_total",
			Help:      "Admission pipeline outcomes",
		},
		[]string{"outcome"},
	)

	// Firewall rejections
	FirewallRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vetra",
			Subsystem: "api",
			Name:      "firewall_rejections_total",
			Help:      "Prompts rejected by the firewall",
		},
		[]string{"reason"},
	)

	// Credential verification outcomes
	KeyVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vetra",
			Subsystem: "api",
			Name:      "key_verifications_total",
			Help:      "API key verification outcomes",
		},
		[]string{"outcome"},
	)

	// Issued keys
	KeysIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vetra",
			Subsystem: "api",
			Name:      "keys_issued_total",
			Help:      "Total API keys issued",
		},
	)

	// Audit write failures
	AuditFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vetra",
			Subsystem: "api",
			Name:      "audit_failures_total",
			Help:      "Audit writes that failed and aborted a request",
		},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vetra",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)
)

// RecordRequest records an HTTP request with all relevant labels
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordAdmission records an admission pipeline outcome
func RecordAdmission(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	AdmissionsTotal.WithLabelValues(outcome).Inc()
}

// RecordFirewallRejection records a firewall rejection by reason code
func RecordFirewallRejection(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	FirewallRejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordKeyVerification records a credential verification outcome
func RecordKeyVerification(outcome string) {
	KeyVerificationsTotal.WithLabelValues(outcome).Inc()
}
