package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce                sync.Once
	apiRequestsTotal            *prometheus.CounterVec
	apiLatencySeconds           *prometheus.HistogramVec
	approvalDecisionsTotal      *prometheus.CounterVec
	approvalGateRejectedTotal   *prometheus.CounterVec
	notificationsPublishedTotal *prometheus.CounterVec
	notificationClientsActive   prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mentorlink_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mentorlink_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		approvalDecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mentorlink_approval_decisions_total",
			Help: "Total number of mentor approval decisions recorded.",
		}, []string{"decision"})

		approvalGateRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mentorlink_approval_gate_rejected_total",
			Help: "Total number of requests rejected by the mentor approval gate.",
		}, []string{"reason"})

		notificationsPublishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mentorlink_notifications_published_total",
			Help: "Total number of notifications published.",
		}, []string{"type"})

		notificationClientsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mentorlink_notification_clients_active",
			Help: "Number of live notification stream subscribers.",
		})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			approvalDecisionsTotal,
			approvalGateRejectedTotal,
			notificationsPublishedTotal,
			notificationClientsActive,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// ApprovalDecisions exposes the counter for mentor approval decisions.
func ApprovalDecisions() *prometheus.CounterVec {
	RegisterMetrics()
	return approvalDecisionsTotal
}

// ApprovalGateRejected exposes the counter for approval gate rejections.
func ApprovalGateRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return approvalGateRejectedTotal
}

// NotificationsPublishedTotal exposes the counter for published notifications.
func NotificationsPublishedTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsPublishedTotal
}

// NotificationClientsActive exposes the gauge of live stream subscribers.
func NotificationClientsActive() prometheus.Gauge {
	RegisterMetrics()
	return notificationClientsActive
}
