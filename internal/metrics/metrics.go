// Package metrics holds the Prometheus instruments used across the service.
// All collectors are registered with the global registry, so importing this
// package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes.
const (
	OutcomeSent     = "sent"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Mail kinds.
const (
	KindNotification = "notification"
	KindConfirmation = "confirmation"
)

var (
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_submissions_total",
			Help: "Feedback submissions by outcome (sent, rejected, failed).",
		}, []string{"outcome"})

	MailSendSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedback_mail_send_seconds",
			Help:    "Time spent handing one email to the transport.",
			Buckets: prometheus.DefBuckets,
		}, []string{"transport", "kind"})

	MailErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_mail_errors_total",
			Help: "Failed email sends by kind.",
		}, []string{"kind"})

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_http_requests_total",
			Help: "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"})
)

func init() {
	prometheus.MustRegister(
		Submissions,
		MailSendSeconds,
		MailErrors,
		HTTPRequests,
	)
}
