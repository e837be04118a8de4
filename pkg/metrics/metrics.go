package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "lexdesk", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "lexdesk", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "lexdesk", Name: "login_attempts_total", Help: "Login attempts by outcome (success|failure)."},
		[]string{"outcome"},
	)
	DocumentUploads = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "lexdesk", Name: "document_uploads_total", Help: "Documents uploaded to cases."},
	)
	DocumentUploadBytes = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "lexdesk", Name: "document_upload_bytes_total", Help: "Total bytes uploaded to blob storage."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(LoginAttempts)
	reg.MustRegister(DocumentUploads)
	reg.MustRegister(DocumentUploadBytes)
}
