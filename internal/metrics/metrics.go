package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

var (
	RsvpSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wedding_rsvp_submissions_total",
			Help: "RSVP submissions by outcome.",
		},
		[]string{"outcome"},
	)

	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wedding_emails_total",
			Help: "Outgoing emails by kind and result.",
		},
		[]string{"kind", "result"},
	)

	CASConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wedding_kv_conflicts_total",
			Help: "Writes rejected after repeated compare-and-swap losses.",
		},
		[]string{"operation"},
	)

	GalleryUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wedding_gallery_uploads_total",
			Help: "Gallery uploads by result.",
		},
		[]string{"result"},
	)
)
