// Package observability holds the Prometheus metrics exported on /metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UnlockAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "faces",
		Name:      "unlock_attempts_total",
		Help:      "Total number of unlock attempts by result",
	}, []string{"result"})

	ImagesImported = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "faces",
		Name:      "images_imported_total",
		Help:      "Total number of picker loads by outcome (pending, empty, error)",
	}, []string{"outcome"})

	FacesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "faces",
		Name:      "saved_total",
		Help:      "Total number of faces saved",
	})

	FacesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "faces",
		Name:      "deleted_total",
		Help:      "Total number of faces deleted",
	})

	StorageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "faces",
		Name:      "storage_errors_total",
		Help:      "Total number of failed store operations",
	}, []string{"op"})

	StoredFaces = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "faces",
		Name:      "stored",
		Help:      "Number of faces in the last loaded snapshot",
	})

	ThumbnailCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "faces",
		Name:      "thumbnail_cache_total",
		Help:      "Thumbnail cache lookups by result (hit, miss)",
	}, []string{"result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "faces",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
